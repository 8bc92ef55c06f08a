package softdelete

// Entity is the closed set of soft-deletable entity types. Using a typed
// enum instead of free-form table-name strings keeps the declared set
// exhaustive at compile time.
type Entity int

const (
	EntityUser Entity = iota
	EntityFarmer
	EntityProduct
	EntityOrder
	EntitySubscription
)

// All lists every soft-deletable entity, in purge order.
func All() []Entity {
	return []Entity{EntityUser, EntityFarmer, EntityProduct, EntityOrder, EntitySubscription}
}

func (e Entity) String() string {
	switch e {
	case EntityUser:
		return "user"
	case EntityFarmer:
		return "farmer"
	case EntityProduct:
		return "product"
	case EntityOrder:
		return "order"
	case EntitySubscription:
		return "subscription"
	default:
		return "unknown"
	}
}

// TableName maps the entity to its relation. The switch is exhaustive over
// the enum; an out-of-range value yields the empty string and fails fast at
// the store layer.
func (e Entity) TableName() string {
	switch e {
	case EntityUser:
		return "users"
	case EntityFarmer:
		return "farmers"
	case EntityProduct:
		return "products"
	case EntityOrder:
		return "orders"
	case EntitySubscription:
		return "subscriptions"
	default:
		return ""
	}
}
