package softdelete

import "time"

// Query is a read operation description: entity, criteria, ordering and
// paging. Descriptions are plain values built by the decorators below, so
// the rewrite logic is testable without a database.
type Query struct {
	Entity  Entity
	Where   Where
	OrderBy string
	Limit   int
	Offset  int
}

// Mutation is a write operation description: criteria plus column
// assignments.
type Mutation struct {
	Entity      Entity
	Where       Where
	Assignments map[string]any
}

// ScopeQuery returns a copy of the query with the implicit live filter
// merged in. The input is not mutated.
func ScopeQuery(q Query) Query {
	q.Where = q.Where.WithLiveFilter()
	return q
}

// RewriteDelete turns a delete request into a timestamped update: rows stay
// physically present with deleted_at set. Already-trashed rows are excluded
// from the criteria so a repeated delete does not move the timestamp.
func RewriteDelete(e Entity, w Where, now time.Time) Mutation {
	return Mutation{
		Entity:      e,
		Where:       w.WithLiveFilter(),
		Assignments: map[string]any{deletedAtColumn: now},
	}
}

// RestoreMutation moves trashed rows matching the filter back to live.
func RestoreMutation(e Entity, w Where) Mutation {
	scoped := make(Where, len(w)+1)
	for k, v := range w {
		scoped[k] = v
	}
	if !w.HasDeletedAtClause() {
		scoped[deletedAtColumn] = NotNull
	}
	return Mutation{
		Entity:      e,
		Where:       scoped,
		Assignments: map[string]any{deletedAtColumn: nil},
	}
}

// IsDeleted reports whether a record with this deleted_at value is in the
// trash.
func IsDeleted(deletedAt *time.Time) bool {
	return deletedAt != nil
}

// DeletedFor reports how long a record has been in the trash; zero for live
// records.
func DeletedFor(deletedAt *time.Time, now time.Time) time.Duration {
	if deletedAt == nil {
		return 0
	}
	d := now.Sub(*deletedAt)
	if d < 0 {
		return 0
	}
	return d
}
