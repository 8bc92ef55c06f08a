package softdelete

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrEmptyFilter rejects destructive operations with no criteria: a hard
// delete of "everything" is refused before any query is issued.
var ErrEmptyFilter = errors.New("refusing destructive operation with empty filter")

// ErrUnknownEntity reports an Entity value outside the declared set.
var ErrUnknownEntity = errors.New("unknown soft-delete entity")

// Store executes query and mutation descriptions against the database. All
// criteria are bound as parameters; table names come from the closed Entity
// enum, never from caller input.
type Store struct {
	logger *logrus.Logger
	db     *gorm.DB
	now    func() time.Time
}

func NewStore(logger *logrus.Logger, db *gorm.DB) *Store {
	return &Store{logger: logger, db: db, now: time.Now}
}

// NewStoreWithClock is used by tests to pin deletion timestamps.
func NewStoreWithClock(logger *logrus.Logger, db *gorm.DB, now func() time.Time) *Store {
	s := NewStore(logger, db)
	s.now = now
	return s
}

func (s *Store) table(e Entity) (string, error) {
	t := e.TableName()
	if t == "" {
		return "", fmt.Errorf("%w: %d", ErrUnknownEntity, int(e))
	}
	return t, nil
}

func (s *Store) scopedRead(ctx context.Context, q Query) (*gorm.DB, error) {
	scoped := ScopeQuery(q)
	table, err := s.table(scoped.Entity)
	if err != nil {
		return nil, err
	}
	conditions, args, err := scoped.Where.Conditions()
	if err != nil {
		return nil, err
	}
	tx := s.db.WithContext(ctx).Table(table)
	if conditions != "" {
		tx = tx.Where(conditions, args...)
	}
	if scoped.OrderBy != "" {
		if !orderPattern.MatchString(scoped.OrderBy) {
			return nil, fmt.Errorf("invalid order clause %q", scoped.OrderBy)
		}
		tx = tx.Order(scoped.OrderBy)
	}
	if scoped.Limit > 0 {
		tx = tx.Limit(scoped.Limit)
	}
	if scoped.Offset > 0 {
		tx = tx.Offset(scoped.Offset)
	}
	return tx, nil
}

// FindOne loads a single record matching the query, with the live filter
// merged unless the caller constrained deleted_at explicitly.
func (s *Store) FindOne(ctx context.Context, q Query, dest any) error {
	tx, err := s.scopedRead(ctx, q)
	if err != nil {
		return err
	}
	return tx.Take(dest).Error
}

// FindFirst is FindOne with the query's ordering applied.
func (s *Store) FindFirst(ctx context.Context, q Query, dest any) error {
	tx, err := s.scopedRead(ctx, q)
	if err != nil {
		return err
	}
	return tx.First(dest).Error
}

// FindMany loads all records matching the query.
func (s *Store) FindMany(ctx context.Context, q Query, dest any) error {
	tx, err := s.scopedRead(ctx, q)
	if err != nil {
		return err
	}
	return tx.Find(dest).Error
}

// Count counts records matching the query.
func (s *Store) Count(ctx context.Context, q Query) (int64, error) {
	tx, err := s.scopedRead(ctx, q)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Sum aggregates a numeric column over the records matching the query. The
// column name is validated, not interpolated from arbitrary input.
func (s *Store) Sum(ctx context.Context, q Query, column string) (int64, error) {
	if !columnPattern.MatchString(column) {
		return 0, fmt.Errorf("invalid aggregate column %q", column)
	}
	tx, err := s.scopedRead(ctx, q)
	if err != nil {
		return 0, err
	}
	var total *int64
	if err := tx.Select("SUM(" + column + ")").Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// Create inserts a record; it starts live (deleted_at NULL by virtue of the
// zero value).
func (s *Store) Create(ctx context.Context, record any) error {
	return s.db.WithContext(ctx).Create(record).Error
}

// Apply executes a mutation description, returning affected rows.
func (s *Store) Apply(ctx context.Context, m Mutation) (int64, error) {
	table, err := s.table(m.Entity)
	if err != nil {
		return 0, err
	}
	conditions, args, err := m.Where.Conditions()
	if err != nil {
		return 0, err
	}
	tx := s.db.WithContext(ctx).Table(table)
	if conditions != "" {
		tx = tx.Where(conditions, args...)
	}
	res := tx.Updates(m.Assignments)
	return res.RowsAffected, res.Error
}

// Update applies column assignments to live records matching the filter.
func (s *Store) Update(ctx context.Context, e Entity, w Where, assignments map[string]any) (int64, error) {
	return s.Apply(ctx, Mutation{Entity: e, Where: w.WithLiveFilter(), Assignments: assignments})
}

// Delete soft-deletes: the operation is rewritten into an update that
// stamps deleted_at, leaving the rows physically present.
func (s *Store) Delete(ctx context.Context, e Entity, w Where) (int64, error) {
	if len(w) == 0 {
		return 0, ErrEmptyFilter
	}
	return s.Apply(ctx, RewriteDelete(e, w, s.now()))
}

// Restore moves trashed records matching the filter back to live.
func (s *Store) Restore(ctx context.Context, e Entity, w Where) (int64, error) {
	if len(w) == 0 {
		return 0, ErrEmptyFilter
	}
	return s.Apply(ctx, RestoreMutation(e, w))
}

// HardDelete physically removes rows. Distinct from Delete, irreversible,
// and refused outright for an empty filter. The criteria are fully
// parameterized. Every call is logged at warning level with the acting
// user.
func (s *Store) HardDelete(ctx context.Context, e Entity, w Where, actor string) (int64, error) {
	if len(w) == 0 {
		return 0, ErrEmptyFilter
	}
	table, err := s.table(e)
	if err != nil {
		return 0, err
	}
	conditions, args, err := w.Conditions()
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{
		"entity": e.String(),
		"filter": fmt.Sprintf("%v", w),
		"actor":  actor,
	}).Warn("hard delete requested")

	res := s.db.WithContext(ctx).Exec(
		"DELETE FROM "+table+" WHERE "+conditions, args...,
	)
	return res.RowsAffected, res.Error
}

// Purge physically removes records trashed longer than the retention
// window. Maintenance only; never on the request path.
func (s *Store) Purge(ctx context.Context, e Entity, retention time.Duration) (int64, error) {
	table, err := s.table(e)
	if err != nil {
		return 0, err
	}
	cutoff := s.now().Add(-retention)
	res := s.db.WithContext(ctx).Exec(
		"DELETE FROM "+table+" WHERE deleted_at IS NOT NULL AND deleted_at < ?", cutoff,
	)
	if res.Error == nil && res.RowsAffected > 0 {
		s.logger.WithFields(logrus.Fields{
			"entity":  e.String(),
			"cutoff":  cutoff,
			"removed": res.RowsAffected,
		}).Info("purged expired trash records")
	}
	return res.RowsAffected, res.Error
}
