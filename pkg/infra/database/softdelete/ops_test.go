package softdelete_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harvesthub/harvesthub/pkg/infra/database/softdelete"
)

func TestRewriteDelete_BecomesTimestampedUpdate(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	m := softdelete.RewriteDelete(softdelete.EntityProduct, softdelete.Where{"id": "p-1"}, now)

	assert.Equal(t, softdelete.EntityProduct, m.Entity)
	assert.Equal(t, now, m.Assignments["deleted_at"])
	// already-trashed rows are excluded so the timestamp never moves
	assert.Equal(t, softdelete.Null, m.Where["deleted_at"])
	assert.Equal(t, "p-1", m.Where["id"])
}

func TestScopeQuery_DoesNotMutateInput(t *testing.T) {
	q := softdelete.Query{
		Entity: softdelete.EntityOrder,
		Where:  softdelete.Where{"user_id": "u-1"},
	}
	scoped := softdelete.ScopeQuery(q)

	assert.True(t, scoped.Where.HasDeletedAtClause())
	assert.False(t, q.Where.HasDeletedAtClause())
}

func TestRestoreMutation_TargetsTrashAndClearsTimestamp(t *testing.T) {
	m := softdelete.RestoreMutation(softdelete.EntityFarmer, softdelete.Where{"region": "vermont"})

	assert.Equal(t, softdelete.NotNull, m.Where["deleted_at"])
	assert.Nil(t, m.Assignments["deleted_at"])
}

func TestEntityTableNames_Exhaustive(t *testing.T) {
	for _, e := range softdelete.All() {
		assert.NotEmpty(t, e.TableName(), "entity %s must map to a table", e)
	}
	assert.Empty(t, softdelete.Entity(999).TableName())
}

func TestIsDeletedAndDeletedFor(t *testing.T) {
	now := time.Now()
	trashedAt := now.Add(-48 * time.Hour)

	assert.False(t, softdelete.IsDeleted(nil))
	assert.True(t, softdelete.IsDeleted(&trashedAt))

	assert.Equal(t, time.Duration(0), softdelete.DeletedFor(nil, now))
	assert.Equal(t, 48*time.Hour, softdelete.DeletedFor(&trashedAt, now))
}

// Destructive operations with no criteria must be refused before any query
// is issued: the store below has no database at all, so reaching the
// executor would panic.
func TestEmptyFilter_RejectedBeforeAnyQuery(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	store := softdelete.NewStore(logger, nil)

	_, err := store.HardDelete(context.Background(), softdelete.EntityProduct, softdelete.Where{}, "admin@harvesthub")
	require.ErrorIs(t, err, softdelete.ErrEmptyFilter)

	_, err = store.Delete(context.Background(), softdelete.EntityProduct, softdelete.Where{})
	require.ErrorIs(t, err, softdelete.ErrEmptyFilter)

	_, err = store.Restore(context.Background(), softdelete.EntityProduct, softdelete.Where{})
	require.ErrorIs(t, err, softdelete.ErrEmptyFilter)
}
