package savedviewrepo_test

import (
	"context"
	"testing"
	"time"

	"roboshop/internal/adapters/out/postgres/pgtest"
	"roboshop/internal/adapters/out/postgres/savedviewrepo"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/savedview"
	"roboshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormSavedViewRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	ctx := context.Background()
	pg, err := pgtest.Start(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Stop(context.Background()) })

	repo := savedviewrepo.NewGormSavedViewRepository(pg.DB)
	owner, other := kernel.NewUUID(), kernel.NewUUID()
	view := func(ownerID kernel.UUID, scope savedview.Scope, name string) *savedview.SavedView {
		v, viewErr := savedview.NewSavedView(kernel.NewUUID(), ownerID, scope, name,
			map[string]string{"status": "packed"}, time.Now())
		require.NoError(t, viewErr)
		return v
	}

	packed := view(owner, savedview.Orders, "Packed")
	require.NoError(t, repo.Add(ctx, packed))
	require.NoError(t, repo.Add(ctx, view(owner, savedview.Products, "Packed")))
	require.NoError(t, repo.Add(ctx, view(other, savedview.Orders, "Packed")))
	require.ErrorIs(t, repo.Add(ctx, view(owner, savedview.Orders, "Packed")), errs.ErrAlreadyExists)

	mine, err := repo.ListByOwner(ctx, owner, savedview.Orders)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, map[string]string{"status": "packed"}, mine[0].Filters())

	all, err := repo.ListByOwner(ctx, owner, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.ErrorIs(t, repo.Delete(ctx, other, packed.ID()), errs.ErrObjectNotFound)
	require.NoError(t, repo.Delete(ctx, owner, packed.ID()))
}
