package users

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitstack/internal/catalog"
	"github.com/julianstephens/habitstack/internal/cli"
	apperrors "github.com/julianstephens/habitstack/internal/errors"
	"github.com/julianstephens/habitstack/internal/service"
	"github.com/julianstephens/habitstack/internal/storage/sqlite"
	"github.com/julianstephens/habitstack/internal/utils"
)

func newContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "habitstack.db"))
	require.NoError(t, store.Init(ctx))
	t.Cleanup(func() { store.Close() })

	clock, err := utils.NewSystemClock("UTC")
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return &cli.Context{
		Ctx:     ctx,
		Store:   store,
		Service: service.New(store, clock),
		Clock:   clock,
		Out:     out,
	}, out
}

func TestUserAddAndList(t *testing.T) {
	ctx, out := newContext(t)

	require.NoError(t, (&UserAddCmd{Username: "alice"}).Run(ctx))
	assert.Contains(t, out.String(), "Added user alice")

	err := (&UserAddCmd{Username: "alice"}).Run(ctx)
	assert.True(t, apperrors.IsValidation(err))

	out.Reset()
	require.NoError(t, (&UserListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "alice")

	ctx.UserRef = "alice"
	user, err := ctx.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestCatalogImport_Default(t *testing.T) {
	ctx, out := newContext(t)

	require.NoError(t, (&CatalogImportCmd{}).Run(ctx))
	defaults, err := catalog.Default()
	require.NoError(t, err)

	habits, err := ctx.Service.ListPredefinedHabits(ctx.Ctx)
	require.NoError(t, err)
	assert.Len(t, habits, len(defaults))

	out.Reset()
	require.NoError(t, (&CatalogListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "meditate")
}

func TestCatalogImport_File(t *testing.T) {
	ctx, _ := newContext(t)

	path := filepath.Join(t.TempDir(), "habits.yaml")
	require.NoError(t, os.WriteFile(path, []byte("habits:\n  - id: pushups\n    name: Ten pushups\n"), 0o600))

	require.NoError(t, (&CatalogImportCmd{File: path}).Run(ctx))
	habits, err := ctx.Service.ListPredefinedHabits(ctx.Ctx)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, "Ten pushups", habits[0].Name)
}
