package testutils

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-companion/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-companion/internal/repositories/catalog"
)

// CreateTestCatalog opens a catalog in a temporary SQLite file. The store is
// closed when the test ends.
func CreateTestCatalog(t *testing.T, c clock.Clock) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(context.Background(), &catalog.Config{
		Path:  filepath.Join(t.TempDir(), "catalog.db"),
		Clock: c,
	})
	require.NoError(t, err, "failed to open test catalog")

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}
