package stats

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"almanac/internal/dataset"
	"almanac/internal/shared/testutil"
)

// newFixtureDataset loads the shared season fixtures through the real
// loader so query tests run over exactly what production would see.
func newFixtureDataset(t *testing.T) *dataset.Dataset {
	t.Helper()

	fixtures := testutil.NewSeasonFixtures(t.TempDir())
	require.NoError(t, fixtures.WriteCleanFiles())

	ds, err := dataset.NewLoader(slog.Default()).Load(context.Background(), fixtures.CleanDir())
	require.NoError(t, err)
	return ds
}
