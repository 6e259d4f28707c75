package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"almanac/internal/dataset"
	apierrors "almanac/internal/errors"
	"almanac/internal/services"
	"almanac/internal/shared/testutil"
)

// newFixtureDataset loads the shared season fixtures through the real
// loader so handler tests exercise the full query path.
func newFixtureDataset(t *testing.T) *dataset.Dataset {
	t.Helper()

	fixtures := testutil.NewSeasonFixtures(t.TempDir())
	require.NoError(t, fixtures.WriteCleanFiles())

	ds, err := dataset.NewLoader(slog.Default()).Load(context.Background(), fixtures.CleanDir())
	require.NoError(t, err)
	return ds
}

// newDataHandler builds a handler over the fixture dataset
func newDataHandler(t *testing.T) *DataHandler {
	t.Helper()

	logger, _ := testutil.NewTestLogger(t)
	svc := services.NewDataService(newFixtureDataset(t), logger, nil)
	return NewDataHandler(svc, logger, apierrors.NewErrorHandler(logger, false))
}

// get performs a GET against the handler's routes and decodes a JSON
// body into out when the response is a 200.
func get(t *testing.T, h http.Handler, target string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}
