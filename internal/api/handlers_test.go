package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chembldb/internal/chembl"
	"chembldb/internal/models"
	"chembldb/internal/observability"
)

const fixtureTSV = "chembl_id\tcanonical_smiles\tstandard_inchi\tstandard_inchi_key\n" +
	"CHEMBL1\tCC(=O)Oc1ccccc1C(=O)O\tInChI=1S/C9H8O4\tBSYNRYMUTXBXSQ-UHFFFAOYSA-N\n" +
	"CHEMBL2\tCCO\tInChI=1S/C2H6O\tLFQSCWFLJHTTHZ-UHFFFAOYSA-N\n" +
	"CHEMBL3\tCCN\tInChI=1S/C2H7N\tQUSNBJAOOMFDIB-UHFFFAOYSA-N\n"

func loadedHandler(t *testing.T) *Handler {
	t.Helper()
	path := filepath.Join(t.TempDir(), "compounds.tsv")
	require.NoError(t, os.WriteFile(path, []byte(fixtureTSV), 0o644))
	store, err := chembl.Load(path)
	require.NoError(t, err)
	return NewHandler(store, zap.NewNop(), observability.NewCollector("test"))
}

func doRequest(h *Handler, target string) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetCompound(t *testing.T) {
	h := loadedHandler(t)

	rec := doRequest(h, "/api/compounds/CHEMBL2")
	require.Equal(t, http.StatusOK, rec.Code)

	var c chembl.Compound
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.Equal(t, "CHEMBL2", c.ChemblID)
	assert.Equal(t, "CCO", c.CanonicalSMILES)
}

func TestGetCompoundNotFound(t *testing.T) {
	h := loadedHandler(t)

	rec := doRequest(h, "/api/compounds/CHEMBL999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutesReturn503UntilLoaded(t *testing.T) {
	h := NewHandler(nil, zap.NewNop(), observability.NewCollector("test"))

	for _, target := range []string{
		"/api/compounds", "/api/compounds/CHEMBL1", "/api/compounds/sample?size=1",
		"/api/pairs", "/api/summary", "/api/stats",
	} {
		rec := doRequest(h, target)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
	}

	rec := doRequest(h, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	var health models.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "loading", health.Status)
}

func TestListCompoundsPagination(t *testing.T) {
	h := loadedHandler(t)

	rec := doRequest(h, "/api/compounds?limit=2&offset=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var page models.CompoundPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.Limit)
	assert.Equal(t, 2, page.Offset)
	assert.Len(t, page.Data, 1)
}

func TestSampleCompounds(t *testing.T) {
	h := loadedHandler(t)

	rec := doRequest(h, "/api/compounds/sample?size=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var sample []chembl.Compound
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sample))
	assert.Len(t, sample, 2)

	rec = doRequest(h, "/api/compounds/sample?size=-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(h, "/api/compounds/sample")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPairs(t *testing.T) {
	h := loadedHandler(t)

	rec := doRequest(h, "/api/pairs")
	require.Equal(t, http.StatusOK, rec.Code)

	var pairs models.PairsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pairs))
	require.Len(t, pairs.SMILES, 3)
	require.Len(t, pairs.IDs, 3)
}

func TestGetStats(t *testing.T) {
	h := loadedHandler(t)

	rec := doRequest(h, "/api/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var st models.StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, 3, st.Records)
	assert.Equal(t, 1, st.HeaderSkipped)
	assert.False(t, st.LoadedAt.IsZero())
}

func TestSetStoreSwapsDataset(t *testing.T) {
	h := loadedHandler(t)

	path := filepath.Join(t.TempDir(), "other.tsv")
	require.NoError(t, os.WriteFile(path, []byte("CHEMBL9\tC\tInChI=1S/X\tXXXX-N\n"), 0o644))
	store, err := chembl.Load(path)
	require.NoError(t, err)
	h.SetStore(store)

	rec := doRequest(h, "/api/compounds/CHEMBL1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = doRequest(h, "/api/compounds/CHEMBL9")
	assert.Equal(t, http.StatusOK, rec.Code)
}
