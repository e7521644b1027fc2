package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/platform/logger"
)

func getCatalog(t *testing.T, h *ListingHandler, vendorType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/catalog/"+vendorType, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("vendorType", vendorType)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	h.Catalog(rec, req)
	return rec
}

func TestCatalog_ReturnsVendorChoices(t *testing.T) {
	h := NewListingHandler(nil, logger.NewNop())
	rec := getCatalog(t, h, "dj")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp catalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Specialties, "Spanish")
	assert.Contains(t, resp.Services, "Reception DJ")
}

func TestCatalog_UnknownVendorRejected(t *testing.T) {
	h := NewListingHandler(nil, logger.NewNop())
	rec := getCatalog(t, h, "florist")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Unknown vendor type", resp.Error)
}
