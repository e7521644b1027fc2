package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/platform/logger"
)

func postStep(t *testing.T, h *WizardHandler, step string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/listings/validate/"+step, strings.NewReader(string(data)))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("step", step)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	h.ValidateStep(rec, req)
	return rec
}

func TestValidateStep_ValidBasics(t *testing.T) {
	h := NewWizardHandler(nil, nil, logger.NewNop())
	rec := postStep(t, h, "basics", draftPayload{
		VendorType:      "dj",
		BusinessName:    "Test DJ",
		City:            "Austin",
		State:           "TX",
		YearsExperience: "3-5",
		TravelRange:     "50",
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestValidateStep_ViolationCarriesStepAndField(t *testing.T) {
	h := NewWizardHandler(nil, nil, logger.NewNop())
	rec := postStep(t, h, "details", draftPayload{
		VendorType:     "dj",
		Description:    "too short",
		DepositPercent: "20",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "details", resp.Step)
	assert.Equal(t, "description", resp.Field)
	assert.Contains(t, resp.Error, "at least 100 characters")
}

func TestValidateStep_UnknownVendor(t *testing.T) {
	h := NewWizardHandler(nil, nil, logger.NewNop())
	rec := postStep(t, h, "basics", draftPayload{
		VendorType:      "florist",
		BusinessName:    "x",
		City:            "x",
		State:           "x",
		YearsExperience: "1",
		TravelRange:     "10",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Unknown vendor type", resp.Error)
}

func TestValidateStep_UnknownStepName(t *testing.T) {
	h := NewWizardHandler(nil, nil, logger.NewNop())
	rec := postStep(t, h, "payment", draftPayload{VendorType: "dj"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateStep_MalformedBody(t *testing.T) {
	h := NewWizardHandler(nil, nil, logger.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/api/listings/validate/basics", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.ValidateStep(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDraftPayloadRoundTrip(t *testing.T) {
	payload := draftPayload{
		VendorType:         "wedding_planner",
		BusinessName:       "Planner Co",
		CatalogSpecialties: []string{"Elopements"},
		Inclusions:         []string{"Day-of timeline"},
		Services:           []serviceEntryPayload{{Name: "Full Planning", Price: "3000"}},
		Media:              []mediaItemPayload{{ID: "m1", FilePath: "wedding_planner/1/0-1.jpg"}},
	}

	draft := payload.toDraft()
	assert.Equal(t, "Planner Co", draft.BusinessName)
	require.Len(t, draft.Media, 1)
	assert.True(t, draft.Media[0].Persisted())

	back := fromDraft(draft)
	assert.Equal(t, payload.BusinessName, back.BusinessName)
	assert.Equal(t, payload.Inclusions, back.Inclusions)
	require.Len(t, back.Services, 1)
	assert.Equal(t, "Full Planning", back.Services[0].Name)
}
