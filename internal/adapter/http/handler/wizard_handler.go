package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/adapter/http/middleware"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/domain"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/usecase"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/wizard"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/platform/logger"
)

// WizardHandler serves the listing wizard endpoints: per-step validation,
// edit draft loading, create and update submits, and the resumed
// subscription after a payment method setup pause.
type WizardHandler struct {
	loader    *usecase.DraftLoader
	submitter *usecase.Submitter
	logger    logger.Logger
}

func NewWizardHandler(loader *usecase.DraftLoader, submitter *usecase.Submitter, log logger.Logger) *WizardHandler {
	return &WizardHandler{
		loader:    loader,
		submitter: submitter,
		logger:    log,
	}
}

// ValidateStep checks one wizard step against the vendor type's rules,
// returning 204 on success or the first violation as a step error.
func (h *WizardHandler) ValidateStep(w http.ResponseWriter, r *http.Request) {
	var payload draftPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	step, err := wizard.StepFromName(chi.URLParam(r, "step"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Unknown wizard step"})
		return
	}

	draft := payload.toDraft()
	schema, err := wizard.SchemaFor(draft.VendorType)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if err := wizard.NewValidator(schema).ValidateStep(step, draft); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// GetDraft reconstructs the edit draft for the actor's own listing.
func (h *WizardHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserIDFromContext(r.Context())
	if actorID == "" {
		respondError(w, h.logger, domain.ErrUnauthenticated)
		return
	}
	listingID := chi.URLParam(r, "id")

	loaded, err := h.loader.Load(r.Context(), listingID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if loaded.Listing.UserID != actorID {
		respondError(w, h.logger, domain.ErrForbidden)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"draft":        fromDraft(loaded.Draft),
		"listing":      fromListing(loaded.Listing),
		"redirectPath": loaded.RedirectPath,
	})
}

type createRequest struct {
	Draft   draftPayload    `json:"draft"`
	Billing *billingPayload `json:"billing"`
}

type createResponse struct {
	ListingID          string `json:"listingId"`
	RedirectPath       string `json:"redirectPath"`
	NeedsPaymentMethod bool   `json:"needsPaymentMethod,omitempty"`
	SetupClientSecret  string `json:"setupClientSecret,omitempty"`
}

// Create runs the full create submit, optionally with a paid tier
// selection.
func (h *WizardHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserIDFromContext(r.Context())
	actorEmail := middleware.UserEmailFromContext(r.Context())

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	result, err := h.submitter.Create(r.Context(), actorID, actorEmail, req.Draft.toDraft(), req.Billing.toSelection(), func(stage usecase.Stage) {
		h.logger.Debugf("Create for user %s entered stage %s", actorID, stage)
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, createResponse{
		ListingID:          result.ListingID,
		RedirectPath:       result.RedirectPath,
		NeedsPaymentMethod: result.NeedsPaymentMethod,
		SetupClientSecret:  result.SetupClientSecret,
	})
}

type updateResponse struct {
	ListingID    string `json:"listingId"`
	RedirectPath string `json:"redirectPath"`
}

// Update runs the edit submit against an existing listing.
func (h *WizardHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserIDFromContext(r.Context())
	listingID := chi.URLParam(r, "id")

	var payload draftPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	result, err := h.submitter.Update(r.Context(), actorID, listingID, payload.toDraft())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, updateResponse{
		ListingID:    result.ListingID,
		RedirectPath: result.RedirectPath,
	})
}

// Subscribe finishes the billing flow for a listing that was created
// while the actor still had no payment method on file.
func (h *WizardHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserIDFromContext(r.Context())
	listingID := chi.URLParam(r, "id")

	var payload billingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	selection := payload.toSelection()
	if selection == nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "A price selection is required"})
		return
	}

	redirect, err := h.submitter.Subscribe(r.Context(), actorID, listingID, *selection)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"redirectPath": redirect})
}
