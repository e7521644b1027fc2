package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/adapter/http/middleware"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/domain"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/usecase"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/platform/logger"
)

// ListingHandler serves the read and lifecycle endpoints around listings.
type ListingHandler struct {
	usecase *usecase.ListingUsecase
	logger  logger.Logger
}

func NewListingHandler(uc *usecase.ListingUsecase, log logger.Logger) *ListingHandler {
	return &ListingHandler{usecase: uc, logger: log}
}

func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	listing, err := h.usecase.GetListing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, fromListing(listing))
}

func (h *ListingHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.Filter{
		Query:      q.Get("q"),
		VendorType: domain.VendorType(q.Get("service")),
	}
	if filter.VendorType != "" && !filter.VendorType.IsValid() {
		respondError(w, h.logger, domain.ErrInvalidVendor)
		return
	}
	if mine := q.Get("mine"); mine == "true" {
		filter.UserID = middleware.UserIDFromContext(r.Context())
	}
	if archived := q.Get("archived"); archived != "" {
		v := archived == "true"
		filter.Archived = &v
	}
	filter.Page, _ = strconv.ParseInt(q.Get("page"), 10, 64)
	filter.Limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)

	listings, total, err := h.usecase.SearchListings(r.Context(), filter)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	items := make([]listingResponse, 0, len(listings))
	for _, l := range listings {
		items = append(items, fromListing(l))
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"total": total,
	})
}

type archiveRequest struct {
	Archived bool `json:"archived"`
}

func (h *ListingHandler) SetArchived(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserIDFromContext(r.Context())

	var req archiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	listing, err := h.usecase.SetArchived(r.Context(), actorID, chi.URLParam(r, "id"), req.Archived)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, fromListing(listing))
}

type catalogResponse struct {
	Specialties []string `json:"specialties"`
	Services    []string `json:"services"`
}

// Catalog returns the predefined specialty and service choices the wizard
// offers for a vendor type.
func (h *ListingHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	vt := domain.VendorType(chi.URLParam(r, "vendorType"))
	if !vt.IsValid() {
		respondError(w, h.logger, domain.ErrInvalidVendor)
		return
	}
	respondJSON(w, http.StatusOK, catalogResponse{
		Specialties: domain.CatalogSpecialties(vt),
		Services:    domain.CatalogServices(vt),
	})
}

func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.UserIDFromContext(r.Context())
	if err := h.usecase.DeleteListing(r.Context(), actorID, chi.URLParam(r, "id")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
