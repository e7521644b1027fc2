package handler

import (
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/domain"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/usecase"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/wizard"
)

// draftPayload is the wire shape of a wizard draft. Freshly attached
// media entries carry base64 file data; persisted entries carry the row
// id instead.
type draftPayload struct {
	VendorType      string `json:"vendorType"`
	BusinessName    string `json:"businessName"`
	City            string `json:"city"`
	State           string `json:"state"`
	YearsExperience string `json:"yearsExperience"`
	TravelRange     string `json:"travelRange"`
	TravelsAnywhere bool   `json:"travelsAnywhere"`
	Description     string `json:"description"`
	DepositPercent  string `json:"depositPercent"`
	ServiceType     string `json:"serviceType"`

	CatalogSpecialties []string              `json:"catalogSpecialties"`
	CustomSpecialties  []string              `json:"customSpecialties"`
	Services           []serviceEntryPayload `json:"services"`
	CustomServices     []serviceEntryPayload `json:"customServices"`
	AddOns             []serviceEntryPayload `json:"addOns"`
	Inclusions         []string              `json:"inclusions"`
	Media              []mediaItemPayload    `json:"media"`
}

type serviceEntryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Duration    string `json:"duration"`
	Category    string `json:"category"`
	Custom      bool   `json:"custom"`
}

type mediaItemPayload struct {
	ID        string `json:"id"`
	FilePath  string `json:"filePath,omitempty"`
	URL       string `json:"url,omitempty"`
	MediaType string `json:"mediaType"`
	FileName  string `json:"fileName,omitempty"`
	Data      []byte `json:"data,omitempty"`
}

type billingPayload struct {
	PriceID  string `json:"priceId"`
	TierType string `json:"tierType"`
	IsAnnual bool   `json:"isAnnual"`
}

func (p *draftPayload) toDraft() *wizard.Draft {
	d := &wizard.Draft{
		VendorType:         domain.VendorType(p.VendorType),
		BusinessName:       p.BusinessName,
		City:               p.City,
		State:              p.State,
		YearsExperience:    p.YearsExperience,
		TravelRange:        p.TravelRange,
		TravelsAnywhere:    p.TravelsAnywhere,
		Description:        p.Description,
		DepositPercent:     p.DepositPercent,
		ServiceCategory:    domain.ServiceCategory(p.ServiceType),
		CatalogSpecialties: p.CatalogSpecialties,
		CustomSpecialties:  p.CustomSpecialties,
		Inclusions:         p.Inclusions,
	}
	d.Services = toServiceEntries(p.Services)
	d.CustomServices = toServiceEntries(p.CustomServices)
	d.AddOns = toServiceEntries(p.AddOns)
	for _, m := range p.Media {
		d.Media = append(d.Media, wizard.MediaItem{
			ID:        m.ID,
			FilePath:  m.FilePath,
			MediaType: m.MediaType,
			FileName:  m.FileName,
			Data:      m.Data,
		})
	}
	return d
}

func toServiceEntries(payloads []serviceEntryPayload) []wizard.ServiceEntry {
	entries := make([]wizard.ServiceEntry, 0, len(payloads))
	for _, p := range payloads {
		entries = append(entries, wizard.ServiceEntry{
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Duration:    p.Duration,
			Category:    domain.ServiceCategory(p.Category),
			Custom:      p.Custom,
		})
	}
	return entries
}

func fromDraft(d *wizard.Draft) *draftPayload {
	p := &draftPayload{
		VendorType:         string(d.VendorType),
		BusinessName:       d.BusinessName,
		City:               d.City,
		State:              d.State,
		YearsExperience:    d.YearsExperience,
		TravelRange:        d.TravelRange,
		TravelsAnywhere:    d.TravelsAnywhere,
		Description:        d.Description,
		DepositPercent:     d.DepositPercent,
		ServiceType:        string(d.ServiceCategory),
		CatalogSpecialties: d.CatalogSpecialties,
		CustomSpecialties:  d.CustomSpecialties,
		Inclusions:         d.Inclusions,
	}
	p.Services = fromServiceEntries(d.Services)
	p.CustomServices = fromServiceEntries(d.CustomServices)
	p.AddOns = fromServiceEntries(d.AddOns)
	for _, m := range d.Media {
		p.Media = append(p.Media, mediaItemPayload{
			ID:        m.ID,
			FilePath:  m.FilePath,
			URL:       m.URL,
			MediaType: m.MediaType,
			FileName:  m.FileName,
		})
	}
	return p
}

func fromServiceEntries(entries []wizard.ServiceEntry) []serviceEntryPayload {
	payloads := make([]serviceEntryPayload, 0, len(entries))
	for _, e := range entries {
		payloads = append(payloads, serviceEntryPayload{
			Name:        e.Name,
			Description: e.Description,
			Price:       e.Price,
			Duration:    e.Duration,
			Category:    string(e.Category),
			Custom:      e.Custom,
		})
	}
	return payloads
}

func (p *billingPayload) toSelection() *usecase.BillingSelection {
	if p == nil || p.PriceID == "" {
		return nil
	}
	return &usecase.BillingSelection{
		PriceID:  p.PriceID,
		TierType: p.TierType,
		IsAnnual: p.IsAnnual,
	}
}

type listingResponse struct {
	ID              string `json:"id"`
	UserID          string `json:"userId"`
	VendorType      string `json:"vendorType"`
	BusinessName    string `json:"businessName"`
	City            string `json:"city"`
	State           string `json:"state"`
	Description     string `json:"description"`
	YearsExperience string `json:"yearsExperience"`
	TravelRange     string `json:"travelRange"`
	TravelsAnywhere bool   `json:"travelsAnywhere"`
	DepositPercent  int    `json:"depositPercent"`
	ServiceType     string `json:"serviceType,omitempty"`
	IsArchived      bool   `json:"isArchived"`
}

func fromListing(l *domain.Listing) listingResponse {
	return listingResponse{
		ID:              l.ID,
		UserID:          l.UserID,
		VendorType:      string(l.VendorType),
		BusinessName:    l.BusinessName,
		City:            l.City,
		State:           l.State,
		Description:     l.Description,
		YearsExperience: l.YearsExperience,
		TravelRange:     l.TravelRange,
		TravelsAnywhere: l.TravelsAnywhere,
		DepositPercent:  l.DepositPercent,
		ServiceType:     string(l.ServiceCategory),
		IsArchived:      l.IsArchived,
	}
}
