package wizard

import (
	"math"
	"strconv"
	"strings"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/domain"
)

// Draft is the in-memory field state for one listing wizard session. It
// mirrors the union of the listing row and its child collections and is
// never persisted directly; the submitter reconciles it against the
// backend at submit time.
type Draft struct {
	VendorType      domain.VendorType
	BusinessName    string
	City            string
	State           string
	YearsExperience string
	TravelRange     string
	TravelsAnywhere bool
	Description     string
	DepositPercent  string
	ServiceCategory domain.ServiceCategory

	// Specialties selected from the catalog vs typed by the vendor.
	CatalogSpecialties []string
	CustomSpecialties  []string

	Services       []ServiceEntry
	CustomServices []ServiceEntry
	AddOns         []ServiceEntry
	Inclusions     []string

	Media []MediaItem
}

// ServiceEntry is one priced row in the draft. Numeric fields stay as raw
// input strings until submit.
type ServiceEntry struct {
	Name        string
	Description string
	Price       string
	Duration    string
	Category    domain.ServiceCategory
	Custom      bool
}

// Blank reports whether every field of the entry is empty or whitespace.
func (e ServiceEntry) Blank() bool {
	return strings.TrimSpace(e.Name) == "" &&
		strings.TrimSpace(e.Description) == "" &&
		strings.TrimSpace(e.Price) == "" &&
		strings.TrimSpace(e.Duration) == ""
}

// Touched reports whether any field deviates from its empty default. A
// touched draft entry becomes fully required.
func (e ServiceEntry) Touched() bool {
	return !e.Blank()
}

// MediaItem is one ordered gallery entry. Persisted entries carry the row
// id and stored file path; freshly attached entries carry the raw payload
// instead.
type MediaItem struct {
	ID        string
	FilePath  string
	URL       string
	MediaType string
	FileName  string
	Data      []byte
}

// Persisted reports whether the entry already exists in the backend and
// must not be re-uploaded.
func (m MediaItem) Persisted() bool {
	return m.ID != "" && len(m.Data) == 0
}

// SetDepositPercent applies the input-time filter for the deposit field:
// only the empty string or a number within [0,100] is accepted into state.
// It reports whether the value was accepted.
func (d *Draft) SetDepositPercent(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		d.DepositPercent = ""
		return true
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || v < 0 || v > 100 {
		return false
	}
	d.DepositPercent = trimmed
	return true
}

// NormalizeDeposit is the blur behavior: a populated deposit is rounded to
// the nearest whole percent, an empty one stays empty.
func (d *Draft) NormalizeDeposit() {
	if strings.TrimSpace(d.DepositPercent) == "" {
		d.DepositPercent = ""
		return
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(d.DepositPercent), 64)
	if err != nil {
		return
	}
	d.DepositPercent = strconv.Itoa(int(math.Round(v)))
}

// DepositValue parses the deposit field for submission. ok is false when
// the field is empty.
func (d *Draft) DepositValue() (int, bool) {
	trimmed := strings.TrimSpace(d.DepositPercent)
	if trimmed == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return int(math.Round(v)), true
}

// AddCustomSpecialty appends a blank custom specialty slot. The add
// affordance is disabled while the last slot is still blank, preventing
// runaway blank accumulation.
func (d *Draft) AddCustomSpecialty() bool {
	if n := len(d.CustomSpecialties); n > 0 && strings.TrimSpace(d.CustomSpecialties[n-1]) == "" {
		return false
	}
	d.CustomSpecialties = append(d.CustomSpecialties, "")
	return true
}

// RemoveCustomSpecialty drops the slot at index i.
func (d *Draft) RemoveCustomSpecialty(i int) {
	if i < 0 || i >= len(d.CustomSpecialties) {
		return
	}
	d.CustomSpecialties = append(d.CustomSpecialties[:i], d.CustomSpecialties[i+1:]...)
}

// AddCustomService appends a blank custom service row unless the last row
// is still untouched.
func (d *Draft) AddCustomService() bool {
	if n := len(d.CustomServices); n > 0 && d.CustomServices[n-1].Blank() {
		return false
	}
	d.CustomServices = append(d.CustomServices, ServiceEntry{Custom: true})
	return true
}

// AddInclusion appends a blank inclusion slot unless the last one is still
// blank.
func (d *Draft) AddInclusion() bool {
	if n := len(d.Inclusions); n > 0 && strings.TrimSpace(d.Inclusions[n-1]) == "" {
		return false
	}
	d.Inclusions = append(d.Inclusions, "")
	return true
}
