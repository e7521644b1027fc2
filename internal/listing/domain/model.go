package domain

import "time"

// VendorType discriminates the five listing categories the marketplace
// supports. Every listing belongs to exactly one.
type VendorType string

const (
	VendorDJ             VendorType = "dj"
	VendorHairMakeup     VendorType = "hair_makeup"
	VendorPhotoVideo     VendorType = "photo_video"
	VendorVenue          VendorType = "venue"
	VendorWeddingPlanner VendorType = "wedding_planner"
)

func (v VendorType) IsValid() bool {
	switch v {
	case VendorDJ, VendorHairMakeup, VendorPhotoVideo, VendorVenue, VendorWeddingPlanner:
		return true
	}
	return false
}

// ServiceCategory is the service-type discriminator used by vendor types
// that split their offering into two sub-lists (hair vs makeup, photo vs
// video). CategoryBoth requires at least one service in each sub-list.
type ServiceCategory string

const (
	CategoryNone   ServiceCategory = ""
	CategoryHair   ServiceCategory = "hair"
	CategoryMakeup ServiceCategory = "makeup"
	CategoryPhoto  ServiceCategory = "photo"
	CategoryVideo  ServiceCategory = "video"
	CategoryBoth   ServiceCategory = "both"
)

// SubCategories returns the concrete sub-lists a discriminator value
// requires services in. CategoryBoth expands to the two halves of the
// vendor type it belongs to.
func (c ServiceCategory) SubCategories(vt VendorType) []ServiceCategory {
	if c != CategoryBoth {
		if c == CategoryNone {
			return nil
		}
		return []ServiceCategory{c}
	}
	switch vt {
	case VendorHairMakeup:
		return []ServiceCategory{CategoryHair, CategoryMakeup}
	case VendorPhotoVideo:
		return []ServiceCategory{CategoryPhoto, CategoryVideo}
	}
	return nil
}

// Listing is the parent row for one vendor offering. It is created on the
// first successful wizard submit and overwritten wholesale on every edit
// submit; child collections live in their own entities below.
type Listing struct {
	ID              string
	UserID          string
	VendorType      VendorType
	BusinessName    string
	City            string
	State           string
	Description     string
	YearsExperience string
	TravelRange     string
	TravelsAnywhere bool
	DepositPercent  int
	ServiceCategory ServiceCategory
	IsArchived      bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Specialty is a style/specialty child row. (listing_id, label) is unique;
// the whole set is deleted and reinserted on every edit submit.
type Specialty struct {
	ID        string
	ListingID string
	Label     string
	StyleType string
	IsCustom  bool
}

// ServiceKind separates the three priced child collections that share one
// shape: main services, add-ons, and package inclusions.
type ServiceKind string

const (
	KindService   ServiceKind = "service"
	KindAddOn     ServiceKind = "addon"
	KindInclusion ServiceKind = "inclusion"
)

// ServiceItem is a priced child row. DurationHours is zero for vendor
// types that do not price by time. Same delete-all-reinsert lifecycle as
// Specialty.
type ServiceItem struct {
	ID            string
	ListingID     string
	Kind          ServiceKind
	Category      ServiceCategory
	Name          string
	Description   string
	Price         float64
	DurationHours float64
	IsCustom      bool
}

// Media is a stored portfolio entry. Unlike the other child collections it
// is reconciled incrementally: rows survive edits unless the draft dropped
// them. DisplayOrder is the position within the listing's gallery.
type Media struct {
	ID           string
	ListingID    string
	FilePath     string
	DisplayOrder int
	MediaType    string
	CreatedAt    time.Time
}

// MinPortfolioMedia is enforced on the portfolio wizard step for every
// vendor type.
const MinPortfolioMedia = 5

// MinDescriptionChars is the trimmed character count a listing description
// must reach.
const MinDescriptionChars = 100

// Filter narrows listing searches.
type Filter struct {
	Query      string
	VendorType VendorType
	UserID     string
	Archived   *bool
	Page       int64
	Limit      int64
}

// DetailPath is the public page for a listing, used as the post-submit
// redirect target. Archived listings redirect to the filtered dashboard
// view instead.
func (l *Listing) DetailPath() string {
	if l.IsArchived {
		return "/dashboard/listings?service=" + string(l.VendorType)
	}
	return "/services/" + string(l.VendorType) + "/" + l.ID
}
