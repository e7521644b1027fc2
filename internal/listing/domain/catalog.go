package domain

// Catalog entries are the predefined options offered by the wizard per
// vendor type. Anything outside these lists is stored as a custom entry.

var catalogSpecialties = map[VendorType][]string{
	VendorDJ: {
		"Top 40", "Hip Hop", "House", "Latin", "Spanish", "Country",
		"Rock", "R&B", "EDM", "Oldies", "Bollywood",
	},
	VendorHairMakeup: {
		"Natural Glam", "Full Glam", "Airbrush", "Bridal Updo",
		"Braids", "Vintage Waves", "Textured Hair", "South Asian Bridal",
	},
	VendorPhotoVideo: {
		"Documentary", "Editorial", "Fine Art", "Candid",
		"Dark & Moody", "Light & Airy", "Film",
	},
	VendorVenue: {
		"Ballroom", "Barn", "Beach", "Garden", "Industrial",
		"Rooftop", "Vineyard", "Historic Estate",
	},
	VendorWeddingPlanner: {
		"Full Planning", "Partial Planning", "Month-Of Coordination",
		"Day-Of Coordination", "Destination Weddings", "Elopements",
	},
}

var catalogServices = map[VendorType][]string{
	VendorDJ: {
		"Reception DJ", "Ceremony Audio", "MC Services", "Lighting Package",
		"Photo Booth", "Cold Sparks",
	},
	VendorHairMakeup: {
		"Bridal Hair", "Bridal Makeup", "Bridesmaid Hair", "Bridesmaid Makeup",
		"Hair Trial", "Makeup Trial", "Touch-Up Hour",
	},
	VendorPhotoVideo: {
		"Full Day Photography", "Half Day Photography", "Engagement Session",
		"Highlight Film", "Feature Film", "Drone Coverage",
	},
	VendorVenue: {
		"Venue Rental", "In-House Catering", "Bar Package",
		"Ceremony Site", "Bridal Suite",
	},
	VendorWeddingPlanner: {
		"Full Service Planning", "Partial Planning", "Month-Of Coordination",
		"Vendor Management", "Design & Styling",
	},
}

// IsCatalogSpecialty reports whether label is a predefined specialty for
// the vendor type. Everything else is treated as custom.
func IsCatalogSpecialty(vt VendorType, label string) bool {
	for _, s := range catalogSpecialties[vt] {
		if s == label {
			return true
		}
	}
	return false
}

// IsCatalogService reports whether name is a predefined service for the
// vendor type.
func IsCatalogService(vt VendorType, name string) bool {
	for _, s := range catalogServices[vt] {
		if s == name {
			return true
		}
	}
	return false
}

// CatalogSpecialties returns the predefined specialty labels for a vendor
// type. The returned slice must not be mutated.
func CatalogSpecialties(vt VendorType) []string {
	return catalogSpecialties[vt]
}

// CatalogServices returns the predefined service names for a vendor type.
func CatalogServices(vt VendorType) []string {
	return catalogServices[vt]
}
