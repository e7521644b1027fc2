package wizard

import (
	"fmt"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/domain"
)

// Step indexes the wizard pages. Every vendor type walks the same five
// steps; the schema flags control which rules apply within each.
type Step int

const (
	StepBasics Step = iota
	StepDetails
	StepSpecialties
	StepServices
	StepPortfolio

	stepCount
)

func (s Step) String() string {
	switch s {
	case StepBasics:
		return "basics"
	case StepDetails:
		return "details"
	case StepSpecialties:
		return "specialties"
	case StepServices:
		return "services"
	case StepPortfolio:
		return "portfolio"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// StepFromName maps a step name back to its index, for callers that
// address steps by name over the wire.
func StepFromName(name string) (Step, error) {
	for i := Step(0); i < stepCount; i++ {
		if i.String() == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown wizard step %q", name)
}

// Schema is the per-vendor-type descriptor that parameterizes the wizard:
// which rules apply, instead of five copy-pasted variants of the flow.
type Schema struct {
	VendorType       domain.VendorType
	RequiresDuration bool
	HasCategories    bool
	HasInclusions    bool
	MinDescription   int
	MinMedia         int
}

// SchemaFor returns the wizard schema for a vendor type.
func SchemaFor(vt domain.VendorType) (Schema, error) {
	s := Schema{
		VendorType:     vt,
		MinDescription: domain.MinDescriptionChars,
		MinMedia:       domain.MinPortfolioMedia,
	}
	switch vt {
	case domain.VendorDJ:
		s.RequiresDuration = true
	case domain.VendorHairMakeup:
		s.RequiresDuration = true
		s.HasCategories = true
	case domain.VendorPhotoVideo:
		s.RequiresDuration = true
		s.HasCategories = true
	case domain.VendorVenue:
		// venues price per rental, not per hour
	case domain.VendorWeddingPlanner:
		s.HasInclusions = true
	default:
		return Schema{}, fmt.Errorf("%w: %q", domain.ErrInvalidVendor, vt)
	}
	return s, nil
}

// Steps returns the ordered wizard steps.
func (s Schema) Steps() []Step {
	steps := make([]Step, 0, stepCount)
	for i := Step(0); i < stepCount; i++ {
		steps = append(steps, i)
	}
	return steps
}
