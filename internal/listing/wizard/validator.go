package wizard

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/domain"
)

// StepError is a validation failure surfaced to the user. It blocks the
// step transition but is never fatal; the draft stays editable.
type StepError struct {
	Step    Step
	Field   string
	Message string
}

func (e *StepError) Error() string {
	return e.Message
}

// Validator checks whether the wizard may advance from a step, returning
// the first violated rule as a user-facing message.
type Validator struct {
	schema Schema
}

func NewValidator(schema Schema) Validator {
	return Validator{schema: schema}
}

// ValidateStep checks the rules of a single step against the full draft
// snapshot. A nil return means the wizard may advance.
func (v Validator) ValidateStep(step Step, d *Draft) error {
	switch step {
	case StepBasics:
		return v.validateBasics(d)
	case StepDetails:
		return v.validateDetails(d)
	case StepSpecialties:
		return v.validateSpecialties(d)
	case StepServices:
		return v.validateServices(d)
	case StepPortfolio:
		return v.validatePortfolio(d)
	}
	return &StepError{Step: step, Message: fmt.Sprintf("unknown wizard step %d", int(step))}
}

// ValidateAll revalidates every step in order. The submit path uses this
// so that jumping straight to the final step cannot bypass earlier rules.
func (v Validator) ValidateAll(d *Draft) error {
	for _, step := range v.schema.Steps() {
		if err := v.ValidateStep(step, d); err != nil {
			return err
		}
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func positiveNumber(s string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil && v > 0
}

func (v Validator) validateBasics(d *Draft) error {
	fail := func(field, msg string) error {
		return &StepError{Step: StepBasics, Field: field, Message: msg}
	}
	if blank(d.BusinessName) {
		return fail("businessName", "Please enter your business name")
	}
	if blank(d.City) || blank(d.State) {
		return fail("location", "Please enter your city and state")
	}
	if blank(d.YearsExperience) {
		return fail("experience", "Please select your years of experience")
	}
	// the anywhere flag waives the travel range requirement
	if !d.TravelsAnywhere {
		if blank(d.TravelRange) {
			return fail("travelRange", "Please enter how far you are willing to travel")
		}
		if !positiveNumber(d.TravelRange) {
			return fail("travelRange", "Travel range must be a number greater than zero")
		}
	}
	if v.schema.HasCategories && d.ServiceCategory == domain.CategoryNone {
		return fail("serviceType", "Please select which services you offer")
	}
	return nil
}

func (v Validator) validateDetails(d *Draft) error {
	fail := func(field, msg string) error {
		return &StepError{Step: StepDetails, Field: field, Message: msg}
	}
	// trimmed character count, not bytes or words
	if utf8.RuneCountInString(strings.TrimSpace(d.Description)) < v.schema.MinDescription {
		return fail("description", fmt.Sprintf("Description must be at least %d characters", v.schema.MinDescription))
	}
	dep, ok := d.DepositValue()
	if !ok {
		return fail("deposit", "Please enter your deposit percentage")
	}
	if dep < 0 || dep > 100 {
		return fail("deposit", "Deposit must be between 0 and 100 percent")
	}
	return nil
}

func (v Validator) validateSpecialties(d *Draft) error {
	fail := func(field, msg string) error {
		return &StepError{Step: StepSpecialties, Field: field, Message: msg}
	}
	for _, s := range d.CustomSpecialties {
		if blank(s) {
			return fail("customSpecialties", "Please fill in or remove the empty specialty")
		}
	}
	if len(d.CatalogSpecialties)+len(d.CustomSpecialties) == 0 {
		return fail("specialties", "Please add at least one specialty")
	}
	return nil
}

func (v Validator) validateServices(d *Draft) error {
	fail := func(field, msg string) error {
		return &StepError{Step: StepServices, Field: field, Message: msg}
	}

	for _, e := range d.Services {
		if err := v.checkEntry(e, "services", fail); err != nil {
			return err
		}
	}
	// a draft custom row with any field filled becomes fully required;
	// an untouched trailing row is ignored
	for _, e := range d.CustomServices {
		if !e.Touched() {
			continue
		}
		if err := v.checkEntry(e, "customServices", fail); err != nil {
			return err
		}
	}
	for _, e := range d.AddOns {
		if !e.Touched() {
			continue
		}
		if err := v.checkEntry(e, "addOns", fail); err != nil {
			return err
		}
	}
	if v.schema.HasInclusions {
		for _, inc := range d.Inclusions {
			if blank(inc) {
				return fail("inclusions", "Please fill in or remove the empty inclusion")
			}
		}
	}

	entries := v.activeServices(d)
	if v.schema.HasCategories {
		for _, cat := range d.ServiceCategory.SubCategories(v.schema.VendorType) {
			if countCategory(entries, cat) == 0 {
				return fail("services", fmt.Sprintf("Please add at least one %s service", cat))
			}
		}
		return nil
	}
	if len(entries) == 0 {
		return fail("services", "Please add at least one service")
	}
	return nil
}

func (v Validator) checkEntry(e ServiceEntry, field string, fail func(string, string) error) error {
	if blank(e.Name) {
		return fail(field, "Please enter a name for each service")
	}
	if blank(e.Price) || !positiveNumber(e.Price) {
		return fail(field, fmt.Sprintf("Please enter a price greater than zero for %q", strings.TrimSpace(e.Name)))
	}
	if v.schema.RequiresDuration {
		if blank(e.Duration) || !positiveNumber(e.Duration) {
			return fail(field, fmt.Sprintf("Please enter a duration greater than zero for %q", strings.TrimSpace(e.Name)))
		}
	}
	return nil
}

// activeServices is the combined list of catalog selections and touched
// custom rows, the set that will actually be submitted.
func (v Validator) activeServices(d *Draft) []ServiceEntry {
	entries := make([]ServiceEntry, 0, len(d.Services)+len(d.CustomServices))
	entries = append(entries, d.Services...)
	for _, e := range d.CustomServices {
		if e.Touched() {
			entries = append(entries, e)
		}
	}
	return entries
}

func countCategory(entries []ServiceEntry, cat domain.ServiceCategory) int {
	n := 0
	for _, e := range entries {
		if e.Category == cat {
			n++
		}
	}
	return n
}

func (v Validator) validatePortfolio(d *Draft) error {
	if len(d.Media) < v.schema.MinMedia {
		return &StepError{
			Step:    StepPortfolio,
			Field:   "media",
			Message: fmt.Sprintf("Please upload at least %d photos", v.schema.MinMedia),
		}
	}
	return nil
}
