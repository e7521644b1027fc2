package wizard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/domain"
)

func validDraft(vt domain.VendorType) *Draft {
	d := &Draft{
		VendorType:      vt,
		BusinessName:    "Test Business",
		City:            "Austin",
		State:           "TX",
		YearsExperience: "3-5",
		TravelRange:     "50",
		Description:     strings.Repeat("a", 120),
		DepositPercent:  "20",
		CatalogSpecialties: []string{"Classic"},
		Media: []MediaItem{
			{FileName: "a.jpg", Data: []byte{1}},
			{FileName: "b.jpg", Data: []byte{1}},
			{FileName: "c.jpg", Data: []byte{1}},
			{FileName: "d.jpg", Data: []byte{1}},
			{FileName: "e.jpg", Data: []byte{1}},
		},
	}
	switch vt {
	case domain.VendorDJ:
		d.Services = []ServiceEntry{{Name: "Reception DJ", Price: "100", Duration: "2"}}
	case domain.VendorVenue:
		d.Services = []ServiceEntry{{Name: "Full Venue Rental", Price: "5000"}}
	case domain.VendorWeddingPlanner:
		d.Services = []ServiceEntry{{Name: "Full Planning", Price: "3000"}}
	case domain.VendorHairMakeup:
		d.ServiceCategory = domain.CategoryBoth
		d.Services = []ServiceEntry{
			{Name: "Bridal Hair", Price: "150", Duration: "1", Category: domain.CategoryHair},
			{Name: "Bridal Makeup", Price: "150", Duration: "1", Category: domain.CategoryMakeup},
		}
	case domain.VendorPhotoVideo:
		d.ServiceCategory = domain.CategoryPhoto
		d.Services = []ServiceEntry{
			{Name: "8 Hour Photography", Price: "2500", Duration: "8", Category: domain.CategoryPhoto},
		}
	}
	return d
}

func validatorFor(t *testing.T, vt domain.VendorType) Validator {
	t.Helper()
	schema, err := SchemaFor(vt)
	require.NoError(t, err)
	return NewValidator(schema)
}

func TestSchemaFor_UnknownVendor(t *testing.T) {
	_, err := SchemaFor("florist")
	assert.ErrorIs(t, err, domain.ErrInvalidVendor)
}

func TestValidateAll_ValidDraftEveryVendorType(t *testing.T) {
	for _, vt := range []domain.VendorType{
		domain.VendorDJ,
		domain.VendorHairMakeup,
		domain.VendorPhotoVideo,
		domain.VendorVenue,
		domain.VendorWeddingPlanner,
	} {
		t.Run(string(vt), func(t *testing.T) {
			v := validatorFor(t, vt)
			assert.NoError(t, v.ValidateAll(validDraft(vt)))
		})
	}
}

func TestValidateBasics_MissingFields(t *testing.T) {
	v := validatorFor(t, domain.VendorDJ)

	d := validDraft(domain.VendorDJ)
	d.BusinessName = "   "
	err := v.ValidateStep(StepBasics, d)
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepBasics, stepErr.Step)
	assert.Equal(t, "businessName", stepErr.Field)

	d = validDraft(domain.VendorDJ)
	d.City = ""
	err = v.ValidateStep(StepBasics, d)
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "location", stepErr.Field)
}

func TestValidateBasics_TravelsAnywhereWaivesRange(t *testing.T) {
	v := validatorFor(t, domain.VendorDJ)
	d := validDraft(domain.VendorDJ)
	d.TravelRange = ""

	err := v.ValidateStep(StepBasics, d)
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "travelRange", stepErr.Field)

	d.TravelsAnywhere = true
	assert.NoError(t, v.ValidateStep(StepBasics, d))
}

func TestValidateBasics_ServiceTypeRequiredForCategoryVendors(t *testing.T) {
	v := validatorFor(t, domain.VendorHairMakeup)
	d := validDraft(domain.VendorHairMakeup)
	d.ServiceCategory = domain.CategoryNone

	err := v.ValidateStep(StepBasics, d)
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "serviceType", stepErr.Field)
}

func TestValidateDetails_DescriptionBoundary(t *testing.T) {
	v := validatorFor(t, domain.VendorDJ)
	d := validDraft(domain.VendorDJ)

	d.Description = strings.Repeat("x", 99)
	err := v.ValidateStep(StepDetails, d)
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "description", stepErr.Field)

	d.Description = strings.Repeat("x", 100)
	assert.NoError(t, v.ValidateStep(StepDetails, d))
}

func TestValidateDetails_DescriptionCountsTrimmedRunes(t *testing.T) {
	v := validatorFor(t, domain.VendorDJ)
	d := validDraft(domain.VendorDJ)

	// 99 visible characters padded with whitespace must still fail
	d.Description = "   " + strings.Repeat("x", 99) + "   "
	assert.Error(t, v.ValidateStep(StepDetails, d))

	// multi-byte runes count as single characters
	d.Description = strings.Repeat("é", 100)
	assert.NoError(t, v.ValidateStep(StepDetails, d))
}

func TestValidateDetails_DepositRequired(t *testing.T) {
	v := validatorFor(t, domain.VendorDJ)
	d := validDraft(domain.VendorDJ)
	d.DepositPercent = ""

	err := v.ValidateStep(StepDetails, d)
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "deposit", stepErr.Field)
}

func TestValidateSpecialties(t *testing.T) {
	v := validatorFor(t, domain.VendorDJ)

	d := validDraft(domain.VendorDJ)
	d.CatalogSpecialties = nil
	d.CustomSpecialties = nil
	err := v.ValidateStep(StepSpecialties, d)
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "specialties", stepErr.Field)

	// a blank custom slot blocks even when catalog picks exist
	d = validDraft(domain.VendorDJ)
	d.CustomSpecialties = []string{"Open Format", "  "}
	err = v.ValidateStep(StepSpecialties, d)
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "customSpecialties", stepErr.Field)
}

func TestValidateServices_TouchedCustomRowBecomesRequired(t *testing.T) {
	v := validatorFor(t, domain.VendorDJ)
	d := validDraft(domain.VendorDJ)

	// untouched trailing row is ignored
	d.CustomServices = []ServiceEntry{{Custom: true}}
	assert.NoError(t, v.ValidateStep(StepServices, d))

	// one filled field makes name, price and duration all required
	d.CustomServices = []ServiceEntry{{Price: "50", Custom: true}}
	err := v.ValidateStep(StepServices, d)
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "customServices", stepErr.Field)
}

func TestValidateServices_DurationOnlyWhereRequired(t *testing.T) {
	// venues price per rental, duration never required
	v := validatorFor(t, domain.VendorVenue)
	d := validDraft(domain.VendorVenue)
	assert.NoError(t, v.ValidateStep(StepServices, d))

	v = validatorFor(t, domain.VendorDJ)
	d = validDraft(domain.VendorDJ)
	d.Services[0].Duration = ""
	assert.Error(t, v.ValidateStep(StepServices, d))
}

func TestValidateServices_BothCategoriesRequireEachHalf(t *testing.T) {
	v := validatorFor(t, domain.VendorHairMakeup)
	d := validDraft(domain.VendorHairMakeup)
	d.Services = []ServiceEntry{
		{Name: "Bridal Hair", Price: "150", Duration: "1", Category: domain.CategoryHair},
	}

	err := v.ValidateStep(StepServices, d)
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "services", stepErr.Field)
	assert.Contains(t, stepErr.Message, "makeup")
}

func TestValidateServices_SingleCategoryOnlyNeedsThatHalf(t *testing.T) {
	v := validatorFor(t, domain.VendorPhotoVideo)
	d := validDraft(domain.VendorPhotoVideo)
	assert.NoError(t, v.ValidateStep(StepServices, d))
}

func TestValidateServices_BlankInclusionBlocksPlanner(t *testing.T) {
	v := validatorFor(t, domain.VendorWeddingPlanner)
	d := validDraft(domain.VendorWeddingPlanner)
	d.Inclusions = []string{"Vendor coordination", ""}

	err := v.ValidateStep(StepServices, d)
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "inclusions", stepErr.Field)
}

func TestValidatePortfolio_MinimumMedia(t *testing.T) {
	v := validatorFor(t, domain.VendorDJ)
	d := validDraft(domain.VendorDJ)
	d.Media = d.Media[:4]

	err := v.ValidateStep(StepPortfolio, d)
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "media", stepErr.Field)

	// persisted entries count the same as fresh attachments
	d.Media = append(d.Media, MediaItem{ID: "m5", FilePath: "dj/1/4-1.jpg"})
	assert.NoError(t, v.ValidateStep(StepPortfolio, d))
}

func TestValidateAll_RechecksEarlierSteps(t *testing.T) {
	v := validatorFor(t, domain.VendorDJ)
	d := validDraft(domain.VendorDJ)
	d.BusinessName = ""

	err := v.ValidateAll(d)
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepBasics, stepErr.Step)
}

func TestStepFromName(t *testing.T) {
	step, err := StepFromName("portfolio")
	require.NoError(t, err)
	assert.Equal(t, StepPortfolio, step)

	_, err = StepFromName("payment")
	assert.Error(t, err)
}
