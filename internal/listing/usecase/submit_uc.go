package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	natsadapter "github.com/Merey-A/WeddingMarketplace/listing-service/internal/adapter/messaging/nats"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/adapter/payment"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/domain"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/wizard"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/mailer"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/platform/logger"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/platform/metrics"
)

const (
	subjectListingCreated      = "listing.created"
	subjectListingUpdated      = "listing.updated"
	subjectSubscriptionCreated = "listing.subscription.created"
)

// Stage is the coarse progress state the create flow reports for UI
// display.
type Stage string

const (
	StageListing      Stage = "creating_listing"
	StageSubscription Stage = "creating_subscription"
)

// BillingSelection is the paid tier chosen during create. A nil selection
// means the free flow.
type BillingSelection struct {
	PriceID  string
	TierType string
	IsAnnual bool
}

// SubmitResult is returned by the edit path.
type SubmitResult struct {
	ListingID    string
	RedirectPath string
}

// CreateResult is returned by the create path. When the actor has no
// stored payment method the listing is created but the flow pauses:
// NeedsPaymentMethod is set together with the setup-intent client secret.
type CreateResult struct {
	ListingID          string
	RedirectPath       string
	NeedsPaymentMethod bool
	SetupClientSecret  string
}

// Submitter performs the full create-or-update sequence for one listing.
// Steps are sequenced, not transactional: a failure partway leaves the
// earlier steps committed and the caller sees one wrapped error.
type Submitter struct {
	listings    domain.ListingRepository
	specialties domain.SpecialtyRepository
	services    domain.ServiceRepository
	reconciler  *MediaReconciler
	payments    payment.Provider
	cache       ListingCache
	publisher   natsadapter.MessagePublisher
	mail        mailer.Mailer
	metrics     *metrics.Manager
	logger      logger.Logger
}

func NewSubmitter(
	listings domain.ListingRepository,
	specialties domain.SpecialtyRepository,
	services domain.ServiceRepository,
	reconciler *MediaReconciler,
	payments payment.Provider,
	cache ListingCache,
	publisher natsadapter.MessagePublisher,
	mail mailer.Mailer,
	m *metrics.Manager,
	log logger.Logger,
) *Submitter {
	return &Submitter{
		listings:    listings,
		specialties: specialties,
		services:    services,
		reconciler:  reconciler,
		payments:    payments,
		cache:       cache,
		publisher:   publisher,
		mail:        mail,
		metrics:     m,
		logger:      log,
	}
}

// Update runs the edit sequence: revalidate the whole draft, overwrite the
// parent row wholesale, delete-and-reinsert the child collections,
// reconcile media, then re-fetch the archived flag to pick the redirect
// target.
func (s *Submitter) Update(ctx context.Context, actorID, listingID string, d *wizard.Draft) (*SubmitResult, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if err := s.validate(d); err != nil {
		return nil, err
	}

	listing, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load listing %s: %w", listingID, err)
	}
	if listing.UserID != actorID {
		s.logger.Warnf("User %s attempted to update listing %s owned by %s", actorID, listingID, listing.UserID)
		return nil, domain.ErrForbidden
	}

	applyDraft(listing, d)
	listing.UpdatedAt = time.Now().UTC()
	if err := s.listings.Update(ctx, listing); err != nil {
		s.countFailure("update_listing")
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}

	if err := s.replaceSpecialties(ctx, listingID, d); err != nil {
		s.countFailure("specialties")
		return nil, err
	}

	if len(d.Media) > 0 {
		if err := s.reconciler.Reconcile(ctx, listing, d.Media); err != nil {
			s.countFailure("media")
			return nil, err
		}
	}

	if err := s.replaceServices(ctx, listingID, d); err != nil {
		s.countFailure("services")
		return nil, err
	}

	// the archived flag decides where the client navigates next
	updated, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload listing %s: %w", listingID, err)
	}

	if err := s.cache.DeleteListing(ctx, listingID); err != nil {
		s.logger.Warnf("Failed to invalidate cache for listing %s: %v", listingID, err)
	}
	s.publish(ctx, subjectListingUpdated, updated)
	if s.metrics != nil {
		s.metrics.ListingsUpdatedTotal.Inc()
	}

	s.logger.Infof("Listing %s updated by user %s", listingID, actorID)
	return &SubmitResult{ListingID: listingID, RedirectPath: updated.DetailPath()}, nil
}

// Create runs the create sequence, then the billing flow when a paid tier
// was selected. progress, when non-nil, receives the coarse stage
// transitions.
func (s *Submitter) Create(ctx context.Context, actorID, actorEmail string, d *wizard.Draft, billing *BillingSelection, progress func(Stage)) (*CreateResult, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if err := s.validate(d); err != nil {
		return nil, err
	}

	// one listing per vendor per service line
	existing, _, err := s.listings.FindByFilter(ctx, domain.Filter{UserID: actorID, VendorType: d.VendorType, Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("failed to check existing listings: %w", err)
	}
	if len(existing) > 0 {
		return nil, domain.ErrDuplicateListing
	}

	report := func(stage Stage) {
		if progress != nil {
			progress(stage)
		}
	}

	report(StageListing)
	listing := &domain.Listing{UserID: actorID, VendorType: d.VendorType}
	applyDraft(listing, d)
	now := time.Now().UTC()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	id, err := s.listings.Create(ctx, listing)
	if err != nil {
		s.countFailure("create_listing")
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	listing.ID = id

	if err := s.insertSpecialties(ctx, id, d); err != nil {
		s.countFailure("specialties")
		return nil, err
	}
	if len(d.Media) > 0 {
		if err := s.reconciler.Reconcile(ctx, listing, d.Media); err != nil {
			s.countFailure("media")
			return nil, err
		}
	}
	if err := s.insertServices(ctx, id, d); err != nil {
		s.countFailure("services")
		return nil, err
	}

	// listing and children are fully committed at this point
	s.publish(ctx, subjectListingCreated, listing)
	if s.mail != nil && actorEmail != "" {
		if err := s.mail.SendListingCreated(actorEmail, listing.BusinessName); err != nil {
			s.logger.Warnf("Failed to send listing created email for %s: %v", id, err)
		}
	}
	if s.metrics != nil {
		s.metrics.ListingsCreatedTotal.Inc()
	}
	s.logger.Infof("Listing %s created by user %s", id, actorID)

	result := &CreateResult{ListingID: id, RedirectPath: listing.DetailPath()}

	if billing != nil {
		has, err := s.payments.HasPaymentMethod(ctx, actorID)
		if err != nil {
			s.countFailure("payment_method_check")
			return nil, fmt.Errorf("failed to check payment method: %w", err)
		}
		if !has {
			secret, err := s.payments.CreateSetupIntent(ctx, actorID)
			if err != nil {
				s.countFailure("setup_intent")
				return nil, fmt.Errorf("failed to start payment method setup: %w", err)
			}
			result.NeedsPaymentMethod = true
			result.SetupClientSecret = secret
			s.logger.Infof("Listing %s created, awaiting payment method for user %s", id, actorID)
			return result, nil
		}

		report(StageSubscription)
		redirect, err := s.subscribe(ctx, actorID, listing, *billing)
		if err != nil {
			return nil, err
		}
		result.RedirectPath = redirect
	}

	return result, nil
}

// Subscribe finishes the billing flow once a payment method has been
// confirmed after a setup-intent pause.
func (s *Submitter) Subscribe(ctx context.Context, actorID, listingID string, billing BillingSelection) (string, error) {
	if actorID == "" {
		return "", domain.ErrUnauthenticated
	}
	listing, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		return "", fmt.Errorf("failed to load listing %s: %w", listingID, err)
	}
	if listing.UserID != actorID {
		return "", domain.ErrForbidden
	}
	return s.subscribe(ctx, actorID, listing, billing)
}

func (s *Submitter) subscribe(ctx context.Context, actorID string, listing *domain.Listing, billing BillingSelection) (string, error) {
	sub, err := s.payments.CreateSubscription(ctx, payment.SubscriptionParams{
		PriceID:     billing.PriceID,
		UserID:      actorID,
		ServiceType: string(listing.VendorType),
		TierType:    billing.TierType,
		IsAnnual:    billing.IsAnnual,
		ListingID:   listing.ID,
	})
	if err != nil {
		s.countFailure("subscription")
		if s.metrics != nil {
			s.metrics.SubscriptionsTotal.WithLabelValues("declined").Inc()
		}
		return "", &BillingError{Reason: DeclineMessage(err), Err: err}
	}
	if s.metrics != nil {
		s.metrics.SubscriptionsTotal.WithLabelValues("created").Inc()
	}
	s.publish(ctx, subjectSubscriptionCreated, map[string]string{
		"listing_id":      listing.ID,
		"user_id":         actorID,
		"subscription_id": sub.SubscriptionID,
	})
	return sub.RedirectURL, nil
}

func (s *Submitter) validate(d *wizard.Draft) error {
	if d == nil {
		return domain.ErrInvalidListing
	}
	schema, err := wizard.SchemaFor(d.VendorType)
	if err != nil {
		return err
	}
	// every step is rechecked on submit so a jump to the final step
	// cannot bypass earlier rules
	return wizard.NewValidator(schema).ValidateAll(d)
}

func (s *Submitter) replaceSpecialties(ctx context.Context, listingID string, d *wizard.Draft) error {
	if err := s.specialties.DeleteByListingID(ctx, listingID); err != nil {
		return fmt.Errorf("failed to update specialties: %w", err)
	}
	return s.insertSpecialties(ctx, listingID, d)
}

func (s *Submitter) insertSpecialties(ctx context.Context, listingID string, d *wizard.Draft) error {
	rows := buildSpecialties(listingID, d)
	if len(rows) == 0 {
		return nil
	}
	if err := s.specialties.InsertMany(ctx, rows); err != nil {
		return fmt.Errorf("failed to update specialties: %w", err)
	}
	return nil
}

func (s *Submitter) replaceServices(ctx context.Context, listingID string, d *wizard.Draft) error {
	if err := s.services.DeleteByListingID(ctx, listingID); err != nil {
		return fmt.Errorf("failed to update services: %w", err)
	}
	return s.insertServices(ctx, listingID, d)
}

func (s *Submitter) insertServices(ctx context.Context, listingID string, d *wizard.Draft) error {
	rows := buildServices(listingID, d)
	if len(rows) == 0 {
		return nil
	}
	if err := s.services.InsertMany(ctx, rows); err != nil {
		return fmt.Errorf("failed to update services: %w", err)
	}
	return nil
}

func (s *Submitter) publish(ctx context.Context, subject string, message interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, subject, message); err != nil {
		s.logger.Warnf("Failed to publish %s event: %v", subject, err)
	}
}

func (s *Submitter) countFailure(stage string) {
	if s.metrics != nil {
		s.metrics.SubmitFailuresTotal.WithLabelValues(stage).Inc()
	}
}

// applyDraft overwrites every scalar field of the listing from the draft
// snapshot. Edits are full-row updates, not partial patches.
func applyDraft(listing *domain.Listing, d *wizard.Draft) {
	listing.VendorType = d.VendorType
	listing.BusinessName = strings.TrimSpace(d.BusinessName)
	listing.City = strings.TrimSpace(d.City)
	listing.State = strings.TrimSpace(d.State)
	listing.Description = strings.TrimSpace(d.Description)
	listing.YearsExperience = strings.TrimSpace(d.YearsExperience)
	listing.TravelsAnywhere = d.TravelsAnywhere
	if d.TravelsAnywhere {
		listing.TravelRange = ""
	} else {
		listing.TravelRange = strings.TrimSpace(d.TravelRange)
	}
	if dep, ok := d.DepositValue(); ok {
		listing.DepositPercent = dep
	}
	listing.ServiceCategory = d.ServiceCategory
}

// buildSpecialties reconstructs the specialty set: catalog selections plus
// non-blank custom entries, de-duplicated by label before insert.
func buildSpecialties(listingID string, d *wizard.Draft) []domain.Specialty {
	seen := make(map[string]bool)
	var rows []domain.Specialty
	add := func(label string, custom bool) {
		label = strings.TrimSpace(label)
		if label == "" || seen[label] {
			return
		}
		seen[label] = true
		rows = append(rows, domain.Specialty{
			ListingID: listingID,
			Label:     label,
			IsCustom:  custom,
		})
	}
	for _, label := range d.CatalogSpecialties {
		add(label, false)
	}
	for _, label := range d.CustomSpecialties {
		add(label, true)
	}
	return rows
}

// buildServices reconstructs services, add-ons and inclusions. Untouched
// draft rows are dropped; touched rows were already fully validated.
func buildServices(listingID string, d *wizard.Draft) []domain.ServiceItem {
	var rows []domain.ServiceItem
	appendEntry := func(e wizard.ServiceEntry, kind domain.ServiceKind) {
		if !e.Touched() {
			return
		}
		rows = append(rows, domain.ServiceItem{
			ListingID:     listingID,
			Kind:          kind,
			Category:      e.Category,
			Name:          strings.TrimSpace(e.Name),
			Description:   strings.TrimSpace(e.Description),
			Price:         parseAmount(e.Price),
			DurationHours: parseAmount(e.Duration),
			IsCustom:      e.Custom,
		})
	}
	for _, e := range d.Services {
		appendEntry(e, domain.KindService)
	}
	for _, e := range d.CustomServices {
		appendEntry(e, domain.KindService)
	}
	for _, e := range d.AddOns {
		appendEntry(e, domain.KindAddOn)
	}
	for _, name := range d.Inclusions {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		rows = append(rows, domain.ServiceItem{
			ListingID: listingID,
			Kind:      domain.KindInclusion,
			Name:      name,
			IsCustom:  true,
		})
	}
	return rows
}

func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// BillingError carries the user-facing decline reason alongside the
// underlying provider error.
type BillingError struct {
	Reason string
	Err    error
}

func (e *BillingError) Error() string { return e.Reason }
func (e *BillingError) Unwrap() error { return e.Err }
