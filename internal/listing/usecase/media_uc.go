package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/domain"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/listing/wizard"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/platform/logger"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/platform/metrics"
)

const maxConcurrentUploads = 4

// MediaReconciler converges the persisted media rows of a listing to the
// draft's ordered media list: obsolete entries are removed from storage
// and the row table, fresh entries are uploaded and inserted. Rows are
// only written after every upload succeeded, so a metadata row never
// references a missing blob. The reverse gap is accepted: a failed insert
// can leave orphaned blobs behind.
type MediaReconciler struct {
	media   domain.MediaRepository
	storage MediaStorage
	metrics *metrics.Manager
	logger  logger.Logger
}

func NewMediaReconciler(media domain.MediaRepository, storage MediaStorage, m *metrics.Manager, log logger.Logger) *MediaReconciler {
	return &MediaReconciler{
		media:   media,
		storage: storage,
		metrics: m,
		logger:  log,
	}
}

// Reconcile diffs the in-memory list against the persisted set. Calling
// it again with an unchanged all-persisted list performs no storage or
// row operations.
func (r *MediaReconciler) Reconcile(ctx context.Context, listing *domain.Listing, items []wizard.MediaItem) error {
	persisted, err := r.media.FindByListingID(ctx, listing.ID)
	if err != nil {
		return fmt.Errorf("failed to load existing media: %w", err)
	}

	keep := make(map[string]bool, len(items))
	existingCount := 0
	var fresh []wizard.MediaItem
	for _, item := range items {
		if item.Persisted() {
			keep[item.ID] = true
			existingCount++
			continue
		}
		fresh = append(fresh, item)
	}

	var obsolete []domain.Media
	for _, row := range persisted {
		if !keep[row.ID] {
			obsolete = append(obsolete, row)
		}
	}

	if len(obsolete) > 0 {
		keys := make([]string, len(obsolete))
		ids := make([]string, len(obsolete))
		for i, row := range obsolete {
			keys[i] = row.FilePath
			ids[i] = row.ID
		}
		if err := r.storage.Remove(ctx, keys); err != nil {
			return fmt.Errorf("failed to remove media files: %w", err)
		}
		if err := r.media.DeleteByIDs(ctx, ids); err != nil {
			return fmt.Errorf("failed to delete media records: %w", err)
		}
		if r.metrics != nil {
			r.metrics.MediaDeletesTotal.Add(float64(len(obsolete)))
		}
		r.logger.Infof("Removed %d obsolete media entries for listing %s", len(obsolete), listing.ID)
	}

	if len(fresh) == 0 {
		return nil
	}

	uploadedAt := time.Now().UnixMilli()
	staged := make([]domain.Media, len(fresh))
	uploadErrs := make([]error, len(fresh))

	g := new(errgroup.Group)
	g.SetLimit(maxConcurrentUploads)
	for i, item := range fresh {
		key := fmt.Sprintf("%s/%s/%d-%d%s", listing.VendorType, listing.ID, i, uploadedAt, filepath.Ext(item.FileName))
		staged[i] = domain.Media{
			ListingID:    listing.ID,
			FilePath:     key,
			DisplayOrder: existingCount + i,
			MediaType:    item.MediaType,
		}
		i, item := i, item
		g.Go(func() error {
			// failures are collected per item so the aggregate error can
			// name every failed file
			if err := r.storage.Upload(ctx, key, item.Data, item.MediaType); err != nil {
				uploadErrs[i] = fmt.Errorf("upload of %q failed: %w", item.FileName, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	var failed []error
	for _, err := range uploadErrs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("failed to upload media: %w", errors.Join(failed...))
	}

	if err := r.media.InsertMany(ctx, staged); err != nil {
		return fmt.Errorf("failed to save media records: %w", err)
	}
	if r.metrics != nil {
		r.metrics.MediaUploadsTotal.Add(float64(len(staged)))
	}
	r.logger.Infof("Uploaded %d new media entries for listing %s", len(staged), listing.ID)
	return nil
}
