package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"customer-api/internal/domain/customer"
)

// OrphanImageSweepJob removes profile-image blobs no customer references.
// Re-uploads mint a fresh image id and overwrite only the record's
// reference, so each replaced image leaves one unreferenced blob behind.
type OrphanImageSweepJob struct {
	repo   customer.Repository
	store  customer.ObjectStore
	bucket string
	logger *slog.Logger
}

func NewOrphanImageSweepJob(
	repo customer.Repository,
	store customer.ObjectStore,
	bucket string,
	logger *slog.Logger,
) *OrphanImageSweepJob {
	if repo == nil || store == nil || logger == nil {
		panic("OrphanImageSweepJob dependencies cannot be nil")
	}
	return &OrphanImageSweepJob{
		repo:   repo,
		store:  store,
		bucket: bucket,
		logger: logger.With("job", "OrphanImageSweep"),
	}
}

func (j *OrphanImageSweepJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting orphaned profile-image sweep job.")

	customers, err := j.repo.FindAll(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list customers, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to list customers: %w", err)
	}

	referenced := make(map[string]struct{}, len(customers))
	for _, cust := range customers {
		if cust.ProfileImageID != nil {
			referenced[customer.ProfileImageKey(cust.ID, *cust.ProfileImageID)] = struct{}{}
		}
	}
	j.logger.InfoContext(ctx, "Collected referenced image keys.", slog.Int("count", len(referenced)))

	keys, err := j.store.ListKeys(ctx, j.bucket, customer.ProfileImagePrefix)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list stored image keys, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to list stored images: %w", err)
	}

	var removed, failed int
	for _, key := range keys {
		if _, ok := referenced[key]; ok {
			continue
		}

		logCtx := j.logger.With(slog.String("key", key))
		logCtx.DebugContext(ctx, "Removing orphaned profile image.")
		if err := j.store.RemoveObject(ctx, j.bucket, key); err != nil {
			logCtx.ErrorContext(ctx, "Failed to remove orphaned profile image", slog.Any("error", err))
			failed++
			continue
		}
		removed++
	}

	j.logger.InfoContext(ctx, "Orphaned profile-image sweep job finished.",
		slog.Int("scanned", len(keys)),
		slog.Int("removed", removed),
		slog.Int("failed", failed),
		slog.Duration("duration", time.Since(startTime)),
	)

	if failed > 0 {
		return fmt.Errorf("orphan sweep completed with %d removal failures", failed)
	}
	return nil
}
