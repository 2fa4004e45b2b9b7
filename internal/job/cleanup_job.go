package job

import (
	"context"

	"go.uber.org/zap"

	"post-content-api/internal/client"
	"post-content-api/internal/repository"
)

// CleanupJob removes attachment records whose owning post no longer exists.
// Such orphans can appear when a post deletion fails between the blob and
// record phases; the job keeps the stores convergent.
type CleanupJob struct {
	attachmentRepo repository.AttachmentRepository
	blob           client.BlobClient
	logger         *zap.Logger
}

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(
	attachmentRepo repository.AttachmentRepository,
	blob client.BlobClient,
	logger *zap.Logger,
) *CleanupJob {
	return &CleanupJob{
		attachmentRepo: attachmentRepo,
		blob:           blob,
		logger:         logger,
	}
}

// Run executes the cleanup job.
// Stored bytes are removed first; records whose blob deletion failed are
// kept so the next run retries them.
func (j *CleanupJob) Run() {
	ctx := context.Background()

	j.logger.Info("Starting cleanup job for orphaned attachments")

	orphans, err := j.attachmentRepo.FindOrphans(ctx)
	if err != nil {
		j.logger.Error("Failed to find orphaned attachments",
			zap.Error(err),
		)
		return
	}

	if len(orphans) == 0 {
		j.logger.Info("No orphaned attachments found")
		return
	}

	j.logger.Info("Found orphaned attachments",
		zap.Int("count", len(orphans)),
	)

	var deletableIDs []uint
	successCount := 0
	failCount := 0

	for _, attachment := range orphans {
		if err := j.blob.Delete(ctx, attachment.FilePath); err != nil {
			j.logger.Error("Failed to delete stored file",
				zap.Uint("attachment_id", attachment.ID),
				zap.String("file_path", attachment.FilePath),
				zap.Error(err),
			)
			failCount++
			continue
		}

		deletableIDs = append(deletableIDs, attachment.ID)
		successCount++

		j.logger.Debug("Deleted stored file",
			zap.Uint("attachment_id", attachment.ID),
			zap.String("file_path", attachment.FilePath),
		)
	}

	if len(deletableIDs) > 0 {
		if err := j.attachmentRepo.DeleteBatch(ctx, deletableIDs); err != nil {
			j.logger.Error("Failed to delete attachment records",
				zap.Int("count", len(deletableIDs)),
				zap.Error(err),
			)
		} else {
			j.logger.Info("Deleted attachment records",
				zap.Int("count", len(deletableIDs)),
			)
		}
	}

	j.logger.Info("Cleanup job completed",
		zap.Int("total_orphans", len(orphans)),
		zap.Int("success", successCount),
		zap.Int("failed", failCount),
	)
}
