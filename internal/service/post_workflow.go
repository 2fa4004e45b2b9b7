package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"post-content-api/internal/client"
	"post-content-api/internal/domain"
	"post-content-api/internal/metrics"
	"post-content-api/internal/repository"
	"post-content-api/internal/response"
)

// PostWorkflow orchestrates the post editing flow: validate, upsert,
// handle uploads, emit a notification, reset the editing state
type PostWorkflow interface {
	List(ctx context.Context) ([]*domain.Post, error)
	Create(session *EditSession)
	Edit(ctx context.Context, session *EditSession, id uint) error
	Store(ctx context.Context, session *EditSession) error
	Delete(ctx context.Context, id uint) error
	DeleteFile(ctx context.Context, session *EditSession, fileID uint) error
	CloseModal(session *EditSession)
}

// postWorkflowImpl is the implementation of PostWorkflow
type postWorkflowImpl struct {
	postRepo       repository.PostRepository
	attachmentRepo repository.AttachmentRepository
	blob           client.BlobClient
	notifier       client.Notifier
	validator      *Validator
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewPostWorkflow creates a new instance of PostWorkflow
func NewPostWorkflow(
	postRepo repository.PostRepository,
	attachmentRepo repository.AttachmentRepository,
	blob client.BlobClient,
	notifier client.Notifier,
	validator *Validator,
	m *metrics.Metrics,
	logger *zap.Logger,
) PostWorkflow {
	return &postWorkflowImpl{
		postRepo:       postRepo,
		attachmentRepo: attachmentRepo,
		blob:           blob,
		notifier:       notifier,
		validator:      validator,
		metrics:        m,
		logger:         logger,
	}
}

// List returns all posts newest first, each with its attachments loaded
func (s *postWorkflowImpl) List(ctx context.Context) ([]*domain.Post, error) {
	posts, err := s.postRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list posts", err.Error())
	}

	postIDs := make([]uint, len(posts))
	for i, post := range posts {
		postIDs[i] = post.ID
	}

	// Single query for every post's attachments
	attachments, err := s.attachmentRepo.FindByOwners(ctx, domain.OwnerTypePost, postIDs)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load attachments", err.Error())
	}

	byPost := make(map[uint][]domain.Attachment, len(posts))
	for _, attachment := range attachments {
		if attachment != nil {
			byPost[attachment.FileableID] = append(byPost[attachment.FileableID], *attachment)
		}
	}
	for _, post := range posts {
		post.Attachments = byPost[post.ID]
	}

	return posts, nil
}

// Create resets the form and opens the editing modal for a new post
func (s *postWorkflowImpl) Create(session *EditSession) {
	session.ResetForm()
	session.OpenModal()
}

// Edit loads an existing post and its attachments into the session
func (s *postWorkflowImpl) Edit(ctx context.Context, session *EditSession, id uint) error {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Post not found")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load post", err.Error())
	}

	attachments, err := s.attachmentRepo.FindByOwner(ctx, domain.PostOwner(post.ID))
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to load attachments", err.Error())
	}

	postID := post.ID
	session.PostID = &postID
	session.Title = post.Title
	session.Body = post.Body
	session.Uploads = nil
	session.Attachments = toDomainAttachments(attachments)
	session.OpenModal()

	return nil
}

// Store validates the session, upserts the post, stores pending uploads,
// emits a post-saved notification, and resets the editing state.
// Validation failure leaves the session untouched and nothing persisted.
func (s *postWorkflowImpl) Store(ctx context.Context, session *EditSession) error {
	if verr := s.validator.ValidateSession(session); verr != nil {
		return verr
	}

	updating := session.Editing()

	var post *domain.Post
	if updating {
		existing, err := s.postRepo.FindByID(ctx, *session.PostID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFoundError("Post not found")
			}
			return response.NewAppError(response.ErrCodeInternal, "Failed to load post", err.Error())
		}

		existing.Title = session.Title
		existing.Body = session.Body
		if err := s.postRepo.Update(ctx, existing); err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to update post", err.Error())
		}
		post = existing
	} else {
		post = &domain.Post{
			Title: session.Title,
			Body:  session.Body,
		}
		if err := s.postRepo.Create(ctx, post); err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to create post", err.Error())
		}
	}

	if err := s.handleUploads(ctx, post.ID, session.Uploads); err != nil {
		return err
	}

	message := "Post created successfully."
	if updating {
		message = "Post updated successfully."
		if s.metrics != nil {
			s.metrics.IncrementPostUpdated()
		}
	} else if s.metrics != nil {
		s.metrics.IncrementPostCreated()
	}

	// Best-effort: the notifier never fails the operation
	_ = s.notifier.Notify(ctx, client.Event{Name: client.EventPostSaved, Message: message})

	s.logger.Info("Post saved",
		zap.Uint("post_id", post.ID),
		zap.Bool("updated", updating),
		zap.Int("uploads", len(session.Uploads)),
	)

	session.CloseModal()
	session.ResetForm()

	return nil
}

// handleUploads stores each pending upload in the blob backend and records
// an attachment owned by the post
func (s *postWorkflowImpl) handleUploads(ctx context.Context, postID uint, uploads []PendingUpload) error {
	for i := range uploads {
		upload := &uploads[i]

		ext := strings.ToLower(filepath.Ext(upload.FileName))
		key := s.blob.GenerateKey(ext)

		if err := s.blob.Upload(ctx, key, upload.Data, upload.ContentType); err != nil {
			return response.NewAppError(response.ErrCodeStorage, "Failed to store uploaded file", err.Error())
		}

		attachment := &domain.Attachment{
			FileableID:   postID,
			FileableType: domain.OwnerTypePost,
			FilePath:     key,
		}
		if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to record attachment", err.Error())
		}

		if s.metrics != nil {
			s.metrics.IncrementAttachmentStored()
		}
	}

	return nil
}

// Delete removes a post, its attachment records, and their stored files.
// Blob removal runs first; a blob failure aborts before any record is
// deleted so no record ends up referencing missing bytes.
func (s *postWorkflowImpl) Delete(ctx context.Context, id uint) error {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Post not found")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load post", err.Error())
	}

	attachments, err := s.attachmentRepo.FindByOwner(ctx, domain.PostOwner(post.ID))
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to load attachments", err.Error())
	}

	attachmentIDs := make([]uint, 0, len(attachments))
	for _, attachment := range attachments {
		if err := s.blob.Delete(ctx, attachment.FilePath); err != nil {
			return response.NewAppError(response.ErrCodeStorage, "Failed to delete stored file", err.Error())
		}
		attachmentIDs = append(attachmentIDs, attachment.ID)
	}

	if err := s.attachmentRepo.DeleteBatch(ctx, attachmentIDs); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete attachments", err.Error())
	}

	if err := s.postRepo.Delete(ctx, post.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Post not found")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete post", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementPostDeleted()
	}

	_ = s.notifier.Notify(ctx, client.Event{Name: client.EventPostDeleted, Message: "Post deleted successfully."})

	s.logger.Info("Post deleted",
		zap.Uint("post_id", post.ID),
		zap.Int("attachments", len(attachments)),
	)

	return nil
}

// DeleteFile removes a single attachment: stored bytes first, then the
// record; afterwards the session's displayed attachment list is refreshed
func (s *postWorkflowImpl) DeleteFile(ctx context.Context, session *EditSession, fileID uint) error {
	attachment, err := s.attachmentRepo.FindByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("File not found")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load file", err.Error())
	}

	if err := s.blob.Delete(ctx, attachment.FilePath); err != nil {
		return response.NewAppError(response.ErrCodeStorage, "Failed to delete stored file", err.Error())
	}

	if err := s.attachmentRepo.Delete(ctx, attachment.ID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete attachment", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementAttachmentDeleted()
	}

	if err := s.refreshSessionAttachments(ctx, session); err != nil {
		return err
	}

	_ = s.notifier.Notify(ctx, client.Event{Name: client.EventFileDeleted, Message: "File deleted successfully."})

	s.logger.Info("File deleted",
		zap.Uint("attachment_id", attachment.ID),
		zap.String("file_path", attachment.FilePath),
	)

	return nil
}

// CloseModal closes the editing modal without saving; form values are only
// cleared by Create or a successful Store
func (s *postWorkflowImpl) CloseModal(session *EditSession) {
	session.CloseModal()
}

// refreshSessionAttachments reloads the displayed attachment list for the
// post being edited, or clears it when no post is being edited
func (s *postWorkflowImpl) refreshSessionAttachments(ctx context.Context, session *EditSession) error {
	if session == nil {
		return nil
	}
	if session.PostID == nil {
		session.Attachments = nil
		return nil
	}

	attachments, err := s.attachmentRepo.FindByOwner(ctx, domain.PostOwner(*session.PostID))
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to refresh attachments", err.Error())
	}
	session.Attachments = toDomainAttachments(attachments)
	return nil
}

// toDomainAttachments converts a pointer slice to a value slice
func toDomainAttachments(attachments []*domain.Attachment) []domain.Attachment {
	if attachments == nil {
		return nil
	}
	result := make([]domain.Attachment, len(attachments))
	for i, att := range attachments {
		if att != nil {
			result[i] = *att
		}
	}
	return result
}
