package repository

import (
	"context"

	"gorm.io/gorm"

	"post-content-api/internal/domain"
)

// AttachmentRepository defines the interface for attachment data access
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.Attachment) error
	FindByID(ctx context.Context, id uint) (*domain.Attachment, error)
	FindByOwner(ctx context.Context, owner domain.Owner) ([]*domain.Attachment, error)
	FindByOwners(ctx context.Context, ownerType domain.OwnerType, ownerIDs []uint) ([]*domain.Attachment, error)
	Delete(ctx context.Context, id uint) error
	DeleteBatch(ctx context.Context, ids []uint) error
	FindOrphans(ctx context.Context) ([]*domain.Attachment, error)
}

// attachmentRepositoryImpl is the GORM implementation of AttachmentRepository
type attachmentRepositoryImpl struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new instance of AttachmentRepository
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepositoryImpl{db: db}
}

// Create creates a new attachment record
func (r *attachmentRepositoryImpl) Create(ctx context.Context, attachment *domain.Attachment) error {
	if err := r.db.WithContext(ctx).Create(attachment).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds an attachment by its ID
func (r *attachmentRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Attachment, error) {
	var attachment domain.Attachment
	if err := r.db.WithContext(ctx).First(&attachment, id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

// FindByOwner finds all attachments belonging to an owner, newest first
func (r *attachmentRepositoryImpl) FindByOwner(ctx context.Context, owner domain.Owner) ([]*domain.Attachment, error) {
	var attachments []*domain.Attachment
	if err := r.db.WithContext(ctx).
		Where("fileable_type = ? AND fileable_id = ?", owner.Type, owner.ID).
		Order("created_at DESC").
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// FindByOwners finds all attachments belonging to any of the given owners of
// one kind, newest first. One query regardless of owner count
func (r *attachmentRepositoryImpl) FindByOwners(ctx context.Context, ownerType domain.OwnerType, ownerIDs []uint) ([]*domain.Attachment, error) {
	if len(ownerIDs) == 0 {
		return nil, nil
	}

	var attachments []*domain.Attachment
	if err := r.db.WithContext(ctx).
		Where("fileable_type = ? AND fileable_id IN ?", ownerType, ownerIDs).
		Order("created_at DESC").
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// Delete removes an attachment record by ID
// Removing the backing stored bytes is the caller's responsibility
func (r *attachmentRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Attachment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteBatch removes multiple attachment records by their IDs
func (r *attachmentRepositoryImpl) DeleteBatch(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&domain.Attachment{}).Error; err != nil {
		return err
	}
	return nil
}

// FindOrphans finds post attachments whose owning post no longer exists
func (r *attachmentRepositoryImpl) FindOrphans(ctx context.Context) ([]*domain.Attachment, error) {
	var attachments []*domain.Attachment
	if err := r.db.WithContext(ctx).
		Where("fileable_type = ?", domain.OwnerTypePost).
		Where("fileable_id NOT IN (?)", r.db.Model(&domain.Post{}).Select("id")).
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}
