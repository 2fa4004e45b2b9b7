package service

import (
	"context"

	"post-content-api/internal/client"
	"post-content-api/internal/domain"
)

// MockPostRepository is a mock implementation of PostRepository
type MockPostRepository struct {
	CreateFunc   func(ctx context.Context, post *domain.Post) error
	FindByIDFunc func(ctx context.Context, id uint) (*domain.Post, error)
	FindAllFunc  func(ctx context.Context) ([]*domain.Post, error)
	UpdateFunc   func(ctx context.Context, post *domain.Post) error
	DeleteFunc   func(ctx context.Context, id uint) error
}

func (m *MockPostRepository) Create(ctx context.Context, post *domain.Post) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, post)
	}
	return nil
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockPostRepository) FindAll(ctx context.Context) ([]*domain.Post, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockPostRepository) Update(ctx context.Context, post *domain.Post) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, post)
	}
	return nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockAttachmentRepository is a mock implementation of AttachmentRepository
type MockAttachmentRepository struct {
	CreateFunc       func(ctx context.Context, attachment *domain.Attachment) error
	FindByIDFunc     func(ctx context.Context, id uint) (*domain.Attachment, error)
	FindByOwnerFunc  func(ctx context.Context, owner domain.Owner) ([]*domain.Attachment, error)
	FindByOwnersFunc func(ctx context.Context, ownerType domain.OwnerType, ownerIDs []uint) ([]*domain.Attachment, error)
	DeleteFunc       func(ctx context.Context, id uint) error
	DeleteBatchFunc  func(ctx context.Context, ids []uint) error
	FindOrphansFunc  func(ctx context.Context) ([]*domain.Attachment, error)
}

func (m *MockAttachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, attachment)
	}
	return nil
}

func (m *MockAttachmentRepository) FindByID(ctx context.Context, id uint) (*domain.Attachment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) FindByOwner(ctx context.Context, owner domain.Owner) ([]*domain.Attachment, error) {
	if m.FindByOwnerFunc != nil {
		return m.FindByOwnerFunc(ctx, owner)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) FindByOwners(ctx context.Context, ownerType domain.OwnerType, ownerIDs []uint) ([]*domain.Attachment, error) {
	if m.FindByOwnersFunc != nil {
		return m.FindByOwnersFunc(ctx, ownerType, ownerIDs)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockAttachmentRepository) DeleteBatch(ctx context.Context, ids []uint) error {
	if m.DeleteBatchFunc != nil {
		return m.DeleteBatchFunc(ctx, ids)
	}
	return nil
}

func (m *MockAttachmentRepository) FindOrphans(ctx context.Context) ([]*domain.Attachment, error) {
	if m.FindOrphansFunc != nil {
		return m.FindOrphansFunc(ctx)
	}
	return nil, nil
}

// MockNotifier records every event it is asked to deliver
type MockNotifier struct {
	Events     []client.Event
	NotifyFunc func(ctx context.Context, event client.Event) error
}

func (m *MockNotifier) Notify(ctx context.Context, event client.Event) error {
	m.Events = append(m.Events, event)
	if m.NotifyFunc != nil {
		return m.NotifyFunc(ctx, event)
	}
	return nil
}
