package client

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// MockBlobClient implements BlobClient for testing without AWS credentials
type MockBlobClient struct {
	Bucket string
	Prefix string

	// Optional function overrides for custom test behavior
	GenerateKeyFunc func(fileExt string) string
	UploadFunc      func(ctx context.Context, key string, file io.Reader, contentType string) error
	DeleteFunc      func(ctx context.Context, key string) error
	FileURLFunc     func(key string) string
}

// NewMockBlobClient creates a new mock blob client for testing
func NewMockBlobClient() *MockBlobClient {
	return &MockBlobClient{
		Bucket: "public",
		Prefix: "files",
	}
}

// GenerateKey generates a unique storage key
func (m *MockBlobClient) GenerateKey(fileExt string) string {
	if m.GenerateKeyFunc != nil {
		return m.GenerateKeyFunc(fileExt)
	}

	now := time.Now()
	return fmt.Sprintf("%s/%d/%02d/%s_%d%s",
		m.Prefix, now.Year(), now.Month(), uuid.New().String(), now.UnixNano(), fileExt)
}

// Upload simulates an upload
func (m *MockBlobClient) Upload(ctx context.Context, key string, file io.Reader, contentType string) error {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, key, file, contentType)
	}
	return nil
}

// Delete simulates object deletion
func (m *MockBlobClient) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return nil
}

// FileURL returns the public URL for a stored key
func (m *MockBlobClient) FileURL(key string) string {
	if m.FileURLFunc != nil {
		return m.FileURLFunc(key)
	}
	return fmt.Sprintf("https://%s.s3.ap-northeast-2.amazonaws.com/%s", m.Bucket, key)
}

// Ensure MockBlobClient implements BlobClient
var _ BlobClient = (*MockBlobClient)(nil)
