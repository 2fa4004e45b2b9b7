package dto

import (
	"time"

	"post-content-api/internal/domain"
)

// AttachmentResponse represents attachment data returned to the client
type AttachmentResponse struct {
	ID           uint             `json:"id"`
	FileableID   uint             `json:"fileableId"`
	FileableType domain.OwnerType `json:"fileableType"`
	FilePath     string           `json:"filePath"`
	FileURL      string           `json:"fileUrl"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// PostResponse represents post data returned to the client
type PostResponse struct {
	ID          uint                 `json:"id"`
	Title       string               `json:"title"`
	Body        string               `json:"body"`
	Attachments []AttachmentResponse `json:"attachments"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// URLResolver maps a storage key to a public URL
type URLResolver func(key string) string

// ToAttachmentResponse converts an attachment to its response form
func ToAttachmentResponse(a *domain.Attachment, resolve URLResolver) AttachmentResponse {
	return AttachmentResponse{
		ID:           a.ID,
		FileableID:   a.FileableID,
		FileableType: a.FileableType,
		FilePath:     a.FilePath,
		FileURL:      resolve(a.FilePath),
		CreatedAt:    a.CreatedAt,
	}
}

// ToPostResponse converts a post with loaded attachments to its response form
func ToPostResponse(p *domain.Post, resolve URLResolver) PostResponse {
	attachments := make([]AttachmentResponse, 0, len(p.Attachments))
	for i := range p.Attachments {
		attachments = append(attachments, ToAttachmentResponse(&p.Attachments[i], resolve))
	}

	return PostResponse{
		ID:          p.ID,
		Title:       p.Title,
		Body:        p.Body,
		Attachments: attachments,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToPostResponses converts a post list
func ToPostResponses(posts []*domain.Post, resolve URLResolver) []PostResponse {
	result := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		result = append(result, ToPostResponse(p, resolve))
	}
	return result
}
