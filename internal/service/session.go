package service

import (
	"io"

	"post-content-api/internal/domain"
)

// PendingUpload is a raw file payload waiting to be stored
type PendingUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// EditSession is the transient per-user state of the post editing flow.
// It is owned by the caller and passed into the workflow; nothing here is
// persisted. A nil PostID means a new post is being created.
type EditSession struct {
	Title       string
	Body        string
	Uploads     []PendingUpload
	PostID      *uint
	Attachments []domain.Attachment
	ModalOpen   bool
}

// ResetForm clears the form fields and the editing target
func (s *EditSession) ResetForm() {
	s.Title = ""
	s.Body = ""
	s.Uploads = nil
	s.PostID = nil
	s.Attachments = nil
}

// OpenModal marks the editing modal as open
func (s *EditSession) OpenModal() {
	s.ModalOpen = true
}

// CloseModal marks the editing modal as closed without clearing the form
func (s *EditSession) CloseModal() {
	s.ModalOpen = false
}

// Editing reports whether an existing post is being edited
func (s *EditSession) Editing() bool {
	return s.PostID != nil
}
