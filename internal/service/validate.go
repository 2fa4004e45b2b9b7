package service

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"post-content-api/internal/domain"
	"post-content-api/internal/response"
)

// MaxUploadBytes is the upload size ceiling (1024 KiB)
const MaxUploadBytes = 1024 * 1024

var (
	allowedImageTypes = map[string]bool{
		"image/jpeg":    true,
		"image/jpg":     true,
		"image/png":     true,
		"image/gif":     true,
		"image/webp":    true,
		"image/svg+xml": true,
		"image/heic":    true, // iPhone
	}

	allowedImageExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
		".webp": true,
		".svg":  true,
		".heic": true,
	}
)

// defaultMessages are the built-in validation messages keyed by field then rule
var defaultMessages = map[string]map[string]string{
	"title": {
		"required": "The title field is required",
		"min":      fmt.Sprintf("The title must be at least %d characters", domain.TitleMinLength),
		"max":      fmt.Sprintf("The title may not be greater than %d characters", domain.TitleMaxLength),
	},
	"body": {
		"required": "The body field is required",
		"min":      fmt.Sprintf("The body must be at least %d characters", domain.BodyMinLength),
	},
	"uploads": {
		"max":   "The file may not be greater than 1024 kilobytes",
		"image": "The file must be an image",
	},
}

// Validator checks editing-session fields against the post constraints.
// Custom messages override the defaults per (field, rule) pair; this keeps
// message wording a configuration concern rather than workflow logic.
type Validator struct {
	messages map[string]map[string]string
}

// NewValidator creates a validator with optional custom messages
func NewValidator(custom map[string]map[string]string) *Validator {
	return &Validator{messages: custom}
}

// message returns the custom message for (field, rule) or the default
func (v *Validator) message(field, rule string) string {
	if rules, ok := v.messages[field]; ok {
		if msg, ok := rules[rule]; ok {
			return msg
		}
	}
	return defaultMessages[field][rule]
}

// ValidateSession checks the form fields and every pending upload.
// Returns nil when everything passes; otherwise a ValidationError with one
// message per offending field.
func (v *Validator) ValidateSession(s *EditSession) *response.ValidationError {
	fields := response.FieldErrors{}

	// Length bounds count characters, not bytes
	title := strings.TrimSpace(s.Title)
	switch {
	case title == "":
		fields["title"] = v.message("title", "required")
	case utf8.RuneCountInString(title) < domain.TitleMinLength:
		fields["title"] = v.message("title", "min")
	case utf8.RuneCountInString(title) > domain.TitleMaxLength:
		fields["title"] = v.message("title", "max")
	}

	body := strings.TrimSpace(s.Body)
	switch {
	case body == "":
		fields["body"] = v.message("body", "required")
	case utf8.RuneCountInString(body) < domain.BodyMinLength:
		fields["body"] = v.message("body", "min")
	}

	for i := range s.Uploads {
		if err := v.validateUpload(&s.Uploads[i]); err != "" {
			fields[fmt.Sprintf("uploads.%d", i)] = err
		}
	}

	if len(fields) > 0 {
		return response.NewValidationError("The given data was invalid", fields)
	}
	return nil
}

// validateUpload applies the declared upload rules: size ceiling and image
// content type/extension. No content inspection happens here.
func (v *Validator) validateUpload(u *PendingUpload) string {
	if u.Size > MaxUploadBytes {
		return v.message("uploads", "max")
	}

	ext := strings.ToLower(filepath.Ext(u.FileName))
	if !allowedImageTypes[u.ContentType] || !allowedImageExtensions[ext] {
		return v.message("uploads", "image")
	}

	return ""
}
