// Package handler provides HTTP request handlers for the API.
package handler

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"post-content-api/internal/client"
	"post-content-api/internal/dto"
	"post-content-api/internal/response"
	"post-content-api/internal/service"
)

// PostHandler handles post-related requests.
// Each request drives the workflow through a fresh editing session; the
// session abstraction belongs to the service layer, the handler only adapts
// transport to it.
type PostHandler struct {
	workflow service.PostWorkflow
	blob     client.BlobClient
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(workflow service.PostWorkflow, blob client.BlobClient) *PostHandler {
	return &PostHandler{
		workflow: workflow,
		blob:     blob,
	}
}

// List godoc
// @Summary      List posts
// @Description  Returns all posts newest first, each with its attachments
// @Tags         posts
// @Produce      json
// @Success      200 {object} response.SuccessResponse
// @Router       / [get]
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.workflow.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, dto.ToPostResponses(posts, h.blob.FileURL))
}

// Get godoc
// @Summary      Get a post for editing
// @Description  Loads a post with its attachments, as shown in the edit form
// @Tags         posts
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /{id} [get]
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	session := &service.EditSession{}
	if err := h.workflow.Edit(c.Request.Context(), session, id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{
		Success: true,
		Data: gin.H{
			"id":          id,
			"title":       session.Title,
			"body":        session.Body,
			"attachments": attachmentResponses(session, h.blob.FileURL),
		},
	})
}

// Create godoc
// @Summary      Create a post
// @Description  Validates title/body and stores any uploaded images
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Param        title formData string true "Post title (3-255 characters)"
// @Param        body formData string true "Post body (at least 10 characters)"
// @Param        photos formData file false "Image attachments (max 1024 KiB each)"
// @Success      201 {object} response.SuccessResponse
// @Failure      400 {object} response.ErrorResponse
// @Router       / [post]
func (h *PostHandler) Create(c *gin.Context) {
	session, ok := h.sessionFromRequest(c, nil)
	if !ok {
		return
	}

	if err := h.workflow.Store(c.Request.Context(), session); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendMessage(c, http.StatusCreated, "Post created successfully.", nil)
}

// Update godoc
// @Summary      Update a post
// @Description  Updates title/body in place and stores any new uploads
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200 {object} response.SuccessResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /{id} [put]
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	session, ok := h.sessionFromRequest(c, &id)
	if !ok {
		return
	}

	if err := h.workflow.Store(c.Request.Context(), session); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendMessage(c, http.StatusOK, "Post updated successfully.", nil)
}

// Delete godoc
// @Summary      Delete a post
// @Description  Removes the post, its attachment records, and their stored files
// @Tags         posts
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.workflow.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendMessage(c, http.StatusOK, "Post deleted successfully.", nil)
}

// sessionFromRequest builds an editing session from a multipart form.
// postID is nil when creating a new post.
func (h *PostHandler) sessionFromRequest(c *gin.Context, postID *uint) (*service.EditSession, bool) {
	session := &service.EditSession{
		Title:     c.PostForm("title"),
		Body:      c.PostForm("body"),
		PostID:    postID,
		ModalOpen: true,
	}

	form, err := c.MultipartForm()
	if err != nil && err != http.ErrNotMultipart {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return nil, false
	}

	if form != nil {
		for _, fileHeader := range form.File["photos"] {
			file, err := fileHeader.Open()
			if err != nil {
				response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Failed to read uploaded file")
				return nil, false
			}

			// Buffer the part so it can be closed now instead of holding
			// every part open for the rest of the request
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Failed to read uploaded file")
				return nil, false
			}

			session.Uploads = append(session.Uploads, service.PendingUpload{
				FileName:    fileHeader.Filename,
				ContentType: fileHeader.Header.Get("Content-Type"),
				Size:        fileHeader.Size,
				Data:        bytes.NewReader(data),
			})
		}
	}

	return session, true
}

// parseID parses the :id path parameter
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

// attachmentResponses converts session attachments to their response form
func attachmentResponses(session *service.EditSession, resolve dto.URLResolver) []dto.AttachmentResponse {
	result := make([]dto.AttachmentResponse, 0, len(session.Attachments))
	for i := range session.Attachments {
		result = append(result, dto.ToAttachmentResponse(&session.Attachments[i], resolve))
	}
	return result
}
