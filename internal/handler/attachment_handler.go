package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"post-content-api/internal/client"
	"post-content-api/internal/response"
	"post-content-api/internal/service"
)

// AttachmentHandler handles attachment-related requests
type AttachmentHandler struct {
	workflow service.PostWorkflow
	blob     client.BlobClient
}

// NewAttachmentHandler creates a new AttachmentHandler
func NewAttachmentHandler(workflow service.PostWorkflow, blob client.BlobClient) *AttachmentHandler {
	return &AttachmentHandler{
		workflow: workflow,
		blob:     blob,
	}
}

// Delete godoc
// @Summary      Delete an attachment
// @Description  Removes the stored file first, then the attachment record
// @Description  The post query parameter, when present, scopes the refreshed attachment list
// @Tags         attachments
// @Produce      json
// @Param        id path int true "Attachment ID"
// @Param        post query int false "Post being edited"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /attachments/{id} [delete]
func (h *AttachmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	session := &service.EditSession{}
	if postIDStr := c.Query("post"); postIDStr != "" {
		postID, err := strconv.ParseUint(postIDStr, 10, 32)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid post id")
			return
		}
		id := uint(postID)
		session.PostID = &id
	}

	if err := h.workflow.DeleteFile(c.Request.Context(), session, id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{
		Success: true,
		Message: "File deleted successfully.",
		Data: gin.H{
			"attachments": attachmentResponses(session, h.blob.FileURL),
		},
	})
}

// ListForPost godoc
// @Summary      List a post's attachments
// @Tags         attachments
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /{id}/attachments [get]
func (h *AttachmentHandler) ListForPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	session := &service.EditSession{}
	if err := h.workflow.Edit(c.Request.Context(), session, id); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, attachmentResponses(session, h.blob.FileURL))
}
