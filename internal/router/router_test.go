package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"post-content-api/internal/client"
	"post-content-api/internal/database"
	"post-content-api/internal/domain"
)

// capturingNotifier records delivered events for assertions
type capturingNotifier struct {
	events []client.Event
}

func (n *capturingNotifier) Notify(ctx context.Context, event client.Event) error {
	n.events = append(n.events, event)
	return nil
}

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *capturingNotifier, *client.MockBlobClient) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err, "failed to open database")
	require.NoError(t, database.AutoMigrate(db), "failed to migrate")

	notifier := &capturingNotifier{}
	blob := client.NewMockBlobClient()

	r := Setup(Config{
		DB:       db,
		Logger:   zap.NewNop(),
		BasePath: "/api/posts",
		Blob:     blob,
		Notifier: notifier,
	})

	return r, db, notifier, blob
}

// multipartBody builds a multipart form with the post fields and optional photos
func multipartBody(t *testing.T, title, body string, photos ...string) (*bytes.Buffer, string) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	require.NoError(t, w.WriteField("title", title))
	require.NoError(t, w.WriteField("body", body))

	for _, name := range photos {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photos"; filename="%s"`, name))
		h.Set("Content-Type", "image/jpeg")
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestRouter_HealthAndReady(t *testing.T) {
	r, _, _, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_CreatePost(t *testing.T) {
	r, db, notifier, _ := setupTestRouter(t)

	body, contentType := multipartBody(t, "My first post", "A body long enough to pass", "photo.jpg")
	req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Post created successfully.", resp["message"])

	var posts []domain.Post
	db.Find(&posts)
	require.Len(t, posts, 1)
	assert.Equal(t, "My first post", posts[0].Title)

	var attachments []domain.Attachment
	db.Find(&attachments)
	require.Len(t, attachments, 1)
	assert.Equal(t, posts[0].ID, attachments[0].FileableID)
	assert.Equal(t, domain.OwnerTypePost, attachments[0].FileableType)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, client.EventPostSaved, notifier.events[0].Name)
}

func TestRouter_CreatePost_MultiplePhotos(t *testing.T) {
	r, db, _, blob := setupTestRouter(t)

	var uploaded [][]byte
	blob.UploadFunc = func(ctx context.Context, key string, file io.Reader, contentType string) error {
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		uploaded = append(uploaded, data)
		return nil
	}

	body, contentType := multipartBody(t, "Post with two photos", "A body long enough to pass", "one.jpg", "two.jpg")
	req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	require.Len(t, uploaded, 2)
	for _, data := range uploaded {
		assert.Equal(t, []byte("fake image bytes"), data, "upload payload must survive form parsing")
	}

	var count int64
	db.Model(&domain.Attachment{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestRouter_CreatePost_ValidationError(t *testing.T) {
	r, db, notifier, _ := setupTestRouter(t)

	body, contentType := multipartBody(t, "ab", "short")
	req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errObj, ok := resp["error"].(map[string]interface{})
	require.True(t, ok, "response should contain an error object")
	assert.Equal(t, "VALIDATION_ERROR", errObj["code"])

	fields, ok := errObj["fields"].(map[string]interface{})
	require.True(t, ok, "error should carry field messages")
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "body")

	var count int64
	db.Model(&domain.Post{}).Count(&count)
	assert.Equal(t, int64(0), count, "nothing may be persisted on validation failure")
	assert.Empty(t, notifier.events)
}

func TestRouter_ListPosts(t *testing.T) {
	r, db, _, _ := setupTestRouter(t)

	db.Create(&domain.Post{Title: "Seeded post", Body: "Seeded body content"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].([]interface{})
	require.True(t, ok, "response should contain a post array")
	require.Len(t, data, 1)

	post, ok := data[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Seeded post", post["title"])
}

func TestRouter_GetPost(t *testing.T) {
	r, db, _, _ := setupTestRouter(t)

	seeded := &domain.Post{Title: "Seeded post", Body: "Seeded body content"}
	db.Create(seeded)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/posts/%d", seeded.ID), nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Seeded post", data["title"])

	// Unknown id
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts/999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Malformed id
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_UpdatePost(t *testing.T) {
	r, db, notifier, _ := setupTestRouter(t)

	seeded := &domain.Post{Title: "Before edit", Body: "Original body content"}
	db.Create(seeded)

	body, contentType := multipartBody(t, "After edit", "Rewritten body content")
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/posts/%d", seeded.ID), body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated domain.Post
	require.NoError(t, db.First(&updated, seeded.ID).Error)
	assert.Equal(t, "After edit", updated.Title)

	var count int64
	db.Model(&domain.Post{}).Count(&count)
	assert.Equal(t, int64(1), count, "an edit must not create a second post")

	require.Len(t, notifier.events, 1)
	assert.Equal(t, "Post updated successfully.", notifier.events[0].Message)
}

func TestRouter_UpdatePost_NotFound(t *testing.T) {
	r, db, _, _ := setupTestRouter(t)

	body, contentType := multipartBody(t, "Valid title", "A body long enough to pass")
	req := httptest.NewRequest(http.MethodPut, "/api/posts/999", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	db.Model(&domain.Post{}).Count(&count)
	assert.Equal(t, int64(0), count, "a missing edit target must not create a post")
}

func TestRouter_DeletePost(t *testing.T) {
	r, db, notifier, blob := setupTestRouter(t)

	seeded := &domain.Post{Title: "Doomed post", Body: "Will be deleted shortly"}
	db.Create(seeded)
	db.Create(&domain.Attachment{
		FileableID:   seeded.ID,
		FileableType: domain.OwnerTypePost,
		FilePath:     "files/doomed.jpg",
	})

	var blobDeleted []string
	blob.DeleteFunc = func(ctx context.Context, key string) error {
		blobDeleted = append(blobDeleted, key)
		return nil
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/posts/%d", seeded.ID), nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var postCount, attachmentCount int64
	db.Model(&domain.Post{}).Count(&postCount)
	db.Model(&domain.Attachment{}).Count(&attachmentCount)
	assert.Equal(t, int64(0), postCount)
	assert.Equal(t, int64(0), attachmentCount)
	assert.Equal(t, []string{"files/doomed.jpg"}, blobDeleted)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, client.EventPostDeleted, notifier.events[0].Name)

	// Deleting the same post again is a hard 404
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/posts/%d", seeded.ID), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_DeleteAttachment(t *testing.T) {
	r, db, notifier, _ := setupTestRouter(t)

	seeded := &domain.Post{Title: "Post with files", Body: "Keeps one of two files"}
	db.Create(seeded)

	target := &domain.Attachment{FileableID: seeded.ID, FileableType: domain.OwnerTypePost, FilePath: "files/target.jpg"}
	sibling := &domain.Attachment{FileableID: seeded.ID, FileableType: domain.OwnerTypePost, FilePath: "files/sibling.jpg"}
	db.Create(target)
	db.Create(sibling)

	url := fmt.Sprintf("/api/posts/attachments/%d?post=%d", target.ID, seeded.ID)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, url, nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "File deleted successfully.", resp["message"])

	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok)
	remaining, ok := data["attachments"].([]interface{})
	require.True(t, ok)
	assert.Len(t, remaining, 1, "the sibling attachment stays")

	var count int64
	db.Model(&domain.Attachment{}).Count(&count)
	assert.Equal(t, int64(1), count)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, client.EventFileDeleted, notifier.events[0].Name)

	// Deleting it again is a 404
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, url, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_ListPostAttachments(t *testing.T) {
	r, db, _, _ := setupTestRouter(t)

	seeded := &domain.Post{Title: "Post with a file", Body: "Carries a single file"}
	db.Create(seeded)
	db.Create(&domain.Attachment{FileableID: seeded.ID, FileableType: domain.OwnerTypePost, FilePath: "files/only.jpg"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/posts/%d/attachments", seeded.ID), nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 1)
}
