package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	restctx "github.com/prepmate/interview-server/internal/api/rest/context"
	"github.com/prepmate/interview-server/internal/model"
	"github.com/prepmate/interview-server/internal/service"
	"github.com/prepmate/interview-server/internal/testutil"
)

type stubResumeService struct {
	uploadFn   func(ctx context.Context, params service.UploadParams) (model.Resume, error)
	downloadFn func(ctx context.Context, userID uuid.UUID) (model.Resume, io.ReadCloser, error)
	deleteFn   func(ctx context.Context, userID uuid.UUID) error
}

func (s *stubResumeService) Upload(ctx context.Context, params service.UploadParams) (model.Resume, error) {
	return s.uploadFn(ctx, params)
}
func (s *stubResumeService) Download(ctx context.Context, userID uuid.UUID) (model.Resume, io.ReadCloser, error) {
	return s.downloadFn(ctx, userID)
}
func (s *stubResumeService) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.deleteFn(ctx, userID)
}

func newResumeEngine(svc ResumeService, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cm := restctx.NewManager()
	h := NewResume(svc, cm, testutil.MakeNoopLogger())

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Request = c.Request.WithContext(cm.SetUserIDToContext(c.Request.Context(), userID))
		}
		c.Next()
	})
	engine.POST("/api/resume", h.Upload)
	engine.GET("/api/resume", h.Download)
	engine.DELETE("/api/resume", h.Delete)
	return engine
}

func multipartBody(t *testing.T, fieldName, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestResumeHandler_Upload(t *testing.T) {
	userID := uuid.New()
	svc := &stubResumeService{
		uploadFn: func(_ context.Context, params service.UploadParams) (model.Resume, error) {
			assert.Equal(t, userID, params.UserID)
			assert.Equal(t, "cv.pdf", params.FileName)
			return model.Resume{UserID: userID, FileName: params.FileName, Size: params.Size}, nil
		},
	}
	engine := newResumeEngine(svc, userID)

	body, contentType := multipartBody(t, "file", "cv.pdf", []byte("pdf content"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/resume", body)
	req.Header.Set("Content-Type", contentType)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "cv.pdf")
}

func TestResumeHandler_Upload_MissingFile(t *testing.T) {
	engine := newResumeEngine(&stubResumeService{}, uuid.New())

	body, contentType := multipartBody(t, "attachment", "cv.pdf", []byte("x"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/resume", body)
	req.Header.Set("Content-Type", contentType)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResumeHandler_Download(t *testing.T) {
	userID := uuid.New()
	svc := &stubResumeService{
		downloadFn: func(context.Context, uuid.UUID) (model.Resume, io.ReadCloser, error) {
			return model.Resume{FileName: "cv.pdf", ContentType: "application/pdf", Size: 3},
				io.NopCloser(bytes.NewReader([]byte("pdf"))), nil
		},
	}
	engine := newResumeEngine(svc, userID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/resume", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "cv.pdf")
	assert.Equal(t, "pdf", w.Body.String())
}

func TestResumeHandler_Download_NotFound(t *testing.T) {
	svc := &stubResumeService{
		downloadFn: func(context.Context, uuid.UUID) (model.Resume, io.ReadCloser, error) {
			return model.Resume{}, nil, model.ErrNotFound
		},
	}
	engine := newResumeEngine(svc, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/resume", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResumeHandler_Delete(t *testing.T) {
	svc := &stubResumeService{
		deleteFn: func(context.Context, uuid.UUID) error { return nil },
	}
	engine := newResumeEngine(svc, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/resume", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
