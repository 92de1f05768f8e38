package inbound

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/regmail/internal/pkg/goerror"
	"github.com/shandysiswandi/regmail/internal/pkg/router"
	"github.com/shandysiswandi/regmail/internal/registration/entity"
	"github.com/shandysiswandi/regmail/internal/registration/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUC struct{ mock.Mock }

func (m *mockUC) ProcessBatch(ctx context.Context, in usecase.ProcessBatchInput) (*usecase.ProcessBatchOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.ProcessBatchOutput)
	return out, args.Error(1)
}

func (m *mockUC) ProcessOne(ctx context.Context, in usecase.ProcessOneInput) error {
	return m.Called(ctx, in).Error(0)
}

type fixedID string

func (f fixedID) Generate() string { return string(f) }

func newServer(t *testing.T, maxUploadBytes int64) (*router.Router, *mockUC) {
	t.Helper()

	r := router.NewRouter(router.Config{UUID: fixedID("cid")})
	uc := new(mockUC)
	RegisterHTTPEndpoint(r, uc, maxUploadBytes)
	return r, uc
}

func upload(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/send-emails", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func body(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHTTPEndpoint_Index(t *testing.T) {
	t.Parallel()

	r, _ := newServer(t, 0)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `name="file"`)
}

func TestHTTPEndpoint_SendEmails(t *testing.T) {
	t.Parallel()

	t.Run("Success", func(t *testing.T) {
		t.Parallel()

		// Arrange
		r, uc := newServer(t, 1<<20)
		content := "Name,Email\nAnn,ann@x.com\n,bob@x.com\nCid,cid@x.com\n"
		uc.On("ProcessBatch", mock.Anything, usecase.ProcessBatchInput{Filename: "my_list.csv", Content: []byte(content)}).
			Return(&usecase.ProcessBatchOutput{BatchID: 7, Message: "All emails sent with QR codes!", Total: 3, Sent: 1, Failed: 1, Skipped: 1}, nil).Once()
		rec := httptest.NewRecorder()

		// Act
		r.ServeHTTP(rec, upload(t, "file", "../my list.csv", content))

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		got := body(t, rec)
		assert.Equal(t, "All emails sent with QR codes!", got["message"])
		data, ok := got["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "7", data["batch_id"])
		assert.InDelta(t, 1, data["failed"], 0)
		assert.NotContains(t, data, "outcomes")
		uc.AssertExpectations(t)
	})

	t.Run("NoFile", func(t *testing.T) {
		t.Parallel()

		r, uc := newServer(t, 1<<20)
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, upload(t, "", "", ""))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "No file uploaded", body(t, rec)["message"])
		uc.AssertNotCalled(t, "ProcessBatch", mock.Anything, mock.Anything)
	})

	t.Run("NotMultipart", func(t *testing.T) {
		t.Parallel()

		r, _ := newServer(t, 1<<20)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/send-emails", strings.NewReader("Name,Email\n"))
		req.Header.Set("Content-Type", "text/csv")

		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "No file uploaded", body(t, rec)["message"])
	})

	t.Run("TooLarge", func(t *testing.T) {
		t.Parallel()

		r, uc := newServer(t, 256)
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, upload(t, "file", "list.csv", "Name,Email\n"+strings.Repeat("Ann,ann@x.com\n", 100)))

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		uc.AssertNotCalled(t, "ProcessBatch", mock.Anything, mock.Anything)
	})

	t.Run("InvalidTable", func(t *testing.T) {
		t.Parallel()

		r, uc := newServer(t, 0)
		uc.On("ProcessBatch", mock.Anything, mock.Anything).Return(nil, goerror.NewInvalidFormat("Invalid registrant file")).Once()
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, upload(t, "file", "list.csv", "x"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid registrant file", body(t, rec)["message"])
	})
}

func TestHTTPEndpoint_SendEmail(t *testing.T) {
	t.Parallel()

	post := func(payload string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/registration/send-email", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	t.Run("Success", func(t *testing.T) {
		t.Parallel()

		r, uc := newServer(t, 0)
		uc.On("ProcessOne", mock.Anything, usecase.ProcessOneInput{Name: "Ann", Email: "ann@x.com"}).Return(nil).Once()
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, post(`{"Name":"Ann","Email":"ann@x.com","Company":"Acme"}`))

		assert.Equal(t, http.StatusOK, rec.Code)
		data, ok := body(t, rec)["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "success", data["status"])
		assert.Equal(t, "ann@x.com", data["email"])
		uc.AssertExpectations(t)
	})

	t.Run("MissingField", func(t *testing.T) {
		t.Parallel()

		r, uc := newServer(t, 0)
		uc.On("ProcessOne", mock.Anything, usecase.ProcessOneInput{Email: "a@b.com"}).
			Return(goerror.NewMissingField(entity.ErrMissingField, "name", "name is a required field")).Once()
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, post(`{"Email":"a@b.com"}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		got := body(t, rec)
		assert.Equal(t, "Missing required field", got["message"])
		assert.Equal(t, map[string]any{"name": "name is a required field"}, got["error"])
	})

	t.Run("PipelineFailure", func(t *testing.T) {
		t.Parallel()

		r, uc := newServer(t, 0)
		uc.On("ProcessOne", mock.Anything, mock.Anything).
			Return(goerror.NewServer(errors.New("535 auth failed"), "Failed to send email")).Once()
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, post(`{"Name":"Ann","Email":"ann@x.com"}`))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to send email", body(t, rec)["message"])
		assert.NotContains(t, rec.Body.String(), "535")
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		t.Parallel()

		r, uc := newServer(t, 0)
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, post(`{"Name":`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		uc.AssertNotCalled(t, "ProcessOne", mock.Anything, mock.Anything)
	})
}

func TestSecureFilename(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"list.csv":             "list.csv",
		"my list.csv":          "my_list.csv",
		"../../etc/passwd":     "passwd",
		`C:\Users\ann\r.csv`:   "r.csv",
		".hidden.csv":          "hidden.csv",
		"résumé.csv":           "resume.csv",
		"":                     "",
		"名前.csv":               "csv",
	}

	for in, want := range tests {
		assert.Equal(t, want, secureFilename(in), in)
	}
}
