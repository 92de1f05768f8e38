package registration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/shandysiswandi/regmail/internal/pkg/config"
	"github.com/shandysiswandi/regmail/internal/pkg/instrument"
	"github.com/shandysiswandi/regmail/internal/pkg/mail"
	"github.com/shandysiswandi/regmail/internal/pkg/router"
	"github.com/shandysiswandi/regmail/internal/pkg/storage"
	"github.com/shandysiswandi/regmail/internal/pkg/validator"
	"github.com/shandysiswandi/regmail/internal/registration"
)

type successEnvelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Message string            `json:"message"`
	Error   map[string]string `json:"error"`
}

type recordingMail struct {
	mu   sync.Mutex
	sent []mail.Message
	fail map[string]error
}

func (m *recordingMail) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, msg)
	if err := m.fail[msg.To[0]]; err != nil {
		return err
	}
	return nil
}

func (m *recordingMail) Close() error { return nil }

type fixedUID int64

func (f fixedUID) Generate() int64 { return int64(f) }

type fixedUUID string

func (f fixedUUID) Generate() string { return string(f) }

func setup(t *testing.T, qrEnabled bool, fail map[string]error) (string, http.Handler, *recordingMail) {
	t.Helper()

	root := t.TempDir()
	tplPath := filepath.Join(root, "email_template.html")
	if err := os.WriteFile(tplPath, []byte(`<p>Hello {{ name }}</p><img src="cid:qr_code">`), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}

	enabled := "false"
	if qrEnabled {
		enabled = "true"
	}
	cfg, err := config.NewViperFromBytes("yaml", []byte(`
storage:
  buckets:
    artifacts: qrcodes
    uploads: uploads
modules:
  registration:
    subject: Your Gen AI Masterclass Registration Confirmation
    from: events@example.com
    workers: 1
    upload:
      max_bytes: 1048576
    qr:
      enabled: `+enabled+`
      size: 128
    template:
      engine: liquid
      path: `+tplPath+`
`))
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	stg, err := storage.NewLocal(storage.LocalOptions{Root: root})
	if err != nil {
		t.Fatalf("storage: %v", err)
	}

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	r := router.NewRouter(router.Config{UUID: fixedUUID("cid")})
	m := &recordingMail{fail: fail}

	if err := registration.New(registration.Dependency{
		Router:     r,
		Mail:       m,
		Storage:    stg,
		Config:     cfg,
		Instrument: instrument.NewNoop(),
		UID:        fixedUID(1),
		Validator:  v,
	}); err != nil {
		t.Fatalf("registration.New: %v", err)
	}

	return root, r, m
}

func doMultipart(t *testing.T, h http.Handler, filename string, content []byte) (int, []byte) {
	t.Helper()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/send-emails", buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return rec.Code, body
}

func doJSON(t *testing.T, h http.Handler, payload string) (int, []byte) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/registration/send-email", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec.Code, rec.Body.Bytes()
}

func TestSendEmails(t *testing.T) {
	t.Parallel()

	// Arrange
	root, h, m := setup(t, true, nil)
	csv := []byte("Name,Email\nAnn,ann@x.com\nBob,\nCid,cid@x.com\n")

	// Act
	status, body := doMultipart(t, h, "list.csv", csv)

	// Assert
	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", status, body)
	}

	var env successEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode success envelope: %v", err)
	}
	if env.Message != "All emails sent with QR codes!" {
		t.Fatalf("unexpected message %q", env.Message)
	}

	if len(m.sent) != 2 {
		t.Fatalf("expected 2 delivery attempts, got %d", len(m.sent))
	}
	for i, want := range []string{"ann@x.com", "cid@x.com"} {
		got := m.sent[i]
		if got.To[0] != want {
			t.Fatalf("attempt %d: expected recipient %q, got %q", i, want, got.To[0])
		}
		if got.Subject != "Your Gen AI Masterclass Registration Confirmation" {
			t.Fatalf("attempt %d: unexpected subject %q", i, got.Subject)
		}
		if len(got.Attachments) != 1 || got.Attachments[0].ContentID != "<qr_code>" {
			t.Fatalf("attempt %d: expected one inline qr attachment, got %+v", i, got.Attachments)
		}
	}
	if !strings.Contains(m.sent[0].HTMLBody, "Hello Ann") {
		t.Fatalf("unexpected body %q", m.sent[0].HTMLBody)
	}

	for _, name := range []string{"Ann_ann@x.com.png", "Cid_cid@x.com.png"} {
		if _, err := os.Stat(filepath.Join(root, "qrcodes", name)); err != nil {
			t.Fatalf("expected artifact %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "uploads", "list.csv")); err != nil {
		t.Fatalf("expected stored upload: %v", err)
	}
}

func TestSendEmails_FailureDoesNotAbort(t *testing.T) {
	t.Parallel()

	_, h, m := setup(t, false, map[string]error{
		"bob@x.com": &mail.DeliveryError{Kind: mail.ErrNetwork},
	})

	status, body := doMultipart(t, h, "list.csv", []byte("Name,Email\nAnn,ann@x.com\nBob,bob@x.com\nCid,cid@x.com\n"))

	if status != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", status, body)
	}
	var env successEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode success envelope: %v", err)
	}
	if env.Message != "All emails sent!" {
		t.Fatalf("unexpected message %q", env.Message)
	}
	if len(m.sent) != 3 {
		t.Fatalf("expected 3 delivery attempts, got %d", len(m.sent))
	}
	if len(m.sent[2].Attachments) != 0 {
		t.Fatalf("expected no attachment when qr is disabled")
	}
}

func TestSendEmail(t *testing.T) {
	t.Parallel()

	t.Run("Success", func(t *testing.T) {
		t.Parallel()

		_, h, m := setup(t, true, nil)

		status, body := doJSON(t, h, `{"Name":"Ann","Email":"ann@x.com"}`)

		if status != http.StatusOK {
			t.Fatalf("expected status 200, got %d body=%s", status, body)
		}
		if len(m.sent) != 1 {
			t.Fatalf("expected 1 delivery attempt, got %d", len(m.sent))
		}
	})

	t.Run("MissingName", func(t *testing.T) {
		t.Parallel()

		_, h, m := setup(t, true, nil)

		status, body := doJSON(t, h, `{"Name":"","Email":"a@b.com"}`)

		if status != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d body=%s", status, body)
		}
		var env errorEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			t.Fatalf("decode error envelope: %v", err)
		}
		if _, ok := env.Error["name"]; !ok {
			t.Fatalf("expected name field error, got %+v", env.Error)
		}
		if len(m.sent) != 0 {
			t.Fatalf("expected no delivery attempt, got %d", len(m.sent))
		}
	})

	t.Run("DeliveryFailure", func(t *testing.T) {
		t.Parallel()

		_, h, _ := setup(t, false, map[string]error{
			"ann@x.com": &mail.DeliveryError{Kind: mail.ErrAuthentication},
		})

		status, body := doJSON(t, h, `{"Name":"Ann","Email":"ann@x.com"}`)

		if status != http.StatusInternalServerError {
			t.Fatalf("expected status 500, got %d body=%s", status, body)
		}
	})
}
