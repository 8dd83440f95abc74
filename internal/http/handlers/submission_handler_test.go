package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/doc-intake-backend/internal/captcha"
	"github.com/tbourn/doc-intake-backend/internal/domain"
	"github.com/tbourn/doc-intake-backend/internal/services"
)

// stubService returns a canned submission or error and records the input.
type stubService struct {
	sub       *domain.Submission
	err       error
	submitted bool
	lastIn    services.SubmissionInput
}

func (s *stubService) Submit(ctx context.Context, in services.SubmissionInput) (*domain.Submission, error) {
	s.lastIn = in
	return s.sub, s.err
}

func (s *stubService) HasSubmitted(ctx context.Context, ip string) bool { return s.submitted }

// stubResolver returns a fixed IP.
type stubResolver struct{ ip string }

func (s stubResolver) Resolve(ctx context.Context, remoteIP string) string { return s.ip }

// stubRelay returns a canned verdict and reason.
type stubRelay struct {
	verdict captcha.Verdict
	reason  string
}

func (s stubRelay) VerifyVerdict(ctx context.Context, token string) (captcha.Verdict, string) {
	return s.verdict, s.reason
}

const testMaxUpload = 1 << 20 // 1 MiB keeps test bodies small

func newTestRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/submissions", h.SubmitForm)
	r.GET("/api/v1/submissions/status", h.SubmissionStatus)
	r.POST("/api/v1/verify-recaptcha", h.VerifyCaptcha)
	return r
}

// multipartBody builds a submission form. Pass an empty filename to omit the
// file part entirely.
func multipartBody(t *testing.T, email, token, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if email != "" {
		if err := w.WriteField("email", email); err != nil {
			t.Fatalf("write email: %v", err)
		}
	}
	if token != "" {
		if err := w.WriteField("recaptcha_token", token); err != nil {
			t.Fatalf("write token: %v", err)
		}
	}
	if filename != "" {
		hdr := make(map[string][]string)
		hdr["Content-Disposition"] = []string{`form-data; name="file"; filename="` + filename + `"`}
		hdr["Content-Type"] = []string{contentType}
		part, err := w.CreatePart(hdr)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func postSubmission(t *testing.T, r *gin.Engine, body *bytes.Buffer, contentType, acceptLanguage string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", body)
	req.Header.Set("Content-Type", contentType)
	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return e
}

func TestSubmitForm_Success(t *testing.T) {
	svc := &stubService{sub: &domain.Submission{
		ID:        "id-1",
		Email:     "jan@example.com",
		FilePath:  "uploads/jan_example_com_1.pdf",
		IPAddress: "203.0.113.7",
		CreatedAt: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
	}}
	h := New(svc, stubResolver{ip: "203.0.113.7"}, stubRelay{}, testMaxUpload)
	r := newTestRouter(h)

	body, ct := multipartBody(t, "jan@example.com", "tok", "cv.pdf", "application/pdf", []byte("%PDF-1.4"))
	w := postSubmission(t, r, body, ct, "")

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp SubmitResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != "id-1" || resp.FilePath != "uploads/jan_example_com_1.pdf" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Message != "Twój dokument został pomyślnie przesłany" {
		t.Fatalf("expected Polish confirmation by default, got %q", resp.Message)
	}

	// The handler must hand the parsed parts through unchanged.
	if svc.lastIn.Email != "jan@example.com" || svc.lastIn.Token != "tok" {
		t.Fatalf("service input mismatch: %+v", svc.lastIn)
	}
	if svc.lastIn.ContentType != "application/pdf" || string(svc.lastIn.Data) != "%PDF-1.4" {
		t.Fatalf("file part mismatch: ct=%q data=%q", svc.lastIn.ContentType, svc.lastIn.Data)
	}
	if svc.lastIn.IP != "203.0.113.7" {
		t.Fatalf("resolved IP mismatch: %q", svc.lastIn.IP)
	}
}

func TestSubmitForm_EnglishMessage(t *testing.T) {
	svc := &stubService{err: services.ErrAlreadySubmitted}
	h := New(svc, stubResolver{ip: "203.0.113.7"}, stubRelay{}, testMaxUpload)
	r := newTestRouter(h)

	body, ct := multipartBody(t, "jan@example.com", "tok", "cv.pdf", "application/pdf", []byte("x"))
	w := postSubmission(t, r, body, ct, "en-US,en;q=0.9")

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d", w.Code)
	}
	e := decodeError(t, w)
	if e.Code != ErrCodeAlreadySubmitted {
		t.Fatalf("code = %q", e.Code)
	}
	if e.Message != "The form has already been submitted from this IP address" {
		t.Fatalf("expected English message, got %q", e.Message)
	}
}

func TestSubmitForm_MissingFile(t *testing.T) {
	h := New(&stubService{}, stubResolver{ip: "203.0.113.7"}, stubRelay{}, testMaxUpload)
	r := newTestRouter(h)

	body, ct := multipartBody(t, "jan@example.com", "tok", "", "", nil)
	w := postSubmission(t, r, body, ct, "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if e := decodeError(t, w); e.Code != ErrCodeInvalidFile {
		t.Fatalf("code = %q", e.Code)
	}
}

func TestSubmitForm_DeclaredSizeOverCap(t *testing.T) {
	h := New(&stubService{}, stubResolver{ip: "203.0.113.7"}, stubRelay{}, 8 /* tiny cap */)
	r := newTestRouter(h)

	body, ct := multipartBody(t, "jan@example.com", "tok", "cv.pdf", "application/pdf", []byte("123456789"))
	w := postSubmission(t, r, body, ct, "")

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if e := decodeError(t, w); e.Code != ErrCodeFileTooLarge {
		t.Fatalf("code = %q", e.Code)
	}
}

func TestSubmitForm_ErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{services.ErrInvalidEmail, http.StatusBadRequest, ErrCodeInvalidEmail},
		{services.ErrMissingFile, http.StatusBadRequest, ErrCodeInvalidFile},
		{services.ErrNotPDF, http.StatusBadRequest, ErrCodeInvalidFile},
		{services.ErrFileTooLarge, http.StatusRequestEntityTooLarge, ErrCodeFileTooLarge},
		{services.ErrCaptchaRequired, http.StatusBadRequest, ErrCodeCaptchaRequired},
		{services.ErrCaptchaFailed, http.StatusForbidden, ErrCodeCaptchaFailed},
		{services.ErrAlreadySubmitted, http.StatusConflict, ErrCodeAlreadySubmitted},
		{services.ErrUploadFailed, http.StatusBadGateway, ErrCodeUploadFailed},
		{services.ErrSaveFailed, http.StatusInternalServerError, ErrCodeSaveFailed},
	}
	for _, tc := range cases {
		h := New(&stubService{err: tc.err}, stubResolver{ip: "203.0.113.7"}, stubRelay{}, testMaxUpload)
		r := newTestRouter(h)

		body, ct := multipartBody(t, "jan@example.com", "tok", "cv.pdf", "application/pdf", []byte("x"))
		w := postSubmission(t, r, body, ct, "")

		if w.Code != tc.status {
			t.Fatalf("%v: status = %d, want %d", tc.err, w.Code, tc.status)
		}
		if e := decodeError(t, w); e.Code != tc.code {
			t.Fatalf("%v: code = %q, want %q", tc.err, e.Code, tc.code)
		}
	}
}

func TestSubmissionStatus(t *testing.T) {
	for _, submitted := range []bool{true, false} {
		h := New(&stubService{submitted: submitted}, stubResolver{ip: "203.0.113.7"}, stubRelay{}, testMaxUpload)
		r := newTestRouter(h)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/submissions/status", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		var resp StatusResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Submitted != submitted || resp.IP != "203.0.113.7" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	}
}
