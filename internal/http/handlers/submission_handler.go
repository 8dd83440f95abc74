// Submission HTTP handlers.
//
// This file exposes the REST endpoints of the document-intake form:
//   - POST /submissions         (run the full submission workflow)
//   - GET  /submissions/status  (advisory page-load duplicate check)
//
// Handlers are transport-thin: they parse the multipart form, resolve the
// caller IP, delegate to the submission service, and translate service errors
// into localized HTTP results.
package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/doc-intake-backend/internal/domain"
	"github.com/tbourn/doc-intake-backend/internal/i18n"
	"github.com/tbourn/doc-intake-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// SubmissionService defines the workflow operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type SubmissionService interface {
	// Submit runs the full submission workflow for one attempt.
	Submit(ctx context.Context, in services.SubmissionInput) (*domain.Submission, error)
	// HasSubmitted reports whether a submission exists for ip (advisory,
	// fail-open).
	HasSubmitted(ctx context.Context, ip string) bool
}

// IPResolver resolves the caller's public IP, returning a sentinel rather
// than an error when resolution fails.
type IPResolver interface {
	Resolve(ctx context.Context, remoteIP string) string
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for submissions and the bot-verification
// relay. It depends on abstract contracts to keep transport concerns separate
// from workflow logic.
type Handlers struct {
	subSvc   SubmissionService
	resolver IPResolver
	relay    CaptchaRelay

	maxUploadBytes int64
}

// New constructs a Handlers instance bound to the given collaborators.
func New(subSvc SubmissionService, resolver IPResolver, relay CaptchaRelay, maxUploadBytes int64) *Handlers {
	return &Handlers{
		subSvc:         subSvc,
		resolver:       resolver,
		relay:          relay,
		maxUploadBytes: maxUploadBytes,
	}
}

//
// DTOs
//

// SubmitResponse is returned on a successful submission.
type SubmitResponse struct {
	ID        string    `json:"id" example:"fa4dfbe0-c3bf-47bd-b32f-d7de221cf43b"`
	FilePath  string    `json:"file_path" example:"uploads/jan_kowalski_example_com_1724912345678.pdf"`
	CreatedAt time.Time `json:"created_at"`
	// Message is the localized confirmation text.
	Message string `json:"message" example:"Twój dokument został pomyślnie przesłany"`
}

// StatusResponse reports the advisory duplicate-check result for the caller.
type StatusResponse struct {
	Submitted bool   `json:"submitted"`
	IP        string `json:"ip" example:"203.0.113.7"`
}

//
// Handlers
//

// SubmitForm godoc
// @ID          submitForm
// @Summary     Submit the document form
// @Description Accepts a PDF (max 15 MiB), an email address, and a reCAPTCHA token; stores the file, records the submission (one per IP), and notifies the configured webhook.
// @Tags        Submissions
// @Accept      multipart/form-data
// @Produce     json
//
// @Param       email            formData  string  true  "Submitter email"
// @Param       file             formData  file    true  "PDF document"
// @Param       recaptcha_token  formData  string  true  "Bot-challenge token"
// @Param       Accept-Language  header    string  false "Response language (pl default, en)"
//
// @Success     201  {object} handlers.SubmitResponse
// @Failure     400  {object} handlers.ErrorResponse "Validation or captcha-token failure"
// @Failure     403  {object} handlers.ErrorResponse "Bot verification failed"
// @Failure     409  {object} handlers.ErrorResponse "Already submitted from this IP"
// @Failure     413  {object} handlers.ErrorResponse "File too large"
// @Failure     500  {object} handlers.ErrorResponse "Persistence failure"
// @Failure     502  {object} handlers.ErrorResponse "Blob storage failure"
// @Router      /submissions [post]
func (h *Handlers) SubmitForm(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	token := strings.TrimSpace(c.PostForm("recaptcha_token"))

	fh, err := c.FormFile("file")
	if err != nil {
		failMsg(c, http.StatusBadRequest, ErrCodeInvalidFile, i18n.MsgFileMissing)
		return
	}
	// Declared size fast path: reject before buffering anything.
	if fh.Size > h.maxUploadBytes {
		failMsg(c, http.StatusRequestEntityTooLarge, ErrCodeFileTooLarge, i18n.MsgFileTooLarge)
		return
	}

	f, err := fh.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeInvalidFile, i18n.T(langOf(c), i18n.MsgFileMissing))
		return
	}
	defer f.Close()

	// Read at most one byte past the cap so an understated Size header still
	// trips the service-side boundary check.
	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes+1))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, i18n.T(langOf(c), i18n.MsgUnexpected))
		return
	}

	ip := h.resolver.Resolve(c.Request.Context(), c.ClientIP())

	sub, err := h.subSvc.Submit(c.Request.Context(), services.SubmissionInput{
		Email:       email,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
		Token:       token,
		IP:          ip,
	})
	if err != nil {
		switch err {
		case services.ErrInvalidEmail:
			failMsg(c, http.StatusBadRequest, ErrCodeInvalidEmail, i18n.MsgEmailInvalid)
		case services.ErrMissingFile:
			failMsg(c, http.StatusBadRequest, ErrCodeInvalidFile, i18n.MsgFileMissing)
		case services.ErrNotPDF:
			failMsg(c, http.StatusBadRequest, ErrCodeInvalidFile, i18n.MsgFileNotPDF)
		case services.ErrFileTooLarge:
			failMsg(c, http.StatusRequestEntityTooLarge, ErrCodeFileTooLarge, i18n.MsgFileTooLarge)
		case services.ErrCaptchaRequired:
			failMsg(c, http.StatusBadRequest, ErrCodeCaptchaRequired, i18n.MsgCaptchaRequired)
		case services.ErrCaptchaFailed:
			failMsg(c, http.StatusForbidden, ErrCodeCaptchaFailed, i18n.MsgCaptchaFailed)
		case services.ErrAlreadySubmitted:
			failMsg(c, http.StatusConflict, ErrCodeAlreadySubmitted, i18n.MsgAlreadySubmitted)
		case services.ErrUploadFailed:
			failMsg(c, http.StatusBadGateway, ErrCodeUploadFailed, i18n.MsgUploadFailed)
		case services.ErrSaveFailed:
			failMsg(c, http.StatusInternalServerError, ErrCodeSaveFailed, i18n.MsgSaveFailed)
		default:
			failMsg(c, http.StatusInternalServerError, ErrCodeInternal, i18n.MsgUnexpected)
		}
		return
	}

	ok(c, http.StatusCreated, SubmitResponse{
		ID:        sub.ID,
		FilePath:  sub.FilePath,
		CreatedAt: sub.CreatedAt,
		Message:   i18n.T(langOf(c), i18n.MsgSubmitted),
	})
}

// SubmissionStatus godoc
// @ID          submissionStatus
// @Summary     Advisory duplicate check
// @Description Resolves the caller's public IP and reports whether a submission already exists for it. Front ends call this on page load to pre-lock the form; the result is advisory only.
// @Tags        Submissions
// @Produce     json
//
// @Success     200  {object} handlers.StatusResponse
// @Router      /submissions/status [get]
func (h *Handlers) SubmissionStatus(c *gin.Context) {
	ip := h.resolver.Resolve(c.Request.Context(), c.ClientIP())
	submitted := h.subSvc.HasSubmitted(c.Request.Context(), ip)
	ok(c, http.StatusOK, StatusResponse{Submitted: submitted, IP: ip})
}
