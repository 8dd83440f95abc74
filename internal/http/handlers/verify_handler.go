package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/doc-intake-backend/internal/captcha"
)

// CaptchaRelay forwards a browser-obtained challenge token to the verification
// API using the server-held secret. The reason string is non-empty only for
// failures produced before or instead of a real verification call.
type CaptchaRelay interface {
	VerifyVerdict(ctx context.Context, token string) (captcha.Verdict, string)
}

// verifyRequest is the JSON body of the relay endpoint.
type verifyRequest struct {
	Token string `json:"token" binding:"required" example:"03AGdBq26..."`
}

// verifyFailure is returned when the relay could not complete a verification.
type verifyFailure struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"missing token"`
}

// VerifyCaptcha godoc
// @ID          verifyCaptcha
// @Summary     Relay a bot-challenge token for verification
// @Description Forwards the token to the third-party verification API with the server-held secret and returns the verdict. The secret never reaches the browser; this endpoint exists so front ends can pre-validate tokens.
// @Tags        Verification
// @Accept      json
// @Produce     json
//
// @Param       request  body  handlers.verifyRequest  true  "Challenge token"
//
// @Success     200  {object} captcha.Verdict
// @Failure     400  {object} handlers.verifyFailure "Missing token or relay-side failure"
// @Router      /verify-recaptcha [post]
func (h *Handlers) VerifyCaptcha(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, verifyFailure{Success: false, Error: "missing token"})
		return
	}

	verdict, reason := h.relay.VerifyVerdict(c.Request.Context(), req.Token)
	if reason != "" {
		c.JSON(http.StatusBadRequest, verifyFailure{Success: false, Error: reason})
		return
	}
	c.JSON(http.StatusOK, verdict)
}
