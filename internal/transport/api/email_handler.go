package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/praise456/cryptovault-backend/internal/domain"
	"github.com/praise456/cryptovault-backend/internal/service/tokens"
)

// EmailHandler serves the email verification and password reset flows. Both
// ride on purpose-scoped signed tokens delivered by mail, so none of these
// routes require an auth session.
type EmailHandler struct {
	accountService AccountServicer
}

func NewEmailHandler(accountService AccountServicer) *EmailHandler {
	return &EmailHandler{
		accountService: accountService,
	}
}

type EmailParams struct {
	Email string `binding:"required,email" json:"email"`
}

func bindEmailParams(c *gin.Context) (*EmailParams, bool) {
	var params EmailParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
			return nil, false
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return nil, false
	}
	return &params, true
}

// SendVerification POST RouteGroup + SendVerificationRoute.
func (h *EmailHandler) SendVerification(c *gin.Context) {
	params, ok := bindEmailParams(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultMailTimeout)
	defer cancel()

	if err := h.accountService.SendVerification(reqCtx, params.Email); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "verification email sent"})
}

// VerifyEmail GET RouteGroup + VerifyEmailRoute. Consumes the token from the
// mailed link's query string.
func (h *EmailHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "token is required"})
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	account, err := h.accountService.VerifyEmail(reqCtx, token)
	if err != nil {
		switch {
		case errors.Is(err, tokens.ErrInvalidToken),
			errors.Is(err, tokens.ErrTokenExpired),
			errors.Is(err, tokens.ErrWrongPurpose):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token is not valid"})
		case errors.Is(err, domain.ErrRecordNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "account not found"})
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "email verified", "user": newAccountResponse(account)})
}

// ForgotPassword POST RouteGroup + ForgotPasswordRoute.
func (h *EmailHandler) ForgotPassword(c *gin.Context) {
	params, ok := bindEmailParams(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultMailTimeout)
	defer cancel()

	if err := h.accountService.ForgotPassword(reqCtx, params.Email); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "reset email sent"})
}

type ResetPasswordParams struct {
	Token    string `binding:"required"                json:"token"`
	Password string `binding:"required,min=6,max=255"  json:"password"`
}

// ResetPassword POST RouteGroup + ResetPasswordRoute.
func (h *EmailHandler) ResetPassword(c *gin.Context) {
	var params ResetPasswordParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
			return
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	account, err := h.accountService.ResetPassword(reqCtx, params.Token, params.Password)
	if err != nil {
		switch {
		case errors.Is(err, tokens.ErrInvalidToken),
			errors.Is(err, tokens.ErrTokenExpired),
			errors.Is(err, tokens.ErrWrongPurpose):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token is not valid"})
		case errors.Is(err, domain.ErrRecordNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "account not found"})
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated", "user": newAccountResponse(account)})
}
