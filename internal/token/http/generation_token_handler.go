// Package http provides HTTP handlers for generation token issuance, listing and validation.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/docgate/internal/auth/http"
	"github.com/allisson/docgate/internal/httputil"
	"github.com/allisson/docgate/internal/token/http/dto"
	tokenUseCase "github.com/allisson/docgate/internal/token/usecase"
	customValidation "github.com/allisson/docgate/internal/validation"
)

// GenerationTokenHandler handles generation token requests.
type GenerationTokenHandler struct {
	tokenUseCase tokenUseCase.GenerationTokenUseCase
	logger       *slog.Logger
}

// NewGenerationTokenHandler creates a new generation token handler.
func NewGenerationTokenHandler(
	tokenUseCase tokenUseCase.GenerationTokenUseCase,
	logger *slog.Logger,
) *GenerationTokenHandler {
	return &GenerationTokenHandler{
		tokenUseCase: tokenUseCase,
		logger:       logger,
	}
}

// IssueHandler issues a batch of tokens recorded against the calling admin.
// POST /v1/admin/generation-tokens
// Returns 201 Created with the new tokens.
func (h *GenerationTokenHandler) IssueHandler(c *gin.Context) {
	var req dto.IssueTokensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	var issuerID *uuid.UUID
	if user, ok := authHTTP.GetUser(c.Request.Context()); ok && user != nil {
		issuerID = &user.ID
	}

	tokens, err := h.tokenUseCase.Issue(c.Request.Context(), req.Count, issuerID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapGenerationTokensToListResponse(tokens))
}

// ListHandler lists tokens newest first.
// GET /v1/admin/generation-tokens?offset=0&limit=50
func (h *GenerationTokenHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	tokens, err := h.tokenUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapGenerationTokensToListResponse(tokens))
}

// ValidateHandler reports whether a token can still be consumed.
// POST /v1/generation-tokens/validate - No authentication required.
// Returns 200 OK for known tokens, used or not, and 404 for unknown ones.
func (h *GenerationTokenHandler) ValidateHandler(c *gin.Context) {
	var req dto.ValidateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	token, err := h.tokenUseCase.Check(c.Request.Context(), req.Token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ValidateTokenResponse{
		Valid:  !token.IsUsed,
		IsUsed: token.IsUsed,
	})
}
