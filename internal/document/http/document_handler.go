// Package http provides HTTP handlers for token consumption, access link resolution
// and document administration.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/docgate/internal/auth/http"
	"github.com/allisson/docgate/internal/document/http/dto"
	documentUseCase "github.com/allisson/docgate/internal/document/usecase"
	apperrors "github.com/allisson/docgate/internal/errors"
	"github.com/allisson/docgate/internal/httputil"
	customValidation "github.com/allisson/docgate/internal/validation"
)

// DocumentHandler handles document and access link requests.
type DocumentHandler struct {
	consumptionUseCase documentUseCase.ConsumptionUseCase
	accessLinkUseCase  documentUseCase.AccessLinkUseCase
	documentUseCase    documentUseCase.DocumentUseCase
	logger             *slog.Logger
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(
	consumptionUseCase documentUseCase.ConsumptionUseCase,
	accessLinkUseCase documentUseCase.AccessLinkUseCase,
	documentUseCase documentUseCase.DocumentUseCase,
	logger *slog.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		consumptionUseCase: consumptionUseCase,
		accessLinkUseCase:  accessLinkUseCase,
		documentUseCase:    documentUseCase,
		logger:             logger,
	}
}

// ConsumeHandler spends a generation token on a document.
// POST /v1/documents/consume - No authentication required.
// Returns 201 Created with the document id and access token.
func (h *DocumentHandler) ConsumeHandler(c *gin.Context) {
	var req dto.ConsumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.consumptionUseCase.Consume(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapConsumeOutputToResponse(output))
}

// ResolveHandler returns the payload bound to an access link and spends one view.
// GET /v1/access/:access_token - No authentication required.
// The body is the stored document exactly as submitted.
func (h *DocumentHandler) ResolveHandler(c *gin.Context) {
	doc, err := h.accessLinkUseCase.Resolve(c.Request.Context(), c.Param("access_token"), time.Now().UTC())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/json; charset=utf-8", doc.Payload)
}

// CreateHandler stores a document for the authenticated user and mints its link.
// POST /v1/documents
func (h *DocumentHandler) CreateHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok || user == nil {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.documentUseCase.Create(c.Request.Context(), req.ToInput(user.ID))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCreateDocumentOutputToResponse(output))
}

// ListHandler lists document summaries newest first.
// GET /v1/admin/documents?offset=0&limit=50
func (h *DocumentHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	docs, err := h.documentUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDocumentsToListResponse(docs))
}

// GetHandler returns a full document.
// GET /v1/admin/documents/:id
func (h *DocumentHandler) GetHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	doc, err := h.documentUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDocumentToResponse(doc))
}

// DeleteHandler removes a document and its access links.
// DELETE /v1/admin/documents/:id
// Returns 204 No Content.
func (h *DocumentHandler) DeleteHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.documentUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// CreateAccessLinkHandler mints another link for an existing document.
// POST /v1/admin/documents/:id/access-links
func (h *DocumentHandler) CreateAccessLinkHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.CreateAccessLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	link, err := h.accessLinkUseCase.Create(c.Request.Context(), req.ToInput(id, time.Now().UTC()))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapAccessLinkToResponse(link))
}

// ListAccessLinksHandler lists the links of a document, oldest first.
// GET /v1/admin/documents/:id/access-links
func (h *DocumentHandler) ListAccessLinksHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	links, err := h.accessLinkUseCase.ListByDocument(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAccessLinksToListResponse(links))
}

func (h *DocumentHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, apperrors.Wrap(apperrors.ErrInvalidInput, "invalid document id"), h.logger)
		return uuid.Nil, false
	}
	return id, true
}
