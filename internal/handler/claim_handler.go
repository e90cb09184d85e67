package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adinkra-labs/claims-api/internal/dto"
	"github.com/adinkra-labs/claims-api/internal/models"
	"github.com/adinkra-labs/claims-api/internal/service"
	appErrors "github.com/adinkra-labs/claims-api/pkg/errors"
	"github.com/adinkra-labs/claims-api/pkg/response"
)

type claimService interface {
	Submit(ctx context.Context, req dto.SubmitClaimRequest, actor *models.JWTClaims) (*models.Claim, error)
	List(ctx context.Context, query dto.ClaimQuery, actor *models.JWTClaims) ([]models.Claim, error)
	Get(ctx context.Context, id string, actor *models.JWTClaims) (*models.Claim, error)
	Decide(ctx context.Context, id string, req dto.DecideClaimRequest, actor *models.JWTClaims) (*models.Claim, error)
}

type claimExporter interface {
	Export(ctx context.Context, format service.ExportFormat, query models.ClaimFilter, actor *models.JWTClaims) ([]byte, string, string, error)
}

// ClaimHandler exposes REST endpoints for the claim workflow.
type ClaimHandler struct {
	service  claimService
	exporter claimExporter
}

// NewClaimHandler constructs the handler. The exporter may be nil when
// exports are disabled.
func NewClaimHandler(service claimService, exporter claimExporter) *ClaimHandler {
	return &ClaimHandler{service: service, exporter: exporter}
}

// Submit godoc
// @Summary Submit a claim
// @Tags Claims
// @Accept json
// @Produce json
// @Param payload body dto.SubmitClaimRequest true "Claim payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /claims [post]
func (h *ClaimHandler) Submit(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "claim service not configured"))
		return
	}
	var req dto.SubmitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid claim payload"))
		return
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	claim, err := h.service.Submit(c.Request.Context(), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, claim, nil)
}

// List godoc
// @Summary List claims
// @Tags Claims
// @Produce json
// @Param status query string false "Comma separated statuses"
// @Param type query string false "Claim type"
// @Param centerId query string false "Center ID (registry only)"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Envelope
// @Router /claims [get]
func (h *ClaimHandler) List(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "claim service not configured"))
		return
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	query := claimQueryFromRequest(c)
	result, err := h.service.List(c.Request.Context(), query, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Get godoc
// @Summary Get claim detail
// @Tags Claims
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /claims/{id} [get]
func (h *ClaimHandler) Get(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "claim service not configured"))
		return
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	claim, err := h.service.Get(c.Request.Context(), c.Param("id"), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, claim, nil)
}

// Decide godoc
// @Summary Decide a pending claim
// @Tags Claims
// @Accept json
// @Produce json
// @Param id path string true "Claim ID"
// @Param payload body dto.DecideClaimRequest true "Decision payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /claims/{id}/decision [post]
func (h *ClaimHandler) Decide(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "claim service not configured"))
		return
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.DecideClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid decision payload"))
		return
	}
	claim, err := h.service.Decide(c.Request.Context(), c.Param("id"), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, claim, nil)
}

// Export godoc
// @Summary Export claims as CSV or PDF
// @Tags Claims
// @Produce octet-stream
// @Param format query string true "csv or pdf"
// @Param status query string false "Comma separated statuses"
// @Param type query string false "Claim type"
// @Param centerId query string false "Center ID (registry only)"
// @Success 200 {file} binary
// @Router /claims/export [get]
func (h *ClaimHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "claim export not configured"))
		return
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	query := claimQueryFromRequest(c)
	filter := models.ClaimFilter{
		Status:    query.Status,
		ClaimType: query.ClaimType,
		CenterID:  query.CenterID,
		Limit:     query.Limit,
		Offset:    query.Offset,
	}
	format := service.ExportFormat(strings.ToLower(strings.TrimSpace(c.Query("format"))))
	data, filename, contentType, err := h.exporter.Export(c.Request.Context(), format, filter, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

func claimQueryFromRequest(c *gin.Context) dto.ClaimQuery {
	query := dto.ClaimQuery{
		CenterID: strings.TrimSpace(c.Query("centerId")),
	}
	if rawType := c.Query("type"); rawType != "" {
		query.ClaimType = models.ClaimType(strings.ToUpper(strings.TrimSpace(rawType)))
	}
	if rawStatus := c.Query("status"); rawStatus != "" {
		parts := strings.Split(rawStatus, ",")
		statuses := make([]models.ClaimStatus, 0, len(parts))
		for _, part := range parts {
			part = strings.ToUpper(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			statuses = append(statuses, models.ClaimStatus(part))
		}
		query.Status = statuses
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			query.Limit = limit
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil {
			query.Offset = offset
		}
	}
	return query
}
