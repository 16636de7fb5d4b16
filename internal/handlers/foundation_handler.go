package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"grantboard/internal/models"
	"grantboard/internal/responses"
	"grantboard/internal/services"
)

type FoundationHandler struct {
	foundationService *services.FoundationService
	outreachService   *services.OutreachService
	validate          *validator.Validate
	logger            *slog.Logger
}

func NewFoundationHandler(
	foundationService *services.FoundationService,
	outreachService *services.OutreachService,
	logger *slog.Logger,
) *FoundationHandler {
	return &FoundationHandler{
		foundationService: foundationService,
		outreachService:   outreachService,
		validate:          validator.New(),
		logger:            logger,
	}
}

type ListFoundationsQuery struct {
	Status  string `form:"status" validate:"omitempty,oneof=all research drafting submitted approved rejected not_pursuing"`
	FitMin  int    `form:"fitMin" validate:"omitempty,min=1,max=10"`
	Rolling *bool  `form:"rolling"`
}

type UpdateFoundationResponse struct {
	OK         bool               `json:"ok"`
	Foundation *models.Foundation `json:"foundation"`
}

type OutreachRequest struct {
	ProjectName string `json:"projectName"`
}

// ListFoundations handles GET /api/v1/foundations
func (h *FoundationHandler) ListFoundations(c *gin.Context) {
	var query ListFoundationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.Error(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}
	if err := h.validate.Struct(&query); err != nil {
		responses.Error(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	foundations, err := h.foundationService.List(c.Request.Context(), models.FoundationFilters{
		Status:  query.Status,
		FitMin:  query.FitMin,
		Rolling: query.Rolling,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if foundations == nil {
		foundations = []models.Foundation{}
	}
	responses.JSON(c, http.StatusOK, foundations)
}

// GetFoundation handles GET /api/v1/foundations/:id
func (h *FoundationHandler) GetFoundation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Invalid foundation ID")
		return
	}

	foundation, err := h.foundationService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	responses.JSON(c, http.StatusOK, foundation)
}

// UpdateFoundation handles PATCH /api/v1/foundations/:id
func (h *FoundationHandler) UpdateFoundation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Invalid foundation ID")
		return
	}

	var patch models.FoundationUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		responses.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	foundation, err := h.foundationService.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	responses.JSON(c, http.StatusOK, UpdateFoundationResponse{OK: true, Foundation: foundation})
}

// GenerateOutreach handles POST /api/v1/foundations/:id/outreach
func (h *FoundationHandler) GenerateOutreach(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Invalid foundation ID")
		return
	}

	foundation, err := h.foundationService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	// A missing or malformed body is treated as an empty request; the
	// project name then falls back to the configured default.
	var req OutreachRequest
	_ = c.ShouldBindJSON(&req)

	template := h.outreachService.Generate(foundation, req.ProjectName)
	responses.JSON(c, http.StatusOK, template)
}

// GetStats handles GET /api/v1/foundations/stats
func (h *FoundationHandler) GetStats(c *gin.Context) {
	stats, err := h.foundationService.Stats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	responses.JSON(c, http.StatusOK, stats)
}

// GetUpcomingDeadlines handles GET /api/v1/foundations/deadlines
func (h *FoundationHandler) GetUpcomingDeadlines(c *gin.Context) {
	var windowDays *int
	if raw := c.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			responses.Error(c, http.StatusBadRequest, "Invalid days parameter")
			return
		}
		windowDays = &days
	}

	foundations, err := h.foundationService.UpcomingDeadlines(c.Request.Context(), windowDays)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if foundations == nil {
		foundations = []models.Foundation{}
	}
	responses.JSON(c, http.StatusOK, foundations)
}

func (h *FoundationHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrFoundationNotFound):
		responses.NotFound(c)
	case errors.Is(err, services.ErrConstraintViolation), errors.Is(err, services.ErrInvalidInput):
		responses.Error(c, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("internal error", "error", err)
		responses.Error(c, http.StatusInternalServerError, "Internal server error")
	}
}
