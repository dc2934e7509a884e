package chartController

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/admin/astro-services/natal-api/internal/domain"
	"github.com/admin/astro-services/natal-api/internal/ports/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const userIDHeader = "X-User-ID"

type Controller struct {
	ChartService service.IChartService
	Log          *slog.Logger
}

func New(chartService service.IChartService, log *slog.Logger) *Controller {
	return &Controller{
		ChartService: chartService,
		Log:          log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/astrology")
	api.POST("/calculate", c.calculate)
	api.GET("", c.list)
	api.GET("/:id", c.get)
	api.GET("/:id/layout", c.layout)
	api.DELETE("/:id", c.delete)
}

// ownerID достаёт идентификатор пользователя из заголовка.
// Аутентификация - забота гейтвея выше, здесь только доверенный заголовок.
func (c *Controller) ownerID(ctx *gin.Context) (uuid.UUID, bool) {
	raw := ctx.GetHeader(userIDHeader)
	if raw == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user identity is required"})
		return uuid.Nil, false
	}
	ownerID, err := uuid.Parse(raw)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid user identity"})
		return uuid.Nil, false
	}
	return ownerID, true
}

func (c *Controller) chartID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid chart id"})
		return uuid.Nil, false
	}
	return id, true
}

func (c *Controller) calculate(ctx *gin.Context) {
	ownerID, ok := c.ownerID(ctx)
	if !ok {
		return
	}

	var request CalculateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		c.Log.Warn("failed to bind calculate request",
			"error", err,
		)
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	profile, err := request.ToDomain()
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	record, err := c.ChartService.Calculate(ctx.Request.Context(), ownerID, profile)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    record,
	})
}

func (c *Controller) list(ctx *gin.Context) {
	ownerID, ok := c.ownerID(ctx)
	if !ok {
		return
	}

	records, err := c.ChartService.ListByOwner(ctx.Request.Context(), ownerID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records,
	})
}

func (c *Controller) get(ctx *gin.Context) {
	ownerID, ok := c.ownerID(ctx)
	if !ok {
		return
	}
	id, ok := c.chartID(ctx)
	if !ok {
		return
	}

	record, err := c.ChartService.Get(ctx.Request.Context(), ownerID, id)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    record,
	})
}

func (c *Controller) layout(ctx *gin.Context) {
	ownerID, ok := c.ownerID(ctx)
	if !ok {
		return
	}
	id, ok := c.chartID(ctx)
	if !ok {
		return
	}

	variant := domain.VariantTag(ctx.DefaultQuery("variant", string(domain.VariantRasi)))

	grid, err := c.ChartService.Layout(ctx.Request.Context(), ownerID, id, variant)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    grid,
	})
}

func (c *Controller) delete(ctx *gin.Context) {
	ownerID, ok := c.ownerID(ctx)
	if !ok {
		return
	}
	id, ok := c.chartID(ctx)
	if !ok {
		return
	}

	if err := c.ChartService.Delete(ctx.Request.Context(), ownerID, id); err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// respondError маппит доменные ошибки на HTTP статусы.
// Детали ошибок провайдера наружу не отдаются.
func (c *Controller) respondError(ctx *gin.Context, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   validationErr.Error(),
		})
		return
	}

	if errors.Is(err, domain.ErrChartNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "chart not found",
		})
		return
	}

	if domain.IsProviderError(err) {
		c.Log.Warn("astro provider failure",
			"error", err,
		)
		ctx.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   "astrology provider unavailable",
		})
		return
	}

	if domain.IsNormalizationError(err) {
		c.Log.Warn("provider payload normalization failure",
			"error", err,
		)
		ctx.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   "astrology provider returned an unusable response",
		})
		return
	}

	c.Log.Error("unhandled chart service error",
		"error", err,
	)
	ctx.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   "internal server error",
	})
}
