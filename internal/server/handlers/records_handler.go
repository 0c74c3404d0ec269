package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/phonebooks/internal/domain/models"
	"github.com/mamadbah2/phonebooks/internal/service/reporting"
)

const (
	msgInvalidRecord = "Invalid record data"
	msgNotFound      = "Record not found"
	msgServerError   = "Server Error"
)

// RecordService describes the record operations the HTTP layer can perform.
type RecordService interface {
	Create(ctx context.Context, in models.RecordInput) (*models.Record, error)
	Get(ctx context.Context, id string) (*models.Record, error)
	Update(ctx context.Context, id string, in models.RecordInput) (*models.Record, error)
	Remove(ctx context.Context, id string) error
	List(ctx context.Context, search string, dateRange reporting.DateRange) ([]models.Record, error)
	Summary(ctx context.Context) (models.Summary, error)
}

// RecordsHandler exposes the records REST surface.
type RecordsHandler struct {
	svc    RecordService
	logger *zap.Logger
}

// NewRecordsHandler constructs the HTTP handler adapter.
func NewRecordsHandler(svc RecordService, logger *zap.Logger) *RecordsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordsHandler{svc: svc, logger: logger}
}

// Register mounts the record routes on the group.
func (h *RecordsHandler) Register(g *gin.RouterGroup) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/summary", h.Summary)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List returns records latest first, optionally narrowed by ?search= and ?range=.
func (h *RecordsHandler) List(c *gin.Context) {
	dateRange, err := reporting.ParseDateRange(c.Query("range"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	records, err := h.svc.List(c.Request.Context(), c.Query("search"), dateRange)
	if err != nil {
		h.fail(c, err, http.StatusInternalServerError, msgServerError)
		return
	}

	c.JSON(http.StatusOK, records)
}

// Create stores a new record.
func (h *RecordsHandler) Create(c *gin.Context) {
	var in models.RecordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid record payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidRecord, "error": err.Error()})
		return
	}

	rec, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, http.StatusBadRequest, msgInvalidRecord)
		return
	}

	c.JSON(http.StatusCreated, rec)
}

// Get returns a single record.
func (h *RecordsHandler) Get(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, http.StatusInternalServerError, msgServerError)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// Update merges the supplied fields onto an existing record.
func (h *RecordsHandler) Update(c *gin.Context) {
	var in models.RecordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid record payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidRecord, "error": err.Error()})
		return
	}

	rec, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, err, http.StatusBadRequest, msgInvalidRecord)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// Delete removes a record.
func (h *RecordsHandler) Delete(c *gin.Context) {
	if err := h.svc.Remove(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, http.StatusInternalServerError, msgServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Record removed"})
}

// Summary returns the aggregated dashboard metrics.
func (h *RecordsHandler) Summary(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		h.fail(c, err, http.StatusInternalServerError, msgServerError)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// fail maps domain errors onto responses. Anything that is neither a
// validation nor a not-found error is answered with fallbackStatus.
func (h *RecordsHandler) fail(c *gin.Context, err error, fallbackStatus int, fallbackMessage string) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidRecord, "error": verr.Error(), "fields": verr.Fields})
	case errors.Is(err, models.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
	default:
		h.logger.Error("record operation failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path))
		c.JSON(fallbackStatus, gin.H{"message": fallbackMessage})
	}
}
