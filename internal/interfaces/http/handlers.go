package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/voyagedesk/tripquote/internal/service"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	leadService      *service.LeadService
	quotationService *service.QuotationService
	logger           *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	leadService *service.LeadService,
	quotationService *service.QuotationService,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		leadService:      leadService,
		quotationService: quotationService,
		logger:           logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ListRequest represents common pagination query parameters
type ListRequest struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// OpenQuotationRequest represents the body of POST /api/quotations
type OpenQuotationRequest struct {
	TripID string `json:"tripId"`
	LeadID string `json:"leadId"`
}

// SetDayDateRequest represents the body of the day date endpoint
type SetDayDateRequest struct {
	Date string `json:"date" binding:"required"`
}

// UpdateLeadStatusRequest represents the body of the lead status endpoint
type UpdateLeadStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PDFResponse represents the PDF generation result
type PDFResponse struct {
	TripID string `json:"tripId"`
	Path   string `json:"path"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// CreateLead handles POST /api/leads
func (h *Handlers) CreateLead(c *gin.Context) {
	var input service.CreateLeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	lead, err := h.leadService.Create(input)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: lead})
}

// ListLeads handles GET /api/leads
func (h *Handlers) ListLeads(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid query parameters"})
		return
	}

	leads, err := h.leadService.List(req.Limit, req.Offset)
	if err != nil {
		h.logger.Error("Failed to list leads", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to list leads"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: leads})
}

// GetLead handles GET /api/leads/:id
func (h *Handlers) GetLead(c *gin.Context) {
	lead, err := h.leadService.Get(c.Param("id"))
	if err != nil {
		h.logger.Error("Failed to get lead", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to get lead"})
		return
	}
	if lead == nil {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "lead not found"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: lead})
}

// UpdateLeadStatus handles PATCH /api/leads/:id/status
func (h *Handlers) UpdateLeadStatus(c *gin.Context) {
	var req UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	if err := h.leadService.UpdateStatus(c.Param("id"), req.Status); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// OpenQuotation handles POST /api/quotations
func (h *Handlers) OpenQuotation(c *gin.Context) {
	var req OpenQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	tripID, form, err := h.quotationService.Open(req.TripID, req.LeadID)
	if err != nil {
		if errors.Is(err, service.ErrAlreadySubmitted) {
			c.JSON(http.StatusConflict, Response{Success: false, Error: err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: gin.H{
		"tripId": tripID,
		"form":   form,
	}})
}

// ListQuotations handles GET /api/quotations
func (h *Handlers) ListQuotations(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid query parameters"})
		return
	}

	quotations, err := h.quotationService.ListSubmitted(req.Limit, req.Offset)
	if err != nil {
		h.logger.Error("Failed to list quotations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to list quotations"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: quotations})
}

// GetQuotation handles GET /api/quotations/:tripId
func (h *Handlers) GetQuotation(c *gin.Context) {
	form, err := h.quotationService.Snapshot(c.Param("tripId"))
	if err != nil {
		h.respondQuotationError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: form})
}

// PatchQuotation handles PATCH /api/quotations/:tripId. The body is a
// partial form document; only the keys present change.
func (h *Handlers) PatchQuotation(c *gin.Context) {
	patch, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "failed to read request body"})
		return
	}

	form, err := h.quotationService.ApplyPatch(c.Param("tripId"), patch)
	if err != nil {
		h.respondQuotationError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: form})
}

// SetDayDate handles PUT /api/quotations/:tripId/days/:index/date
func (h *Handlers) SetDayDate(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid day index"})
		return
	}

	var req SetDayDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	form, err := h.quotationService.SetDayDate(c.Param("tripId"), index, req.Date)
	if err != nil {
		h.respondQuotationError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: form})
}

// EditDay handles PUT /api/quotations/:tripId/days/:index
func (h *Handlers) EditDay(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid day index"})
		return
	}

	var content service.DayContent
	if err := c.ShouldBindJSON(&content); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	form, err := h.quotationService.EditDay(c.Param("tripId"), index, content)
	if err != nil {
		h.respondQuotationError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: form})
}

// AddHotel handles POST /api/quotations/:tripId/hotels
func (h *Handlers) AddHotel(c *gin.Context) {
	form, err := h.quotationService.AddHotel(c.Param("tripId"))
	if err != nil {
		h.respondQuotationError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: form})
}

// RemoveHotel handles DELETE /api/quotations/:tripId/hotels/:index
func (h *Handlers) RemoveHotel(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid hotel index"})
		return
	}

	form, err := h.quotationService.RemoveHotel(c.Param("tripId"), index)
	if err != nil {
		h.respondQuotationError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: form})
}

// SubmitQuotation handles POST /api/quotations/:tripId/submit
func (h *Handlers) SubmitQuotation(c *gin.Context) {
	record, err := h.quotationService.Submit(c.Param("tripId"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, Response{Success: false, Error: err.Error()})
			return
		}
		h.logger.Error("Failed to submit quotation",
			zap.String("trip_id", c.Param("tripId")),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to submit quotation"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: record})
}

// RenderQuotationPDF handles POST /api/quotations/:tripId/pdf
func (h *Handlers) RenderQuotationPDF(c *gin.Context) {
	tripID := c.Param("tripId")
	path, err := h.quotationService.RenderPDF(tripID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, Response{Success: false, Error: "quotation not found"})
			return
		}
		h.logger.Error("Failed to render quotation PDF",
			zap.String("trip_id", tripID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to render pdf"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: PDFResponse{TripID: tripID, Path: path}})
}

// DiscardQuotation handles DELETE /api/quotations/:tripId
func (h *Handlers) DiscardQuotation(c *gin.Context) {
	if err := h.quotationService.Discard(c.Param("tripId")); err != nil {
		h.respondQuotationError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

func (h *Handlers) respondQuotationError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
}
