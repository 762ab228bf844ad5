package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/missing-persons-api/internal/dto"
	"github.com/noah-isme/missing-persons-api/internal/middleware"
	"github.com/noah-isme/missing-persons-api/internal/models"
	"github.com/noah-isme/missing-persons-api/internal/service"
	"github.com/noah-isme/missing-persons-api/pkg/pagination"
	"github.com/noah-isme/missing-persons-api/pkg/response"
)

type historyService interface {
	Page(ctx context.Context, personID int64, query service.HistoryQuery) (*service.HistoryPage, error)
	Export(ctx context.Context, personID int64, r models.DateRange, format models.ExportFormat) (*models.ExportFile, service.ResultMeta, error)
}

// HistoryHandler exposes a person's case history.
type HistoryHandler struct {
	history historyService
}

// NewHistoryHandler constructs HistoryHandler.
func NewHistoryHandler(history historyService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// List godoc
// @Summary Case history of a person, newest first
// @Tags History
// @Produce json
// @Param id path int true "Person ID"
// @Param start query string false "Start date (YYYY-MM-DD), inclusive; must not be after end"
// @Param end query string false "End date (YYYY-MM-DD), inclusive"
// @Param page query int false "Page (1-based); pages past the end return the last page"
// @Param filter_key query string false "filter_key from the previous response"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope "Invalid date or start after end"
// @Failure 503 {object} response.Envelope
// @Router /persons/{id}/history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	r, err := dateRangeQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	page := pagination.ResolvePage(pageQuery(c), c.Query("filter_key"), r.Key())

	res, err := h.history.Page(c.Request.Context(), id, service.HistoryQuery{Range: r, Page: page})
	if err != nil {
		response.Error(c, err)
		return
	}

	applyResultMeta(c, res.Meta)
	middleware.SetFilterKey(c, res.FilterKey)
	middleware.SetPageWindow(c, res.Window)
	pag := &models.Pagination{
		Page:       res.Page,
		PageSize:   pagination.HistoryPageSize,
		TotalPages: res.TotalPages,
		TotalCount: res.TotalCount,
	}
	body := dto.HistoryResponse{
		Person:  dto.NewPersonSummary(*res.Person),
		CaseID:  res.Person.LatestCase.ID,
		Entries: res.Entries,
	}
	response.JSON(c, http.StatusOK, body, pag, responseMeta(c))
}

// Export godoc
// @Summary Download the filtered case history
// @Tags History
// @Produce text/csv
// @Produce application/pdf
// @Param id path int true "Person ID"
// @Param start query string false "Start date (YYYY-MM-DD), inclusive; must not be after end"
// @Param end query string false "End date (YYYY-MM-DD), inclusive"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope "Invalid date, start after end or unknown format"
// @Failure 503 {object} response.Envelope
// @Router /persons/{id}/history/export [get]
func (h *HistoryHandler) Export(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	r, err := dateRangeQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}

	file, meta, err := h.history.Export(c.Request.Context(), id, r, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header(middleware.SourceHeader, string(meta.Source))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
