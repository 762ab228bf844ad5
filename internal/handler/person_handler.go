package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/missing-persons-api/internal/dto"
	"github.com/noah-isme/missing-persons-api/internal/middleware"
	"github.com/noah-isme/missing-persons-api/internal/models"
	"github.com/noah-isme/missing-persons-api/internal/service"
	appErrors "github.com/noah-isme/missing-persons-api/pkg/errors"
	"github.com/noah-isme/missing-persons-api/pkg/pagination"
	"github.com/noah-isme/missing-persons-api/pkg/response"
)

type personService interface {
	List(ctx context.Context, filter models.PersonFilter, page int) (*service.PersonList, error)
	Get(ctx context.Context, id int64) (*service.PersonDetail, error)
}

// PersonHandler exposes the person listing and detail endpoints.
type PersonHandler struct {
	persons personService
}

// NewPersonHandler constructs PersonHandler.
func NewPersonHandler(persons personService) *PersonHandler {
	return &PersonHandler{persons: persons}
}

// List godoc
// @Summary List missing and located persons
// @Tags Persons
// @Produce json
// @Param name query string false "Name contains"
// @Param status query string false "missing or located"
// @Param sex query string false "male or female"
// @Param age_min query int false "Minimum age"
// @Param age_max query int false "Maximum age"
// @Param page query int false "Page (1-based)"
// @Param filter_key query string false "filter_key from the previous response"
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /persons [get]
func (h *PersonHandler) List(c *gin.Context) {
	filter, err := personFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	key := filter.Key()
	page := pagination.ResolvePage(pageQuery(c), c.Query("filter_key"), key)

	res, err := h.persons.List(c.Request.Context(), filter, page)
	if err != nil {
		response.Error(c, err)
		return
	}

	applyResultMeta(c, res.Meta)
	middleware.SetFilterKey(c, key)
	middleware.SetPageWindow(c, pagination.BuildWindow(res.Page.Page, res.Page.TotalPages, pagination.DefaultMaxVisible))
	pag := &models.Pagination{
		Page:       res.Page.Page,
		PageSize:   pagination.ListingPageSize,
		TotalPages: res.Page.TotalPages,
		TotalCount: res.Page.TotalCount,
	}
	response.JSON(c, http.StatusOK, dto.NewPersonSummaries(res.Page.Items), pag, responseMeta(c))
}

// Get godoc
// @Summary Person detail
// @Tags Persons
// @Produce json
// @Param id path int true "Person ID"
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /persons/{id} [get]
func (h *PersonHandler) Get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := h.persons.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	applyResultMeta(c, res.Meta)
	response.JSON(c, http.StatusOK, dto.NewPersonDetail(*res.Person), nil, responseMeta(c))
}

func personFilter(c *gin.Context) (models.PersonFilter, error) {
	filter := models.PersonFilter{Name: strings.TrimSpace(c.Query("name"))}

	switch status := models.CaseStatus(strings.ToLower(strings.TrimSpace(c.Query("status")))); status {
	case "", models.StatusMissing, models.StatusLocated:
		filter.Status = status
	default:
		return filter, appErrors.Clone(appErrors.ErrValidation, "status must be missing or located")
	}

	switch sex := models.Sex(strings.ToLower(strings.TrimSpace(c.Query("sex")))); sex {
	case "", models.SexMale, models.SexFemale:
		filter.Sex = sex
	default:
		return filter, appErrors.Clone(appErrors.ErrValidation, "sex must be male or female")
	}

	var err error
	if filter.AgeMin, err = optionalIntQuery(c, "age_min"); err != nil {
		return filter, err
	}
	if filter.AgeMax, err = optionalIntQuery(c, "age_max"); err != nil {
		return filter, err
	}
	return filter, nil
}
