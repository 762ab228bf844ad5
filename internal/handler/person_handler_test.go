package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/missing-persons-api/internal/dto"
	"github.com/noah-isme/missing-persons-api/internal/models"
	"github.com/noah-isme/missing-persons-api/internal/service"
	"github.com/noah-isme/missing-persons-api/internal/source"
	appErrors "github.com/noah-isme/missing-persons-api/pkg/errors"
)

type personServiceMock struct {
	list      *service.PersonList
	detail    *service.PersonDetail
	err       error
	gotFilter models.PersonFilter
	gotPage   int
}

func (m *personServiceMock) List(ctx context.Context, filter models.PersonFilter, page int) (*service.PersonList, error) {
	m.gotFilter = filter
	m.gotPage = page
	return m.list, m.err
}

func (m *personServiceMock) Get(ctx context.Context, id int64) (*service.PersonDetail, error) {
	return m.detail, m.err
}

func samplePerson() models.Person {
	located := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	return models.Person{
		ID:   1002,
		Name: "Carlos Lima",
		Age:  41,
		Sex:  models.SexMale,
		LatestCase: models.Case{
			ID:            5002,
			DisappearedAt: time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC),
			LocatedAt:     &located,
			Location:      "Várzea Grande - MT",
		},
	}
}

func TestPersonHandlerListFallback(t *testing.T) {
	mockSvc := &personServiceMock{list: &service.PersonList{
		Page: &models.PersonPage{Items: []models.Person{samplePerson()}, Page: 2, TotalPages: 10, TotalCount: 95},
		Meta: service.ResultMeta{Source: source.Fallback, Warning: source.FallbackWarning},
	}}
	h := NewPersonHandler(mockSvc)

	c, w := newGinContext(http.MethodGet, "/persons?name=carlos&status=located&sex=male&age_min=18&page=2", nil)
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "carlos", mockSvc.gotFilter.Name)
	assert.Equal(t, models.StatusLocated, mockSvc.gotFilter.Status)
	assert.Equal(t, models.SexMale, mockSvc.gotFilter.Sex)
	require.NotNil(t, mockSvc.gotFilter.AgeMin)
	assert.Equal(t, 18, *mockSvc.gotFilter.AgeMin)
	assert.Nil(t, mockSvc.gotFilter.AgeMax)
	assert.Equal(t, 2, mockSvc.gotPage)

	env := decodeEnvelope(t, w)
	assert.Equal(t, "fallback", env.Meta["source"])
	assert.Equal(t, source.FallbackWarning, env.Meta["warning"])
	assert.Equal(t, mockSvc.gotFilter.Key(), env.Meta["filter_key"])
	assert.Equal(t, []interface{}{float64(1), float64(2), float64(3), float64(4), "...", float64(10)}, env.Meta["page_window"])
	assert.Equal(t, 10, env.Pagination["page_size"])
	assert.Equal(t, 95, env.Pagination["total_count"])

	var items []dto.PersonSummary
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, models.StatusLocated, items[0].Status)
	assert.Equal(t, "Várzea Grande", items[0].City)
}

func TestPersonHandlerListResetsPageOnFilterChange(t *testing.T) {
	mockSvc := &personServiceMock{list: &service.PersonList{
		Page: &models.PersonPage{Page: 1, TotalPages: 1},
		Meta: service.ResultMeta{Source: source.Primary},
	}}
	h := NewPersonHandler(mockSvc)

	c, w := newGinContext(http.MethodGet, "/persons?name=ana&page=4&filter_key=stale", nil)
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, mockSvc.gotPage)
}

func TestPersonHandlerListKeepsPageWhenFilterUnchanged(t *testing.T) {
	filter := models.PersonFilter{Name: "ana"}
	mockSvc := &personServiceMock{list: &service.PersonList{
		Page: &models.PersonPage{Page: 4, TotalPages: 5},
		Meta: service.ResultMeta{Source: source.Primary},
	}}
	h := NewPersonHandler(mockSvc)

	c, _ := newGinContext(http.MethodGet, "/persons?name=ana&page=4&filter_key="+filter.Key(), nil)
	h.List(c)

	assert.Equal(t, 4, mockSvc.gotPage)
}

func TestPersonHandlerListRejectsBadFilter(t *testing.T) {
	for _, query := range []string{"status=lost", "sex=x", "age_min=-1", "age_max=abc"} {
		mockSvc := &personServiceMock{}
		h := NewPersonHandler(mockSvc)
		c, w := newGinContext(http.MethodGet, "/persons?"+query, nil)
		h.List(c)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
}

func TestPersonHandlerListUnavailable(t *testing.T) {
	h := NewPersonHandler(&personServiceMock{err: appErrors.ErrResourceUnavailable})
	c, w := newGinContext(http.MethodGet, "/persons", nil)
	h.List(c)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, appErrors.ErrResourceUnavailable.Code, env.Error.Code)
}

func TestPersonHandlerGet(t *testing.T) {
	p := samplePerson()
	h := NewPersonHandler(&personServiceMock{detail: &service.PersonDetail{Person: &p, Meta: service.ResultMeta{Source: source.Primary}}})

	c, w := newGinContext(http.MethodGet, "/persons/1002", nil)
	c.Params = gin.Params{{Key: "id", Value: "1002"}}
	h.Get(c)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "primary", env.Meta["source"])
	assert.NotContains(t, env.Meta, "warning")

	var detail dto.PersonDetail
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, int64(5002), detail.LatestCase.ID)
	assert.Equal(t, models.StatusLocated, detail.LatestCase.Status)
}

func TestPersonHandlerGetInvalidID(t *testing.T) {
	h := NewPersonHandler(&personServiceMock{})
	c, w := newGinContext(http.MethodGet, "/persons/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.Get(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
