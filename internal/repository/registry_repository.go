package repository

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/noah-isme/missing-persons-api/internal/models"
	appErrors "github.com/noah-isme/missing-persons-api/pkg/errors"
	"github.com/noah-isme/missing-persons-api/pkg/pagination"
)

const (
	registryListPath    = "/v1/pessoas/aberto/filtro"
	registryPersonPath  = "/v1/pessoas/{id}"
	registryHistoryPath = "/v1/ocorrencias/informacoes-desaparecido"
	registryReportPath  = "/v1/ocorrencias/informacoes-desaparecido"
)

// RegistryRepository talks to the live missing-persons registry over HTTP.
type RegistryRepository struct {
	client *resty.Client
}

// NewRegistryRepository constructs a registry client for baseURL.
func NewRegistryRepository(baseURL string, timeout time.Duration) *RegistryRepository {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &RegistryRepository{client: client}
}

// ListPersons returns one page (1-based) of the filtered listing.
func (r *RegistryRepository) ListPersons(ctx context.Context, filter models.PersonFilter, page int) (*models.PersonPage, error) {
	if page < 1 {
		page = 1
	}
	params := map[string]string{
		"nome":              strings.TrimSpace(filter.Name),
		"status":            statusToRegistry(filter.Status),
		"sexo":              sexToRegistry(filter.Sex),
		"faixaIdadeInicial": optionalInt(filter.AgeMin),
		"faixaIdadeFinal":   optionalInt(filter.AgeMax),
		"pagina":            strconv.Itoa(page - 1),
		"porPagina":         strconv.Itoa(pagination.ListingPageSize),
	}
	for key, value := range params {
		if value == "" {
			delete(params, key)
		}
	}

	var body registryPage
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&body).
		Get(registryListPath)
	if err := checkResponse(resp, err, "list persons"); err != nil {
		return nil, err
	}

	items := make([]models.Person, 0, len(body.Content))
	for _, p := range body.Content {
		items = append(items, p.toModel())
	}
	totalPages := body.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}
	return &models.PersonPage{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		TotalCount: body.TotalElements,
	}, nil
}

// FindPerson loads a single person with their latest case.
func (r *RegistryRepository) FindPerson(ctx context.Context, id int64) (*models.Person, error) {
	var body registryPerson
	resp, err := r.client.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetResult(&body).
		Get(registryPersonPath)
	if err := checkResponse(resp, err, "find person"); err != nil {
		return nil, err
	}
	person := body.toModel()
	return &person, nil
}

// CaseHistory returns the citizen reports attached to a case, in registry order.
func (r *RegistryRepository) CaseHistory(ctx context.Context, caseID int64) ([]models.HistoryEntry, error) {
	var body []registryHistoryEntry
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParam("ocorrenciaId", strconv.FormatInt(caseID, 10)).
		SetResult(&body).
		Get(registryHistoryPath)
	if err := checkResponse(resp, err, "case history"); err != nil {
		return nil, err
	}
	entries := make([]models.HistoryEntry, 0, len(body))
	for _, e := range body {
		entry := e.toModel()
		if entry.CaseID == 0 {
			entry.CaseID = caseID
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// SubmitReport posts a citizen report as multipart form data.
func (r *RegistryRepository) SubmitReport(ctx context.Context, sub models.ReportSubmission) error {
	req := r.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ocoId":      strconv.FormatInt(sub.CaseID, 10),
			"informacao": sub.Text,
			"data":       sub.SightingDate.String(),
			"descricao":  sub.PhotoCaption,
		}).
		SetMultipartFormData(map[string]string{})
	if sub.Photo != nil {
		req.SetMultipartField("files", sub.Photo.Filename, sub.Photo.ContentType, bytes.NewReader(sub.Photo.Data))
	}
	resp, err := req.Post(registryReportPath)
	return checkResponse(resp, err, "submit report")
}

func checkResponse(resp *resty.Response, err error, op string) error {
	if err != nil {
		return appErrors.Wrap(fmt.Errorf("%s: %w", op, err), appErrors.ErrTransientFetch.Code, appErrors.ErrTransientFetch.Status, appErrors.ErrTransientFetch.Message)
	}
	if resp.IsError() {
		return appErrors.Wrap(fmt.Errorf("%s: registry responded %d", op, resp.StatusCode()), appErrors.ErrTransientFetch.Code, appErrors.ErrTransientFetch.Status, appErrors.ErrTransientFetch.Message)
	}
	return nil
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
