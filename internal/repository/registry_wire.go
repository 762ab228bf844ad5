package repository

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/missing-persons-api/internal/models"
)

// Wire shapes of the registry API. The bundled fallback dataset uses the same shapes.

type registryPage struct {
	Content       []registryPerson `json:"content"`
	TotalPages    int              `json:"totalPages"`
	TotalElements int              `json:"totalElements"`
	Number        int              `json:"number"`
}

type registryPerson struct {
	ID               int64        `json:"id"`
	Nome             string       `json:"nome"`
	Idade            int          `json:"idade"`
	Sexo             string       `json:"sexo"`
	Vivo             bool         `json:"vivo"`
	URLFoto          string       `json:"urlFoto"`
	UltimaOcorrencia registryCase `json:"ultimaOcorrencia"`
}

type registryInterview struct {
	Informacao              string `json:"informacao"`
	VestimentasDesaparecido string `json:"vestimentasDesaparecido"`
}

type registryPoster struct {
	URLCartaz  string `json:"urlCartaz"`
	TipoCartaz string `json:"tipoCartaz"`
}

type registryCase struct {
	OcoID                      int64              `json:"ocoId"`
	DtDesaparecimento          registryTime       `json:"dtDesaparecimento"`
	DataLocalizacao            *registryTime      `json:"dataLocalizacao"`
	EncontradoVivo             *bool              `json:"encontradoVivo"`
	LocalDesaparecimentoConcat string             `json:"localDesaparecimentoConcat"`
	OcorrenciaEntrevDesapDTO   *registryInterview `json:"ocorrenciaEntrevDesapDTO"`
	ListaCartaz                []registryPoster   `json:"listaCartaz"`
}

type registryHistoryEntry struct {
	ID         int64       `json:"id"`
	OcoID      int64       `json:"ocoId"`
	Informacao string      `json:"informacao"`
	Data       models.Date `json:"data"`
	Anexos     []string    `json:"anexos"`
}

const (
	registryStatusMissing = "DESAPARECIDO"
	registryStatusLocated = "LOCALIZADO"
	registrySexMale       = "MASCULINO"
	registrySexFemale     = "FEMININO"
)

var registryTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// registryTime decodes the registry's timestamps, which usually carry no zone. Zoneless
// values are read as UTC.
type registryTime struct {
	time.Time
}

func (t *registryTime) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range registryTimeLayouts {
		if parsed, err := time.Parse(layout, strings.TrimSpace(*raw)); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognised registry timestamp %q", *raw)
}

func (t registryTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format("2006-01-02T15:04:05"))
}

func (p registryPerson) toModel() models.Person {
	return models.Person{
		ID:         p.ID,
		Name:       strings.TrimSpace(p.Nome),
		Age:        p.Idade,
		Sex:        sexFromRegistry(p.Sexo),
		PhotoURL:   p.URLFoto,
		Alive:      p.Vivo,
		LatestCase: p.UltimaOcorrencia.toModel(),
	}
}

func (c registryCase) toModel() models.Case {
	out := models.Case{
		ID:            c.OcoID,
		DisappearedAt: c.DtDesaparecimento.Time,
		Location:      strings.TrimSpace(c.LocalDesaparecimentoConcat),
		FoundAlive:    c.EncontradoVivo,
	}
	if c.DataLocalizacao != nil && !c.DataLocalizacao.IsZero() {
		located := c.DataLocalizacao.Time
		out.LocatedAt = &located
	}
	if c.OcorrenciaEntrevDesapDTO != nil {
		out.Circumstances = strings.TrimSpace(c.OcorrenciaEntrevDesapDTO.Informacao)
		out.Clothing = strings.TrimSpace(c.OcorrenciaEntrevDesapDTO.VestimentasDesaparecido)
	}
	for _, poster := range c.ListaCartaz {
		if poster.URLCartaz != "" {
			out.Posters = append(out.Posters, poster.URLCartaz)
		}
	}
	return out
}

func (e registryHistoryEntry) toModel() models.HistoryEntry {
	attachments := e.Anexos
	if attachments == nil {
		attachments = []string{}
	}
	return models.HistoryEntry{
		ID:          e.ID,
		CaseID:      e.OcoID,
		ReportDate:  e.Data,
		Text:        strings.TrimSpace(e.Informacao),
		Attachments: attachments,
	}
}

func sexFromRegistry(raw string) models.Sex {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case registrySexMale:
		return models.SexMale
	case registrySexFemale:
		return models.SexFemale
	default:
		return ""
	}
}

func sexToRegistry(sex models.Sex) string {
	switch sex {
	case models.SexMale:
		return registrySexMale
	case models.SexFemale:
		return registrySexFemale
	default:
		return ""
	}
}

func statusToRegistry(status models.CaseStatus) string {
	switch status {
	case models.StatusMissing:
		return registryStatusMissing
	case models.StatusLocated:
		return registryStatusLocated
	default:
		return ""
	}
}
