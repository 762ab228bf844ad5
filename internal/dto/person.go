package dto

import (
	"time"

	"github.com/noah-isme/missing-persons-api/internal/models"
)

// PersonSummary is a listing card.
type PersonSummary struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Age           int               `json:"age"`
	Sex           models.Sex        `json:"sex"`
	PhotoURL      string            `json:"photo_url,omitempty"`
	Status        models.CaseStatus `json:"status"`
	City          string            `json:"city,omitempty"`
	DisappearedAt time.Time         `json:"disappeared_at"`
}

// PersonDetail is the full person view with the latest case.
type PersonDetail struct {
	PersonSummary
	Alive      bool       `json:"alive"`
	LatestCase CaseDetail `json:"latest_case"`
}

// CaseDetail describes one disappearance occurrence.
type CaseDetail struct {
	ID            int64             `json:"id"`
	Status        models.CaseStatus `json:"status"`
	DisappearedAt time.Time         `json:"disappeared_at"`
	LocatedAt     *time.Time        `json:"located_at,omitempty"`
	Location      string            `json:"location"`
	City          string            `json:"city,omitempty"`
	Circumstances string            `json:"circumstances,omitempty"`
	Clothing      string            `json:"clothing,omitempty"`
	FoundAlive    *bool             `json:"found_alive,omitempty"`
	Posters       []string          `json:"posters,omitempty"`
}

// NewPersonSummary maps a person to its listing card.
func NewPersonSummary(p models.Person) PersonSummary {
	return PersonSummary{
		ID:            p.ID,
		Name:          p.Name,
		Age:           p.Age,
		Sex:           p.Sex,
		PhotoURL:      p.PhotoURL,
		Status:        p.Status(),
		City:          p.LatestCase.City(),
		DisappearedAt: p.LatestCase.DisappearedAt,
	}
}

// NewPersonSummaries maps a page of persons.
func NewPersonSummaries(persons []models.Person) []PersonSummary {
	out := make([]PersonSummary, 0, len(persons))
	for _, p := range persons {
		out = append(out, NewPersonSummary(p))
	}
	return out
}

// NewPersonDetail maps a person to the detail view.
func NewPersonDetail(p models.Person) PersonDetail {
	c := p.LatestCase
	return PersonDetail{
		PersonSummary: NewPersonSummary(p),
		Alive:         p.Alive,
		LatestCase: CaseDetail{
			ID:            c.ID,
			Status:        c.Status(),
			DisappearedAt: c.DisappearedAt,
			LocatedAt:     c.LocatedAt,
			Location:      c.Location,
			City:          c.City(),
			Circumstances: c.Circumstances,
			Clothing:      c.Clothing,
			FoundAlive:    c.FoundAlive,
			Posters:       c.Posters,
		},
	}
}
