package models

import (
	"strconv"
	"strings"
	"time"
)

// Sex is the registry's binary sex category.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// CaseStatus is derived from a case and never stored.
type CaseStatus string

const (
	StatusMissing CaseStatus = "missing"
	StatusLocated CaseStatus = "located"
)

// Person is a registry entry together with its most recent case.
type Person struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Sex        Sex    `json:"sex"`
	PhotoURL   string `json:"photo_url,omitempty"`
	Alive      bool   `json:"alive"`
	LatestCase Case   `json:"latest_case"`
}

// Status is the status of the person's latest case.
func (p Person) Status() CaseStatus {
	return p.LatestCase.Status()
}

// Case is one disappearance occurrence.
type Case struct {
	ID            int64      `json:"id"`
	DisappearedAt time.Time  `json:"disappeared_at"`
	LocatedAt     *time.Time `json:"located_at,omitempty"`
	Location      string     `json:"location"`
	Circumstances string     `json:"circumstances,omitempty"`
	Clothing      string     `json:"clothing,omitempty"`
	FoundAlive    *bool      `json:"found_alive,omitempty"`
	Posters       []string   `json:"posters,omitempty"`
}

// Status is Located exactly when a located date is present.
func (c Case) Status() CaseStatus {
	if c.LocatedAt != nil && !c.LocatedAt.IsZero() {
		return StatusLocated
	}
	return StatusMissing
}

// City returns the leading segment of the "city - state" location string.
func (c Case) City() string {
	city, _, _ := strings.Cut(c.Location, "-")
	return strings.TrimSpace(city)
}

// PersonFilter narrows the person listing.
type PersonFilter struct {
	Name   string
	Status CaseStatus
	Sex    Sex
	AgeMin *int
	AgeMax *int
}

// Matches applies the filter to a single person.
func (f PersonFilter) Matches(p Person) bool {
	if name := strings.TrimSpace(f.Name); name != "" {
		if !strings.Contains(strings.ToLower(p.Name), strings.ToLower(name)) {
			return false
		}
	}
	if f.Status != "" && p.Status() != f.Status {
		return false
	}
	if f.Sex != "" && p.Sex != f.Sex {
		return false
	}
	if f.AgeMin != nil && p.Age < *f.AgeMin {
		return false
	}
	if f.AgeMax != nil && p.Age > *f.AgeMax {
		return false
	}
	return true
}

// Key fingerprints the filter for page-reset detection.
func (f PersonFilter) Key() string {
	return fingerprint(
		"name="+strings.ToLower(strings.TrimSpace(f.Name)),
		"status="+string(f.Status),
		"sex="+string(f.Sex),
		"min="+intPtrString(f.AgeMin),
		"max="+intPtrString(f.AgeMax),
	)
}

// PersonPage is one server-side page of the person listing.
type PersonPage struct {
	Items      []Person `json:"items"`
	Page       int      `json:"page"`
	TotalPages int      `json:"total_pages"`
	TotalCount int      `json:"total_count"`
}

func intPtrString(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
