package dto

import (
	"time"

	"github.com/noah-isme/missing-persons-api/internal/models"
)

// ReportRequest captures the multipart POST /cases/:caseId/reports payload.
type ReportRequest struct {
	CaseID       int64              `validate:"required,gt=0"`
	Text         string             `form:"text" validate:"required,max=5000"`
	SightingDate string             `form:"sighting_date" validate:"required"`
	PhotoCaption string             `form:"photo_caption" validate:"max=255"`
	Photo        *models.Attachment `validate:"-"`
}

// ReportReceipt acknowledges a report accepted by the registry.
type ReportReceipt struct {
	CaseID       int64       `json:"case_id"`
	SightingDate models.Date `json:"sighting_date"`
	HasPhoto     bool        `json:"has_photo"`
	PhotoCaption string      `json:"photo_caption,omitempty"`
	SubmittedAt  time.Time   `json:"submitted_at"`
}
