package models

import "time"

// Attachment is an uploaded file forwarded to the registry.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportSubmission is a validated citizen report ready to be sent.
type ReportSubmission struct {
	CaseID       int64
	Text         string
	SightingDate Date
	Photo        *Attachment
	PhotoCaption string
}

// SubmissionOutcome records how the registry answered a submission.
type SubmissionOutcome string

const (
	SubmissionAccepted SubmissionOutcome = "accepted"
	SubmissionRejected SubmissionOutcome = "rejected"
)

// SubmissionLog is the local audit row for a submission attempt.
type SubmissionLog struct {
	ID           string            `db:"id" json:"id"`
	CaseID       int64             `db:"case_id" json:"case_id"`
	SightingDate time.Time         `db:"sighting_date" json:"sighting_date"`
	Outcome      SubmissionOutcome `db:"outcome" json:"outcome"`
	ErrorMessage *string           `db:"error_message" json:"error_message,omitempty"`
	HasPhoto     bool              `db:"has_photo" json:"has_photo"`
	RequestID    *string           `db:"request_id" json:"request_id,omitempty"`
	CreatedAt    time.Time         `db:"created_at" json:"created_at"`
}
