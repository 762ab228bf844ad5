package dto

import "github.com/noah-isme/missing-persons-api/internal/models"

// HistoryResponse is one page of a person's case history.
type HistoryResponse struct {
	Person  PersonSummary         `json:"person"`
	CaseID  int64                 `json:"case_id"`
	Entries []models.HistoryEntry `json:"entries"`
}
