package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/missing-persons-api/internal/dto"
	"github.com/noah-isme/missing-persons-api/internal/models"
	appErrors "github.com/noah-isme/missing-persons-api/pkg/errors"
	"github.com/noah-isme/missing-persons-api/pkg/response"
)

// MaxPhotoBytes caps the size of an attached photo.
const MaxPhotoBytes = 10 << 20

type reportService interface {
	Submit(ctx context.Context, req dto.ReportRequest) (*dto.ReportReceipt, error)
	Submissions(ctx context.Context, caseID int64) ([]models.SubmissionLog, error)
}

// ReportHandler accepts citizen reports for a case.
type ReportHandler struct {
	reports reportService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Submit godoc
// @Summary Send new information about a case
// @Tags Reports
// @Accept multipart/form-data
// @Produce json
// @Param caseId path int true "Case ID"
// @Param text formData string true "What was seen"
// @Param sighting_date formData string true "DD/MM/YYYY or YYYY-MM-DD"
// @Param photo_caption formData string false "Photo caption"
// @Param photo formData file false "Photo"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /cases/{caseId}/reports [post]
func (h *ReportHandler) Submit(c *gin.Context) {
	caseID, err := idParam(c, "caseId")
	if err != nil {
		response.Error(c, err)
		return
	}
	photo, err := photoFromForm(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	req := dto.ReportRequest{
		CaseID:       caseID,
		Text:         c.PostForm("text"),
		SightingDate: c.PostForm("sighting_date"),
		PhotoCaption: c.PostForm("photo_caption"),
		Photo:        photo,
	}

	receipt, err := h.reports.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, receipt)
}

// ListSubmissions godoc
// @Summary Submission attempts logged for a case
// @Tags Reports
// @Produce json
// @Param caseId path int true "Case ID"
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /cases/{caseId}/reports [get]
func (h *ReportHandler) ListSubmissions(c *gin.Context) {
	caseID, err := idParam(c, "caseId")
	if err != nil {
		response.Error(c, err)
		return
	}
	logs, err := h.reports.Submissions(c.Request.Context(), caseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, logs, nil)
}

func photoFromForm(c *gin.Context) (*models.Attachment, error) {
	header, err := c.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid multipart form")
	}
	if header.Size > MaxPhotoBytes {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("photo exceeds %d MB", MaxPhotoBytes>>20))
	}
	data, err := readPart(header)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unable to read photo")
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return &models.Attachment{Filename: header.Filename, ContentType: contentType, Data: data}, nil
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, MaxPhotoBytes+1))
}
