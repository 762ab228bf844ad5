package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/missing-persons-api/internal/middleware"
	"github.com/noah-isme/missing-persons-api/internal/models"
	"github.com/noah-isme/missing-persons-api/internal/service"
	appErrors "github.com/noah-isme/missing-persons-api/pkg/errors"
)

func idParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be a positive integer", name))
	}
	return id, nil
}

func optionalIntQuery(c *gin.Context, name string) (*int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be a non-negative integer", name))
	}
	return &v, nil
}

func pageQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func dateQuery(c *gin.Context, name string) (*models.Date, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be YYYY-MM-DD or DD/MM/YYYY", name))
	}
	return &d, nil
}

func dateRangeQuery(c *gin.Context) (models.DateRange, error) {
	start, err := dateQuery(c, "start")
	if err != nil {
		return models.DateRange{}, err
	}
	end, err := dateQuery(c, "end")
	if err != nil {
		return models.DateRange{}, err
	}
	return models.DateRange{Start: start, End: end}, nil
}

func applyResultMeta(c *gin.Context, meta service.ResultMeta) {
	middleware.SetSource(c, meta.Source)
	middleware.SetCacheHit(c, meta.CacheHit)
}

func responseMeta(c *gin.Context) map[string]interface{} {
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	return meta
}
