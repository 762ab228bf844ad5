package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/missing-persons-api/internal/source"
	"github.com/noah-isme/missing-persons-api/pkg/pagination"
)

const (
	responseMetaKey = "response_meta"
	requestStartKey = "request_start"

	MetaSource         = "source"
	MetaWarning        = "warning"
	MetaCacheHit       = "cache_hit"
	MetaPageWindow     = "page_window"
	MetaFilterKey      = "filter_key"
	MetaProcessingTime = "processing_time_ms"

	// SourceHeader mirrors meta.source for clients that only read headers.
	SourceHeader = "X-Data-Source"
)

// WithResponseMeta initialises response metadata storage on the request context.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requestStartKey, time.Now())
		c.Set(responseMetaKey, map[string]interface{}{})
		c.Next()
	}
}

// SetCacheHit records cache hit information for the current response.
func SetCacheHit(c *gin.Context, hit bool) {
	ensureMeta(c)[MetaCacheHit] = hit
}

// SetSource tags the response with the data source and, for fallback data, the
// user-facing warning.
func SetSource(c *gin.Context, src source.Source) {
	meta := ensureMeta(c)
	meta[MetaSource] = src
	if warning := src.Warning(); warning != "" {
		meta[MetaWarning] = warning
	}
	if c != nil {
		c.Header(SourceHeader, string(src))
	}
}

// SetPageWindow stores the page navigation window for the response.
func SetPageWindow(c *gin.Context, window []pagination.Entry) {
	if window == nil {
		window = []pagination.Entry{}
	}
	ensureMeta(c)[MetaPageWindow] = window
}

// SetFilterKey stores the fingerprint of the filter that produced the response.
func SetFilterKey(c *gin.Context, key string) {
	ensureMeta(c)[MetaFilterKey] = key
}

// ExtractMeta returns the metadata map stored on the context, stamped with the time
// spent on the request so far.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	value, exists := c.Get(responseMetaKey)
	if !exists {
		return nil
	}
	meta, ok := value.(map[string]interface{})
	if !ok {
		return nil
	}
	if start, ok := c.Get(requestStartKey); ok {
		if t, ok := start.(time.Time); ok {
			meta[MetaProcessingTime] = time.Since(t).Milliseconds()
		}
	}
	return meta
}

func ensureMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return map[string]interface{}{}
	}
	if meta, exists := c.Get(responseMetaKey); exists {
		if typed, ok := meta.(map[string]interface{}); ok {
			return typed
		}
	}
	newMeta := make(map[string]interface{})
	c.Set(responseMetaKey, newMeta)
	return newMeta
}
