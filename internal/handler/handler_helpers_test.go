package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/missing-persons-api/internal/middleware"
)

func newGinContext(method, path string, body io.Reader) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, body)
	c.Request = req
	middleware.WithResponseMeta()(c)
	return c, w
}

type envelope struct {
	Data       json.RawMessage        `json:"data"`
	Error      *envelopeError         `json:"error"`
	Pagination map[string]int         `json:"pagination"`
	Meta       map[string]interface{} `json:"meta"`
}

type envelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&env))
	return env
}
