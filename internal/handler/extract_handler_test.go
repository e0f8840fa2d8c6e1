package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billscan/internal/config"
	"billscan/internal/domain"
	"billscan/internal/extract"
	"billscan/internal/handler"
	"billscan/internal/router"
	"billscan/internal/service"
	"billscan/mocks"
)

func setupRouter(svc service.ExtractionService, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if cfg == nil {
		cfg = &config.Config{
			CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		}
	}
	h := router.Handlers{
		Extract: handler.NewExtractHandler(svc),
		Export:  handler.NewExportHandler(svc),
		Health:  handler.NewHealthHandler(extract.New(extract.Options{})),
	}
	return router.Setup(cfg, h)
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestExtractEndpoint(t *testing.T) {
	t.Run("returns the extracted document", func(t *testing.T) {
		svc := new(mocks.MockExtractionService)
		svc.On("Extract", mock.Anything, "Invoice No: SEL-00123", mock.Anything).
			Return(domain.ParsedDocument{DocumentNumber: "SEL-00123", Items: []domain.LineItem{}})

		w := doJSON(setupRouter(svc, nil), http.MethodPost, "/api/v1/extract", `{"text": "Invoice No: SEL-00123"}`)

		require.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Success)

		var doc domain.ParsedDocument
		require.NoError(t, json.Unmarshal(env.Data, &doc))
		assert.Equal(t, "SEL-00123", doc.DocumentNumber)
		svc.AssertExpectations(t)
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		svc := new(mocks.MockExtractionService)
		w := doJSON(setupRouter(svc, nil), http.MethodPost, "/api/v1/extract", `{"text":`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		assert.False(t, env.Success)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_BODY", env.Error.Code)
	})
}

func TestExtractBatchEndpoint(t *testing.T) {
	t.Run("maps empty batch to 400", func(t *testing.T) {
		svc := new(mocks.MockExtractionService)
		svc.On("ExtractBatch", mock.Anything, mock.Anything).Return(nil, domain.ErrEmptyBatch)

		w := doJSON(setupRouter(svc, nil), http.MethodPost, "/api/v1/extract/batch", `{"documents": []}`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		require.NotNil(t, env.Error)
		assert.Equal(t, "EMPTY_BATCH", env.Error.Code)
	})

	t.Run("returns batch results", func(t *testing.T) {
		svc := new(mocks.MockExtractionService)
		svc.On("ExtractBatch", mock.Anything, mock.Anything).Return([]service.BatchResult{
			{ID: "doc-1", Document: domain.ParsedDocument{DocumentNumber: "SEL-00123", Items: []domain.LineItem{}}},
		}, nil)

		w := doJSON(setupRouter(svc, nil), http.MethodPost, "/api/v1/extract/batch", `{"documents": [{"text": "x"}]}`)

		require.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Success)

		var results []service.BatchResult
		require.NoError(t, json.Unmarshal(env.Data, &results))
		require.Len(t, results, 1)
		assert.Equal(t, "doc-1", results[0].ID)
	})
}

func TestExportEndpoint(t *testing.T) {
	t.Run("rejects an unsupported format", func(t *testing.T) {
		svc := new(mocks.MockExtractionService)
		w := doJSON(setupRouter(svc, nil), http.MethodPost, "/api/v1/export?format=pdf", `{"documents": [{"text": "x"}]}`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		require.NotNil(t, env.Error)
		assert.Equal(t, "UNSUPPORTED_EXPORT_FORMAT", env.Error.Code)
	})

	t.Run("streams a CSV download with a BOM", func(t *testing.T) {
		svc := new(mocks.MockExtractionService)
		svc.On("ExtractBatch", mock.Anything, mock.Anything).Return([]service.BatchResult{
			{ID: "doc-1", Document: domain.ParsedDocument{DocumentNumber: "SEL-00123", Items: []domain.LineItem{}}},
		}, nil)

		w := doJSON(setupRouter(svc, nil), http.MethodPost, "/api/v1/export?format=csv", `{"documents": [{"text": "x"}]}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
		assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
		assert.True(t, strings.HasPrefix(w.Body.String(), "\xEF\xBB\xBF"))
		assert.Contains(t, w.Body.String(), "SEL-00123")
	})

	t.Run("streams an XLSX download", func(t *testing.T) {
		svc := new(mocks.MockExtractionService)
		svc.On("ExtractBatch", mock.Anything, mock.Anything).Return([]service.BatchResult{
			{ID: "doc-1", Document: domain.ParsedDocument{Items: []domain.LineItem{}}},
		}, nil)

		w := doJSON(setupRouter(svc, nil), http.MethodPost, "/api/v1/export?format=xlsx", `{"documents": [{"text": "x"}]}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
		assert.NotEmpty(t, w.Body.Bytes())
	})
}

func TestHealthEndpoints(t *testing.T) {
	r := setupRouter(new(mocks.MockExtractionService), nil)

	t.Run("liveness", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("readiness runs a canary extraction", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuthProtection(t *testing.T) {
	authCfg := &config.Config{
		Auth: config.AuthConfig{Secret: "test-secret", Issuer: "billscan"},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}

	t.Run("rejects requests without a token", func(t *testing.T) {
		svc := new(mocks.MockExtractionService)
		w := doJSON(setupRouter(svc, authCfg), http.MethodPost, "/api/v1/extract", `{"text": "x"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a token signed with the wrong secret", func(t *testing.T) {
		svc := new(mocks.MockExtractionService)
		r := setupRouter(svc, authCfg)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", strings.NewReader(`{"text": "x"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+mintToken(t, "wrong-secret", "billscan"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("accepts a valid token", func(t *testing.T) {
		svc := new(mocks.MockExtractionService)
		svc.On("Extract", mock.Anything, "x", mock.Anything).
			Return(domain.ParsedDocument{Items: []domain.LineItem{}})
		r := setupRouter(svc, authCfg)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", strings.NewReader(`{"text": "x"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+mintToken(t, "test-secret", "billscan"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("health endpoints bypass auth", func(t *testing.T) {
		r := setupRouter(new(mocks.MockExtractionService), authCfg)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func mintToken(t *testing.T, secret, issuer string) string {
	t.Helper()
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "tester",
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}
