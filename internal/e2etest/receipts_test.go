package e2etest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MikeRez0/receiptprocessor/internal/adapter/config"
	handler "github.com/MikeRez0/receiptprocessor/internal/adapter/handler/http"
	"github.com/MikeRez0/receiptprocessor/internal/adapter/metrics"
	"github.com/MikeRez0/receiptprocessor/internal/adapter/storage/bolt"
	"github.com/MikeRez0/receiptprocessor/internal/core/points"
	"github.com/MikeRez0/receiptprocessor/internal/core/service"
	"github.com/MikeRez0/receiptprocessor/internal/core/validation"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newServer(t *testing.T, now time.Time) *handler.Router {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	repo, err := bolt.NewRepository(filepath.Join(t.TempDir(), "receipts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	svc, err := service.NewService(repo,
		points.NewCalculator(points.DefaultRules(), logger),
		validation.NewValidator(validation.WithClock(func() time.Time { return now })),
		logger)
	require.NoError(t, err)

	m := metrics.New()
	rh, err := handler.NewReceiptHandler(svc, m, logger)
	require.NoError(t, err)
	r, err := handler.NewRouter(&config.HTTP{}, rh, m, logger)
	require.NoError(t, err)
	return r
}

func process(t *testing.T, r http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/receipts/process", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestReceipts_ProcessAndGetPoints(t *testing.T) {
	r := newServer(t, time.Date(2024, time.May, 15, 12, 0, 0, 0, time.Local))

	type processTest struct {
		name      string
		body      string
		expPoints int64
	}

	tests := []processTest{
		{
			name: "walmart",
			body: `{"retailer":"Walmart","purchaseDate":"2020-01-01","purchaseTime":"10:00","total":"15.00",
				"items":[{"shortDescription":"Milk","price":"10.00"},{"shortDescription":"Bread1","price":"5.00"}]}`,
			expPoints: 94,
		},
		{
			name: "target",
			body: `{"retailer":"Target","purchaseDate":"2022-01-01","purchaseTime":"13:01","total":"35.35","items":[
				{"shortDescription":"Mountain Dew 12PK","price":"6.49"},
				{"shortDescription":"Emils Cheese Pizza","price":"12.25"},
				{"shortDescription":"Knorr Creamy Chicken","price":"1.26"},
				{"shortDescription":"Doritos Nacho Cheese","price":"3.35"},
				{"shortDescription":"   Klarbrunn 12-PK 12 FL OZ  ","price":"12.00"}]}`,
			expPoints: 28,
		},
		{
			name: "corner market",
			body: `{"retailer":"M&M Corner Market","purchaseDate":"2022-03-20","purchaseTime":"14:33","total":"9.00","items":[
				{"shortDescription":"Gatorade","price":"2.25"},
				{"shortDescription":"Gatorade","price":"2.25"},
				{"shortDescription":"Gatorade","price":"2.25"},
				{"shortDescription":"Gatorade","price":"2.25"}]}`,
			expPoints: 109,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := process(t, r, test.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var created struct {
				ID string `json:"id"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
			require.NotEmpty(t, created.ID)

			w = httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/receipts/"+created.ID+"/points", nil))
			require.Equal(t, http.StatusOK, w.Code)

			var got struct {
				Points int64 `json:"points"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, test.expPoints, got.Points)
		})
	}
}

func TestReceipts_FutureReceiptIsNotStored(t *testing.T) {
	r := newServer(t, time.Date(2024, time.May, 15, 12, 0, 0, 0, time.Local))

	w := process(t, r, `{"id":"future","retailer":"Walmart","purchaseDate":"2024-05-15","purchaseTime":"12:01",
		"total":"1.00","items":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "The receipt is invalid", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/receipts/future/points", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Receipt not found", w.Body.String())
}

func TestReceipts_DuplicateIDIsRejected(t *testing.T) {
	r := newServer(t, time.Date(2024, time.May, 15, 12, 0, 0, 0, time.Local))
	body := `{"id":"fixed","retailer":"Walmart","purchaseDate":"2020-01-01","purchaseTime":"10:00",
		"total":"1.00","items":[]}`

	w := process(t, r, body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"fixed"}`, w.Body.String())

	w = process(t, r, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
