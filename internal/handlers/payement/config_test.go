package payement

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aurelia_back_end/internal/pricing"
	"aurelia_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupConfigRouter(t *testing.T) (*gin.Engine, *store.MemoryConfigStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfgStore := store.NewMemoryConfigStore()
	Init(nil, cfgStore)

	r := gin.New()
	r.GET("/payment/config", GetPaymentConfig)
	r.PUT("/admin/payment/config", UpdatePaymentConfig)
	return r, cfgStore
}

func TestGetPaymentConfig_CreatesDefaults(t *testing.T) {
	r, cfgStore := setupConfigRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payment/config", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var cfg pricing.PaymentConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.Equal(t, pricing.DefaultConfig(), cfg)
	assert.Equal(t, 1, cfgStore.Creates)

	// Un second appel ne recrée rien
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/payment/config", nil))
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, 1, cfgStore.Creates)
}

func TestUpdatePaymentConfig_ReplacesAllFields(t *testing.T) {
	r, _ := setupConfigRouter(t)

	body := `{"taxPercent": 21, "shippingFee": 500, "freeShippingThreshold": 5000}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/admin/payment/config", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var cfg pricing.PaymentConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.Equal(t, 21.0, cfg.TaxPercent)
	assert.Equal(t, int64(500), cfg.ShippingFee)
	assert.Equal(t, int64(5000), cfg.FreeShippingThreshold)
}

func TestUpdatePaymentConfig_ZeroValuesAccepted(t *testing.T) {
	r, _ := setupConfigRouter(t)

	body := `{"taxPercent": 0, "shippingFee": 0, "freeShippingThreshold": 0}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/admin/payment/config", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdatePaymentConfig_RejectsNegativeValues(t *testing.T) {
	cases := []string{
		`{"taxPercent": -1, "shippingFee": 500, "freeShippingThreshold": 5000}`,
		`{"taxPercent": 21, "shippingFee": -1, "freeShippingThreshold": 5000}`,
		`{"taxPercent": 21, "shippingFee": 500, "freeShippingThreshold": -1}`,
	}

	for _, body := range cases {
		r, cfgStore := setupConfigRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/admin/payment/config", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, body)

		// La configuration n'a pas bougé
		cfg, err := cfgStore.Get(req.Context())
		require.NoError(t, err)
		assert.Equal(t, pricing.DefaultConfig(), cfg)
	}
}

func TestUpdatePaymentConfig_RejectsPartialBody(t *testing.T) {
	r, _ := setupConfigRouter(t)

	body := `{"taxPercent": 21}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/admin/payment/config", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
