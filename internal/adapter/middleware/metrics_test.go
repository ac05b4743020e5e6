package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"peerlend-backend/internal/infrastructure/metrics"
)

func TestObserveOps_CountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	e := echo.New()
	e.HideBanner = true
	e.Use(ObserveOps(m))
	e.GET("/loans/:loan_id", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "requested"})
	})
	e.POST("/loans/:loan_id/fund", func(c echo.Context) error {
		return c.JSON(http.StatusConflict, map[string]string{"error": "already funded"})
	})
	e.POST("/loans", func(c echo.Context) error {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "boom"})
	})

	serve := func(method, path string) {
		req := httptest.NewRequest(method, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
	}

	serve(http.MethodGet, "/loans/0")
	serve(http.MethodGet, "/loans/1")
	serve(http.MethodPost, "/loans/0/fund")
	serve(http.MethodPost, "/loans")

	cases := []struct {
		op      string
		outcome string
		want    float64
	}{
		{"GET /loans/:loan_id", "ok", 2},
		{"POST /loans/:loan_id/fund", "rejected", 1},
		{"POST /loans", "error", 1},
	}
	for _, tc := range cases {
		got := testutil.ToFloat64(m.LifecycleOps.WithLabelValues(tc.op, tc.outcome))
		if got != tc.want {
			t.Fatalf("counter %s/%s = %v, want %v", tc.op, tc.outcome, got, tc.want)
		}
	}
}
