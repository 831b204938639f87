package metrics

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	r := mux.NewRouter()
	r.Use(Middleware)
	r.HandleFunc("/api/menu/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}).Methods(http.MethodDelete)

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodDelete, "/api/menu/{id}", "202"))

	for _, id := range []string{"7", "8"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/menu/"+id, nil))
		assert.Equal(t, http.StatusAccepted, rec.Code)
	}

	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodDelete, "/api/menu/{id}", "202"))
	assert.Equal(t, before+2, after)
	assert.Equal(t, 0.0, testutil.ToFloat64(httpInFlight))
}

func TestInstrumentCountsUnmatchedRequests(t *testing.T) {
	r := mux.NewRouter()
	Instrument(r)
	r.HandleFunc("/api/menu", func(w http.ResponseWriter, r *http.Request) {}).Methods(http.MethodGet)

	testCases := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{name: "method_not_allowed", method: http.MethodPatch, path: "/api/menu", status: http.StatusMethodNotAllowed},
		{name: "not_found", method: http.MethodGet, path: "/api/nope", status: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			counter := httpRequests.WithLabelValues(tc.method, "unmatched", strconv.Itoa(tc.status))
			before := testutil.ToFloat64(counter)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	httpRequests.WithLabelValues(http.MethodGet, "/api/menu", "200").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cafe_http_requests_total")
}
