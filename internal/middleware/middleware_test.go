package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/token"
)

const secret = "middleware-secret"

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthAndRequireRole(t *testing.T) {
	customerToken, err := token.NewToken(context.Background(), secret, uuid.New(), token.RoleCustomer, time.Now())
	require.NoError(t, err)
	vendorToken, err := token.NewToken(context.Background(), secret, uuid.New(), token.RoleVendor, time.Now())
	require.NoError(t, err)

	handler := Auth(secret)(RequireRole(token.RoleVendor)(okHandler()))

	testCases := []struct {
		name          string
		authorization string
		expected      int
	}{
		{name: "missing header", authorization: "", expected: http.StatusUnauthorized},
		{name: "malformed header", authorization: "Token abc", expected: http.StatusUnauthorized},
		{name: "invalid token", authorization: "Bearer abc", expected: http.StatusUnauthorized},
		{name: "wrong role", authorization: "Bearer " + customerToken, expected: http.StatusForbidden},
		{name: "allowed role", authorization: "bearer " + vendorToken, expected: http.StatusNoContent},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/vendors/order-items", nil)
			if tt.authorization != "" {
				r.Header.Set(inHttp.HeaderAuthorization, tt.authorization)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestLoggingAttachesRequestID(t *testing.T) {
	var got string
	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = log.RequestIDFromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/carts", nil)
	r.Header.Set(inHttp.HeaderRequestID, "request-42")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, "request-42", got)
	assert.Equal(t, "request-42", w.Header().Get(inHttp.HeaderRequestID))
}

func TestRecoverPanic(t *testing.T) {
	handler := RecoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestServerMetricsMiddleware(t *testing.T) {
	metrics := NewServerMetrics("test", prometheus.NewRegistry())

	router := mux.NewRouter()
	router.Use(metrics.Middleware)
	router.Handle("/carts/items/{cartItemId}", okHandler()).Methods(http.MethodDelete)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/carts/items/1", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	count := testutil.ToFloat64(
		metrics.Requests.WithLabelValues("/carts/items/{cartItemId}", http.MethodDelete, "204"),
	)
	assert.Equal(t, float64(1), count)
}
