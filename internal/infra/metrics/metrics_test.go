package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveOperation_IncrementsCounter(t *testing.T) {
	before := testutil.ToFloat64(UserOperationsTotal.WithLabelValues("create", OutcomeSuccess))

	ObserveOperation("create", OutcomeSuccess, time.Now())

	after := testutil.ToFloat64(UserOperationsTotal.WithLabelValues("create", OutcomeSuccess))
	assert.InDelta(t, before+1, after, 0.0001)
}

func TestHandler_ExposesNamespace(t *testing.T) {
	ObserveOperation("count", OutcomeSuccess, time.Now())

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "userhub_user_operations_total")
}
