package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/v1/applications/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/v1/applications/:id", "204"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/applications/42", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/v1/applications/:id", "204"))
	assert.Equal(t, before+1, after)
}

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(statusTransitions.WithLabelValues("pending", "reviewing"))
	RecordStatusTransition("pending", "reviewing")
	assert.Equal(t, before+1, testutil.ToFloat64(statusTransitions.WithLabelValues("pending", "reviewing")))

	resolved := testutil.ToFloat64(technologiesCreated)
	RecordTechnologiesResolved(0)
	RecordTechnologiesResolved(2)
	assert.Equal(t, resolved+2, testutil.ToFloat64(technologiesCreated))
}

func TestHandlerExposesRegistry(t *testing.T) {
	RecordApplicationCreated()
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "job_board_applications_created_total"))
}
