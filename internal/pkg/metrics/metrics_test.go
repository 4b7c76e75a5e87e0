package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/courses/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/courses/"+id, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/courses/{id}", "404")))
}

func TestDomainCounters(t *testing.T) {
	m := New()
	m.CourseCreated()
	m.CompletionToggled(true)
	m.CompletionToggled(true)
	m.CompletionToggled(false)
	m.RequestHandled("employee", "approved")
	m.EmailSent(nil)
	m.EmailSent(errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CoursesCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CompletionToggle.WithLabelValues("completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CompletionToggle.WithLabelValues("uncompleted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsHandled.WithLabelValues("employee", "approved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmailsSent.WithLabelValues("failed")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CourseCreated()
		m.CompletionToggled(true)
		m.RequestHandled("manager", "rejected")
		m.EmailSent(nil)
	})
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.CourseCreated()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "lgd_courses_created_total 1")
}
