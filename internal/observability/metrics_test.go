package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type spyWriter struct {
	http.ResponseWriter
	headerCalls int
}

func (s *spyWriter) WriteHeader(code int) {
	s.headerCalls++
	s.ResponseWriter.WriteHeader(code)
}

func TestRec_SecondWriteHeaderIsDropped(t *testing.T) {
	spy := &spyWriter{ResponseWriter: httptest.NewRecorder()}
	r := &rec{ResponseWriter: spy, code: http.StatusOK}

	r.WriteHeader(http.StatusServiceUnavailable)
	r.WriteHeader(http.StatusOK) // racing writer, e.g. a timeout handler

	assert.Equal(t, 1, spy.headerCalls, "only the first header write may reach the wire")
	assert.Equal(t, http.StatusServiceUnavailable, r.code)
}

func TestRec_WriteImpliesHeader(t *testing.T) {
	spy := &spyWriter{ResponseWriter: httptest.NewRecorder()}
	r := &rec{ResponseWriter: spy, code: http.StatusOK}

	_, err := r.Write([]byte("ok"))
	assert.NoError(t, err)

	r.WriteHeader(http.StatusNotFound)
	assert.Equal(t, 0, spy.headerCalls, "header after body must not be delegated")
	assert.Equal(t, http.StatusOK, r.code)
}

func TestMeasure_RecordsStatusCode(t *testing.T) {
	handler := Measure(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/status", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
}
