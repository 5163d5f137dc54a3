package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
)

type HealthSuite struct {
	suite.Suite
	handler *Handler
	router  http.Handler
}

func TestHealthSuite(t *testing.T) {
	suite.Run(t, new(HealthSuite))
}

func (s *HealthSuite) SetupTest() {
	s.handler = New("test")
	r := chi.NewRouter()
	s.handler.Register(r)
	s.router = r
}

func (s *HealthSuite) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (s *HealthSuite) TestLiveness() {
	rec := s.get("/health/live")

	s.Equal(http.StatusOK, rec.Code)

	var resp LivenessResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("ok", resp.Status)
	s.Equal("api-father", resp.Service)
}

func (s *HealthSuite) TestReadinessAllHealthy() {
	s.handler.RegisterCheck("database", func(context.Context) error { return nil })
	s.handler.RegisterCheck("redis", func(context.Context) error { return nil })

	rec := s.get("/health/ready")

	s.Equal(http.StatusOK, rec.Code)

	var resp ReadinessResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("ready", resp.Status)
	s.Equal("ok", resp.Checks["database"])
	s.Equal("ok", resp.Checks["redis"])
}

func (s *HealthSuite) TestReadinessFailingDependency() {
	s.handler.RegisterCheck("database", func(context.Context) error { return nil })
	s.handler.RegisterCheck("redis", func(context.Context) error {
		return errors.New("connection refused")
	})

	rec := s.get("/health/ready")

	s.Equal(http.StatusServiceUnavailable, rec.Code)

	var resp ReadinessResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("not_ready", resp.Status)
	s.Equal("ok", resp.Checks["database"])
	s.Equal("down: connection refused", resp.Checks["redis"])
}

func (s *HealthSuite) TestReadinessChecksRunUnderDeadline() {
	s.handler.RegisterCheck("database", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		s.True(ok, "each probe must carry its own deadline")
		return nil
	})

	s.Equal(http.StatusOK, s.get("/health/ready").Code)
}

func (s *HealthSuite) TestStatusReportsIdentity() {
	rec := s.get("/health")

	s.Equal(http.StatusOK, rec.Code)

	var resp StatusResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("ok", resp.Status)
	s.Equal("api-father", resp.Service)
	s.Equal("test", resp.Environment)
	s.NotEmpty(resp.Timestamp)
}
