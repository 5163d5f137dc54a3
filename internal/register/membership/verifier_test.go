package membership

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"
)

type VerifierSuite struct {
	suite.Suite
	ctx context.Context
}

func TestVerifierSuite(t *testing.T) {
	suite.Run(t, new(VerifierSuite))
}

func (s *VerifierSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *VerifierSuite) newVerifier(baseURL string) *TelegramVerifier {
	return NewTelegram(Config{
		BotToken: "token",
		GroupID:  -100123,
		BaseURL:  baseURL,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func (s *VerifierSuite) serve(status int, body string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/getChatMember", r.URL.Path)
		s.Equal("-100123", r.URL.Query().Get("chat_id"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	s.T().Cleanup(srv.Close)
	return srv
}

func (s *VerifierSuite) TestMemberStatusesAllowed() {
	for _, status := range []string{"member", "administrator", "creator"} {
		srv := s.serve(http.StatusOK, `{"ok":true,"result":{"status":"`+status+`"}}`)
		s.True(s.newVerifier(srv.URL).Allowed(s.ctx, 42), "status %q", status)
	}
}

func (s *VerifierSuite) TestLeftStatusDenied() {
	srv := s.serve(http.StatusOK, `{"ok":true,"result":{"status":"left"}}`)
	s.False(s.newVerifier(srv.URL).Allowed(s.ctx, 42))
}

func (s *VerifierSuite) TestNotOKPayloadDenied() {
	srv := s.serve(http.StatusOK, `{"ok":false}`)
	s.False(s.newVerifier(srv.URL).Allowed(s.ctx, 42))
}

func (s *VerifierSuite) TestMalformedPayloadFailsOpen() {
	srv := s.serve(http.StatusOK, `not json`)
	s.True(s.newVerifier(srv.URL).Allowed(s.ctx, 42))
}

func (s *VerifierSuite) TestNon200FailsOpen() {
	srv := s.serve(http.StatusBadGateway, ``)
	s.True(s.newVerifier(srv.URL).Allowed(s.ctx, 42))
}

func (s *VerifierSuite) TestUnreachableEndpointFailsOpen() {
	srv := s.serve(http.StatusOK, `{}`)
	url := srv.URL
	srv.Close()

	s.True(s.newVerifier(url).Allowed(s.ctx, 42))
}

func (s *VerifierSuite) TestUserIDForwarded() {
	var gotUser atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser.Store(r.URL.Query().Get("user_id"))
		_, _ = w.Write([]byte(`{"ok":true,"result":{"status":"member"}}`))
	}))
	s.T().Cleanup(srv.Close)

	s.True(s.newVerifier(srv.URL).Allowed(s.ctx, 777))
	s.Equal("777", gotUser.Load())
}

func (s *VerifierSuite) TestNoopAdmitsEveryone() {
	s.True(Noop{}.Allowed(s.ctx, 1))
}
