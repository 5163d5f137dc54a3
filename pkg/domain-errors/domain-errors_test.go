package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the domain error primitives.
//
// These are the error primitives every pipeline stage reports through, so the
// invariants "wrapped domain errors preserve the original code" and
// "errors.Is matches by code" need pinning.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeLoginTaken, Message: "login already registered"}
		s.Equal("login already registered", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeLimitExceeded}
		s.Equal("limit_exceeded", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	inner := errors.New("connection refused")
	err := Wrap(inner, CodeGameServerUnreachable, "dial game server")
	s.ErrorIs(err, inner)
}

func (s *DomainErrorsSuite) TestIsMatchesByCode() {
	err := New(CodeNotInGroup, "membership denied")
	s.ErrorIs(err, &Error{Code: CodeNotInGroup})
	s.NotErrorIs(err, &Error{Code: CodeLoginTaken})
}

func (s *DomainErrorsSuite) TestWrapPreservesExistingCode() {
	base := New(CodeStorageUnavailable, "insert user")
	wrapped := Wrap(fmt.Errorf("tx: %w", base), CodeInternal, "register")

	s.True(HasCode(wrapped, CodeStorageUnavailable))
	s.False(HasCode(wrapped, CodeInternal))
}

func (s *DomainErrorsSuite) TestCodeOf() {
	s.Equal(CodeGameServerError, CodeOf(New(CodeGameServerError, "<ERR/>")))
	s.Equal(CodeInternal, CodeOf(errors.New("plain")))
	s.Equal(CodeInternal, CodeOf(nil))
}

func (s *DomainErrorsSuite) TestHasCodeNonDomainError() {
	s.False(HasCode(errors.New("plain"), CodeLoginTaken))
}
