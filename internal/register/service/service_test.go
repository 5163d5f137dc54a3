package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/ustwan/tzr-host-api-sub001/internal/register/models"
	"github.com/ustwan/tzr-host-api-sub001/internal/register/service"
	"github.com/ustwan/tzr-host-api-sub001/internal/sentinel"
	registermocks "github.com/ustwan/tzr-host-api-sub001/mocks/register"
	dErrors "github.com/ustwan/tzr-host-api-sub001/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite

	ctrl     *gomock.Controller
	users    *registermocks.MockUserStore
	verifier *registermocks.MockMembershipVerifier
	queue    *registermocks.MockOutboxQueue
	game     *registermocks.MockGameServerClient

	svc *service.Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.users = registermocks.NewMockUserStore(s.ctrl)
	s.verifier = registermocks.NewMockMembershipVerifier(s.ctrl)
	s.queue = registermocks.NewMockOutboxQueue(s.ctrl)
	s.game = registermocks.NewMockGameServerClient(s.ctrl)

	s.svc = service.New(s.users, s.verifier, s.queue, s.game)
}

func (s *ServiceSuite) command() *models.RegisterCommand {
	return &models.RegisterCommand{
		Login:      "warrior",
		Password:   "secret1",
		Gender:     1,
		TelegramID: 4242,
		Username:   "warrior_tg",
		RequestID:  "req-1",
		GameHost:   "game.local",
		GamePort:   5190,
	}
}

func (s *ServiceSuite) TestHappyPath() {
	cmd := s.command()
	ctx := context.Background()

	s.verifier.EXPECT().Allowed(gomock.Any(), int64(4242)).Return(true)
	s.users.EXPECT().CountByTelegramID(gomock.Any(), int64(4242)).Return(2, nil)
	s.users.EXPECT().IsLoginTaken(gomock.Any(), "warrior").Return(false, nil)

	var inserted *models.UserRecord
	s.users.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *models.UserRecord) error {
			inserted = rec
			return nil
		})

	// The legacy server receives the encoded token, never the raw password.
	s.game.EXPECT().
		RegisterUser(gomock.Any(), "game.local", 5190, "warrior",
			"FA4F160F6B9553CED9FC94B4C21331A355EF993F", 1).
		Return(nil)

	var queued any
	s.queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, item any) error {
			queued = item
			return nil
		})

	s.Require().NoError(s.svc.Execute(ctx, cmd))

	s.Require().NotNil(inserted)
	s.Equal("warrior", inserted.Login)
	s.Equal(int64(4242), inserted.TelegramID)
	s.Equal("warrior_tg", inserted.Username)
	s.False(inserted.CreatedAt.IsZero())

	ev, ok := queued.(models.RegistrationEvent)
	s.Require().True(ok)
	s.Equal("register", ev.Type)
	s.Equal("warrior", ev.Login)
	s.Equal(int64(4242), ev.ExternalID)
}

func (s *ServiceSuite) TestMembershipDenied() {
	s.verifier.EXPECT().Allowed(gomock.Any(), int64(4242)).Return(false)

	err := s.svc.Execute(context.Background(), s.command())

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotInGroup))
}

func (s *ServiceSuite) TestQuotaReached() {
	s.verifier.EXPECT().Allowed(gomock.Any(), gomock.Any()).Return(true)
	s.users.EXPECT().CountByTelegramID(gomock.Any(), int64(4242)).
		Return(models.MaxAccountsPerIdentity, nil)

	err := s.svc.Execute(context.Background(), s.command())

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeLimitExceeded))
}

func (s *ServiceSuite) TestQuotaCountFails() {
	s.verifier.EXPECT().Allowed(gomock.Any(), gomock.Any()).Return(true)
	s.users.EXPECT().CountByTelegramID(gomock.Any(), gomock.Any()).
		Return(0, errors.New("connection reset"))

	err := s.svc.Execute(context.Background(), s.command())

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeStorageUnavailable))
}

func (s *ServiceSuite) TestLoginTakenPreCheck() {
	s.verifier.EXPECT().Allowed(gomock.Any(), gomock.Any()).Return(true)
	s.users.EXPECT().CountByTelegramID(gomock.Any(), gomock.Any()).Return(0, nil)
	s.users.EXPECT().IsLoginTaken(gomock.Any(), "warrior").Return(true, nil)

	err := s.svc.Execute(context.Background(), s.command())

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeLoginTaken))
}

func (s *ServiceSuite) TestLoginTakenOnInsertRace() {
	// Pre-check passed but another request won the unique index.
	s.verifier.EXPECT().Allowed(gomock.Any(), gomock.Any()).Return(true)
	s.users.EXPECT().CountByTelegramID(gomock.Any(), gomock.Any()).Return(0, nil)
	s.users.EXPECT().IsLoginTaken(gomock.Any(), gomock.Any()).Return(false, nil)
	s.users.EXPECT().Insert(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("insert user: %w", sentinel.ErrAlreadyUsed))

	err := s.svc.Execute(context.Background(), s.command())

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeLoginTaken))
}

func (s *ServiceSuite) TestGameServerFailureKeepsRow() {
	s.verifier.EXPECT().Allowed(gomock.Any(), gomock.Any()).Return(true)
	s.users.EXPECT().CountByTelegramID(gomock.Any(), gomock.Any()).Return(0, nil)
	s.users.EXPECT().IsLoginTaken(gomock.Any(), gomock.Any()).Return(false, nil)
	s.users.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	s.game.EXPECT().RegisterUser(gomock.Any(), gomock.Any(), gomock.Any(),
		gomock.Any(), gomock.Any(), gomock.Any()).
		Return(dErrors.New(dErrors.CodeGameServerError, "<ERR t=\"bad login\"/>"))

	// No Enqueue expectation: fan-out must not run after a push failure.
	err := s.svc.Execute(context.Background(), s.command())

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeGameServerError))
}

func (s *ServiceSuite) TestQueueFailureSwallowed() {
	s.verifier.EXPECT().Allowed(gomock.Any(), gomock.Any()).Return(true)
	s.users.EXPECT().CountByTelegramID(gomock.Any(), gomock.Any()).Return(0, nil)
	s.users.EXPECT().IsLoginTaken(gomock.Any(), gomock.Any()).Return(false, nil)
	s.users.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	s.game.EXPECT().RegisterUser(gomock.Any(), gomock.Any(), gomock.Any(),
		gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).
		Return(errors.New("redis: connection refused"))

	s.NoError(s.svc.Execute(context.Background(), s.command()))
}

func (s *ServiceSuite) TestShapeValidation() {
	cases := []struct {
		name   string
		mutate func(*models.RegisterCommand)
		wantOK bool
	}{
		{"login min", func(c *models.RegisterCommand) { c.Login = "abc" }, true},
		{"login too short", func(c *models.RegisterCommand) { c.Login = "ab" }, false},
		{"login max", func(c *models.RegisterCommand) { c.Login = "abcdefghijklmnop" }, true},
		{"login too long", func(c *models.RegisterCommand) { c.Login = "abcdefghijklmnopq" }, false},
		{"password min", func(c *models.RegisterCommand) { c.Password = "123456" }, true},
		{"password too short", func(c *models.RegisterCommand) { c.Password = "12345" }, false},
		{"password max", func(c *models.RegisterCommand) { c.Password = "12345678901234567890" }, true},
		{"password too long", func(c *models.RegisterCommand) { c.Password = "123456789012345678901" }, false},
		{"gender zero", func(c *models.RegisterCommand) { c.Gender = 0 }, true},
		{"gender out of range", func(c *models.RegisterCommand) { c.Gender = 2 }, false},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			cmd := s.command()
			tc.mutate(cmd)

			if tc.wantOK {
				s.verifier.EXPECT().Allowed(gomock.Any(), gomock.Any()).Return(true)
				s.users.EXPECT().CountByTelegramID(gomock.Any(), gomock.Any()).Return(0, nil)
				s.users.EXPECT().IsLoginTaken(gomock.Any(), gomock.Any()).Return(false, nil)
				s.users.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				s.game.EXPECT().RegisterUser(gomock.Any(), gomock.Any(), gomock.Any(),
					gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				s.queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil)

				s.NoError(s.svc.Execute(context.Background(), cmd))
				return
			}

			err := s.svc.Execute(context.Background(), cmd)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
		})
	}
}

func (s *ServiceSuite) TestNilCommandRejected() {
	err := s.svc.Execute(context.Background(), nil)

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}
