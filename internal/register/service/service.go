// Package service orchestrates the registration pipeline: membership gate,
// quota, login uniqueness, durable insert, legacy game-server push, and event
// fan-out.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ustwan/tzr-host-api-sub001/internal/register/audit"
	"github.com/ustwan/tzr-host-api-sub001/internal/register/gameserver"
	registermetrics "github.com/ustwan/tzr-host-api-sub001/internal/register/metrics"
	"github.com/ustwan/tzr-host-api-sub001/internal/register/models"
	"github.com/ustwan/tzr-host-api-sub001/internal/sentinel"
	dErrors "github.com/ustwan/tzr-host-api-sub001/pkg/domain-errors"
)

// Service runs the registration pipeline. Per-request state lives on the
// stack; the service itself holds only shared collaborators and is safe for
// concurrent use.
type Service struct {
	users    UserStore
	verifier MembershipVerifier
	queue    OutboxQueue
	game     GameServerClient

	logger  *slog.Logger
	metrics *registermetrics.Metrics
	auditor audit.Publisher
	tracer  trace.Tracer
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the Prometheus collectors.
func WithMetrics(m *registermetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithAuditPublisher sets the audit trail publisher.
func WithAuditPublisher(p audit.Publisher) Option {
	return func(s *Service) { s.auditor = p }
}

// New constructs the registration service.
func New(users UserStore, verifier MembershipVerifier, queue OutboxQueue, game GameServerClient, opts ...Option) *Service {
	s := &Service{
		users:    users,
		verifier: verifier,
		queue:    queue,
		game:     game,
		logger:   slog.Default(),
		auditor:  audit.Noop{},
		tracer:   otel.Tracer("apifather/register"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Execute runs the pipeline for one request.
//
// Step order is strict, each step gating the next:
// shape check, membership, quota, login pre-check, insert, game-server push,
// event fan-out. The insert is the point of no return: once the row is
// committed a later game-server failure does NOT roll it back. Deleting the
// row after a timeout would release the login while the legacy server may
// still accept the command, which is the worse failure mode; operators
// reconcile stragglers instead.
func (s *Service) Execute(ctx context.Context, cmd *models.RegisterCommand) error {
	if cmd == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}

	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "register.execute",
		trace.WithAttributes(attribute.Int64("telegram_id", cmd.TelegramID)))

	err := s.execute(ctx, cmd)

	outcome := "ok"
	if err != nil {
		outcome = string(dErrors.CodeOf(err))
		span.RecordError(err)
	}
	span.SetAttributes(attribute.String("outcome", outcome))
	span.End()

	if s.metrics != nil {
		s.metrics.RegistrationsTotal.WithLabelValues(outcome).Inc()
		s.metrics.RegisterDuration.Observe(time.Since(start).Seconds())
	}
	s.emitAudit(ctx, cmd, outcome)
	return err
}

func (s *Service) execute(ctx context.Context, cmd *models.RegisterCommand) error {
	if err := validateShape(cmd); err != nil {
		return err
	}

	if !s.verifier.Allowed(ctx, cmd.TelegramID) {
		return dErrors.New(dErrors.CodeNotInGroup, "identity is not in the required group")
	}

	count, err := s.users.CountByTelegramID(ctx, cmd.TelegramID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorageUnavailable, "count accounts")
	}
	if count >= models.MaxAccountsPerIdentity {
		return dErrors.New(dErrors.CodeLimitExceeded, "account limit reached for this identity")
	}

	taken, err := s.users.IsLoginTaken(ctx, cmd.Login)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorageUnavailable, "check login")
	}
	if taken {
		return dErrors.New(dErrors.CodeLoginTaken, "login already registered")
	}

	// Point of no return: the unique index arbitrates races the pre-check
	// missed.
	rec := &models.UserRecord{
		Login:      cmd.Login,
		TelegramID: cmd.TelegramID,
		Username:   cmd.Username,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.users.Insert(ctx, rec); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return dErrors.New(dErrors.CodeLoginTaken, "login already registered")
		}
		return dErrors.Wrap(err, dErrors.CodeStorageUnavailable, "insert user")
	}

	encoded, err := gameserver.EncodePassword(cmd.Password, gameserver.PasswordKey)
	if err != nil {
		// Unreachable after shape validation; surface as internal rather
		// than panic.
		return dErrors.Wrap(err, dErrors.CodeInternal, "encode password")
	}

	if s.metrics != nil {
		s.metrics.GameServerAttempts.Inc()
	}
	if err := s.game.RegisterUser(ctx, cmd.GameHost, cmd.GamePort, cmd.Login, encoded, cmd.Gender); err != nil {
		if s.metrics != nil {
			s.metrics.GameServerFailures.WithLabelValues(string(dErrors.CodeOf(err))).Inc()
		}
		s.logger.ErrorContext(ctx, "game server rejected registration; user row kept",
			"login", cmd.Login,
			"request_id", cmd.RequestID,
			"error", err,
		)
		return err
	}

	if err := s.queue.Enqueue(ctx, models.NewRegistrationEvent(cmd.Login, cmd.TelegramID)); err != nil {
		// Swallowed: the registration already succeeded end to end.
		if s.metrics != nil {
			s.metrics.QueueFailures.Inc()
		}
		s.logger.ErrorContext(ctx, "failed to enqueue registration event",
			"login", cmd.Login,
			"request_id", cmd.RequestID,
			"error", dErrors.Wrap(err, dErrors.CodeQueueUnavailable, "enqueue event"),
		)
	}

	s.logger.InfoContext(ctx, "user registered",
		"login", cmd.Login,
		"telegram_id", cmd.TelegramID,
		"request_id", cmd.RequestID,
	)
	return nil
}

func validateShape(cmd *models.RegisterCommand) error {
	if cmd == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if n := len(cmd.Login); n < models.LoginMinLen || n > models.LoginMaxLen {
		return dErrors.New(dErrors.CodeBadRequest,
			fmt.Sprintf("login must be %d-%d characters", models.LoginMinLen, models.LoginMaxLen))
	}
	if n := len(cmd.Password); n < models.PasswordMinLen || n > models.PasswordMaxLen {
		return dErrors.New(dErrors.CodeBadRequest,
			fmt.Sprintf("password must be %d-%d characters", models.PasswordMinLen, models.PasswordMaxLen))
	}
	if cmd.Gender != 0 && cmd.Gender != 1 {
		return dErrors.New(dErrors.CodeBadRequest, "gender must be 0 or 1")
	}
	return nil
}
