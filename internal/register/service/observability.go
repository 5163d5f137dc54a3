package service

import (
	"context"

	"github.com/ustwan/tzr-host-api-sub001/internal/register/audit"
	"github.com/ustwan/tzr-host-api-sub001/internal/register/models"
	"github.com/ustwan/tzr-host-api-sub001/pkg/platform/middleware/metadata"
	"github.com/ustwan/tzr-host-api-sub001/pkg/requestcontext"
)

// emitAudit records the pipeline outcome, enriched with client metadata the
// middleware stashed in the context. Best-effort by contract.
func (s *Service) emitAudit(ctx context.Context, cmd *models.RegisterCommand, outcome string) {
	if s.auditor == nil || cmd == nil {
		return
	}
	device := metadata.ParseDevice(requestcontext.UserAgent(ctx))
	s.auditor.Emit(ctx, audit.Record{
		Event:      "registration",
		Outcome:    outcome,
		Login:      cmd.Login,
		TelegramID: cmd.TelegramID,
		RequestID:  cmd.RequestID,
		ClientIP:   requestcontext.ClientIP(ctx),
		DeviceOS:   device.OS,
	})
}
