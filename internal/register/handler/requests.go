package handler

import (
	dErrors "github.com/ustwan/tzr-host-api-sub001/pkg/domain-errors"
	request "github.com/ustwan/tzr-host-api-sub001/pkg/platform/middleware/request"
	strutil "github.com/ustwan/tzr-host-api-sub001/pkg/string"
	"github.com/ustwan/tzr-host-api-sub001/pkg/validation"
)

// RegisterRequest is the internal registration payload. Callers are trusted
// services (the Telegram bot), so the surface stays small: credentials plus
// the external identity they belong to. Length bounds live in the pipeline,
// next to the legacy-server constraints they mirror.
type RegisterRequest struct {
	Login      string `json:"login" validate:"required,notblank"`
	Password   string `json:"password" validate:"required"`
	Gender     *int   `json:"gender" validate:"required,oneof=0 1"`
	TelegramID int64  `json:"telegram_id" validate:"required"`
	Username   string `json:"username,omitempty"`

	// RequestID optionally carries the caller's correlation id; when valid
	// it is echoed back instead of the middleware-generated one.
	RequestID string `json:"Request-Id,omitempty"`
}

func (r *RegisterRequest) Normalize() {
	if r == nil {
		return
	}
	strutil.TrimStrings(&r.Login, &r.Username, &r.RequestID)
	// Passwords are taken verbatim: interior whitespace is stripped by the
	// credential encoder, not the transport.
}

func (r *RegisterRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if err := validation.Validate(r); err != nil {
		return err
	}
	if r.RequestID != "" && !request.IsValidRequestID(r.RequestID) {
		return dErrors.New(dErrors.CodeValidation, "Request-Id is malformed")
	}
	return nil
}
