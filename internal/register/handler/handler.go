// Package handler exposes the registration pipeline over HTTP. The /internal
// prefix is deliberate: the listener is reachable only from the private
// network, so there is no auth layer here.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ustwan/tzr-host-api-sub001/internal/register/models"
	"github.com/ustwan/tzr-host-api-sub001/pkg/platform/httputil"
	request "github.com/ustwan/tzr-host-api-sub001/pkg/platform/middleware/request"
)

// Service runs the registration pipeline for one validated command.
type Service interface {
	Execute(ctx context.Context, cmd *models.RegisterCommand) error
}

// GameEndpoint is the legacy game-server address handed to every command.
type GameEndpoint struct {
	Host string
	Port int
}

type Handler struct {
	service Service
	game    GameEndpoint
	logger  *slog.Logger
}

func New(service Service, game GameEndpoint, logger *slog.Logger) *Handler {
	return &Handler{service: service, game: game, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/internal/register", h.HandleRegister)
}

// HandleRegister registers a game account for a Telegram identity.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if req.RequestID != "" {
		requestID = req.RequestID
	}

	cmd := &models.RegisterCommand{
		Login:      req.Login,
		Password:   req.Password,
		Gender:     *req.Gender,
		TelegramID: req.TelegramID,
		Username:   req.Username,
		RequestID:  requestID,
		GameHost:   h.game.Host,
		GamePort:   h.game.Port,
	}

	if err := h.service.Execute(ctx, cmd); err != nil {
		h.logger.ErrorContext(ctx, "registration failed",
			"error", err,
			"request_id", requestID,
			"login", req.Login,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &RegisterResponse{
		OK:        true,
		Message:   "user registered",
		RequestID: requestID,
	})
}
