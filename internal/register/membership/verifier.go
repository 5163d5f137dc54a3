// Package membership gates registration on Telegram group membership.
//
// The check is a capability: when no bot token or group id is configured the
// no-op verifier admits everyone. The HTTP verifier fails open on transport
// and decode errors so a third-party outage never blocks registrations;
// availability is deliberately preferred over strictness here.
package membership

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultTimeout = 5 * time.Second

// allowedStatuses are the chat-member states that count as group membership.
var allowedStatuses = map[string]bool{
	"member":        true,
	"administrator": true,
	"creator":       true,
}

// Verifier answers whether an external identity may register.
type Verifier interface {
	Allowed(ctx context.Context, telegramID int64) bool
}

// Noop admits every identity. Used when the membership check is not
// configured.
type Noop struct{}

// Allowed always returns true.
func (Noop) Allowed(context.Context, int64) bool { return true }

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TelegramVerifier checks group membership through the Bot API's
// getChatMember method.
type TelegramVerifier struct {
	baseURL string
	groupID int64
	client  HTTPDoer
	logger  *slog.Logger
}

// Config configures the Telegram verifier.
type Config struct {
	BotToken string
	GroupID  int64
	// BaseURL overrides the Bot API endpoint, mainly for tests. When empty
	// the public endpoint for the configured token is used.
	BaseURL    string
	HTTPClient HTTPDoer
	Logger     *slog.Logger
}

// NewTelegram constructs a Telegram-backed membership verifier.
func NewTelegram(cfg Config) *TelegramVerifier {
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.telegram.org/bot" + cfg.BotToken
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &TelegramVerifier{
		baseURL: base,
		groupID: cfg.GroupID,
		client:  client,
		logger:  logger,
	}
}

type chatMemberResponse struct {
	OK     bool `json:"ok"`
	Result struct {
		Status string `json:"status"`
	} `json:"result"`
}

// Allowed reports whether the identity is a member of the required group.
func (v *TelegramVerifier) Allowed(ctx context.Context, telegramID int64) bool {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/getChatMember?%s", v.baseURL, url.Values{
		"chat_id": {strconv.FormatInt(v.groupID, 10)},
		"user_id": {strconv.FormatInt(telegramID, 10)},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		v.failOpen(ctx, telegramID, err)
		return true
	}

	resp, err := v.client.Do(req)
	if err != nil {
		v.failOpen(ctx, telegramID, err)
		return true
	}
	defer resp.Body.Close() //nolint:errcheck // response fully consumed

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		v.failOpen(ctx, telegramID, err)
		return true
	}

	if resp.StatusCode != http.StatusOK {
		v.failOpen(ctx, telegramID, fmt.Errorf("unexpected status %d", resp.StatusCode))
		return true
	}

	var decoded chatMemberResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		v.failOpen(ctx, telegramID, err)
		return true
	}

	return decoded.OK && allowedStatuses[decoded.Result.Status]
}

func (v *TelegramVerifier) failOpen(ctx context.Context, telegramID int64, err error) {
	v.logger.WarnContext(ctx, "membership check failed open",
		"telegram_id", telegramID,
		"error", err,
	)
}
