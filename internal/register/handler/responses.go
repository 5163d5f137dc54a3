package handler

// RegisterResponse acknowledges a committed registration.
type RegisterResponse struct {
	OK        bool   `json:"ok"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}
