package protocol

// Tool execution statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the fixed JSON response returned by every tool.
type Envelope struct {
	// Status is either StatusSuccess or StatusError.
	Status string `json:"status"`
	// Data carries the tool payload; null on error.
	Data any `json:"data"`
	// Message is a human-readable failure description, absent on success.
	Message string `json:"message,omitempty"`
}

// Success wraps data into a success envelope. A nil payload becomes an empty object.
func Success(data any) Envelope {
	if data == nil {
		data = map[string]any{}
	}
	return Envelope{Status: StatusSuccess, Data: data}
}

// Error builds an error envelope with the given message.
func Error(message string) Envelope {
	if message == "" {
		message = "unknown error"
	}
	return Envelope{Status: StatusError, Message: message}
}

// IsError reports whether the envelope carries a failure.
func (e Envelope) IsError() bool {
	return e.Status == StatusError
}

// ServerInfo is the payload of get_server_info.
type ServerInfo struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Tools       []string `json:"tools"`
}

// ConnectionSummary is the payload of test_sdk_connection.
type ConnectionSummary struct {
	APIAccessible  bool `json:"api_accessible"`
	WatchlistItems int  `json:"watchlist_items"`
}
