package catalog

import (
	"strings"

	"media-sync/core/reconcile"

	"github.com/goccy/go-json"
)

// Gateway error kinds, shared with the reconcile engine.
var (
	ErrNotFound  = reconcile.ErrNotFound
	ErrTransport = reconcile.ErrTransport
	ErrRejected  = reconcile.ErrRejected
)

const maxMessageLen = 300

// upstreamMessage extracts a readable message from an *arr error body.
// Validation failures come back as an array of {propertyName, errorMessage}.
func upstreamMessage(body []byte) string {
	var failures []struct {
		ErrorMessage string `json:"errorMessage"`
	}
	if err := json.Unmarshal(body, &failures); err == nil {
		msgs := make([]string, 0, len(failures))
		for _, f := range failures {
			if f.ErrorMessage != "" {
				msgs = append(msgs, f.ErrorMessage)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}

	var single struct {
		Message      string `json:"message"`
		ErrorMessage string `json:"errorMessage"`
	}
	if err := json.Unmarshal(body, &single); err == nil {
		if single.ErrorMessage != "" {
			return single.ErrorMessage
		}
		if single.Message != "" {
			return single.Message
		}
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > maxMessageLen {
		msg = msg[:maxMessageLen]
	}
	return msg
}
