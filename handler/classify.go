package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/potix/lingoproxy/bridge"
	"github.com/potix/lingoproxy/translator"
)

const (
	validationErrorMessage = "Missing text or target_locale"
	authErrorMessage       = "Invalid API key. Please get a valid API key from https://lingo.dev and set it as LINGO_API_KEY environment variable."
)

// Matched case-insensitively against the extracted failure message.
var authMarkers = []string{"credentials", "invalid", "401", "403"}

// extractMessage returns the "message" field of a JSON failure text, or the
// text itself.
func extractMessage(raw string) string {
	if !strings.HasPrefix(raw, "{") || !strings.Contains(raw, "message") {
		return raw
	}
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return raw
	}
	msg, ok := payload["message"].(string)
	if !ok {
		return raw
	}
	return msg
}

func isAuthMessage(msg string) bool {
	lower := strings.ToLower(msg)
	for _, marker := range authMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// classifyError maps a translation failure to a response status and the
// message shown to the caller.
func classifyError(err error) (int, string) {
	var panicErr *bridge.PanicError
	if errors.As(err, &panicErr) {
		log.Printf("server error: %v\n%s", panicErr.Value, panicErr.Stack)
		return http.StatusInternalServerError, panicErr.Error()
	}
	msg := extractMessage(err.Error())
	if utf8.ValidString(msg) {
		log.Printf("translation error: %v", msg)
	} else {
		log.Printf("translation error: invalid credentials or api error")
	}
	var authErr *translator.AuthError
	if errors.As(err, &authErr) || isAuthMessage(msg) {
		return http.StatusUnauthorized, authErrorMessage
	}
	return http.StatusInternalServerError, msg
}
