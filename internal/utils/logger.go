package utils

import (
	"log"
	"strings"
)

var logLineReplacer = strings.NewReplacer("\r", " ", "\n", " ")

// LogEvent prints one log line tagged with module, action and request id.
// Keep message to ids and counts; run addresses through MaskEmail.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, logLineReplacer.Replace(message))
}

// MaskEmail keeps the first rune of the local part and the domain:
// "ann@example.com" becomes "a***@example.com".
func MaskEmail(addr string) string {
	local, domain, ok := strings.Cut(strings.TrimSpace(addr), "@")
	if !ok || local == "" {
		return "***"
	}
	r := []rune(local)
	return string(r[0]) + "***@" + domain
}
