package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
)

// respondWithError writes the error envelope shared with the handlers
func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   http.StatusText(code),
		"message": message,
	})
}

// getIP gets the client IP address from the request. Forwarding headers are
// set by the client unless a proxy rewrites them, so they are read only when
// trustProxy is set. The proxy appends the peer it saw, which makes the last
// X-Forwarded-For entry the one to use.
func getIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			last := forwarded[strings.LastIndex(forwarded, ",")+1:]
			if ip := strings.TrimSpace(last); ip != "" {
				return ip
			}
		}
		if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
			return realIP
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
