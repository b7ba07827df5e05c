package middleware

import (
	"io"
	"net/http"
	"strings"
)

// maxDrainBytes caps how much of an unread body is drained.
const maxDrainBytes = 256 << 10

// DrainAndCloseRequest drains what the handler left unread and closes the body.
// Websocket upgrades are left alone.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil || r.Body == http.NoBody {
				return
			}
			if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
				return
			}
			_, _ = io.CopyN(io.Discard, r.Body, maxDrainBytes)
			_ = r.Body.Close()
		})
	}
}
