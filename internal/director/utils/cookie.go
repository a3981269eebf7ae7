package utils

import (
	"net/http"
	"time"
)

// ClientIDCookieHeader builds the Set-Cookie header handed to the websocket upgrader so a
// reconnecting browser presents the same client id.
func ClientIDCookieHeader(clientID, cookieName string, ttl time.Duration) http.Header {
	header := http.Header{}
	c := &http.Cookie{
		Name:     cookieName,
		Value:    clientID,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if v := c.String(); v != "" {
		header.Add("Set-Cookie", v)
	}
	return header
}

// ClientIDFromRequest returns the client id cookie value, or "" when absent.
func ClientIDFromRequest(r *http.Request, cookieName string) string {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
