package utils_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malexanderboyd/pwr9-botdr4ft/internal/director/utils"
)

func TestClientIDCookieRoundTrip(t *testing.T) {
	header := utils.ClientIDCookieHeader("game_3", "draft", time.Minute)
	require.Len(t, header.Values("Set-Cookie"), 1)

	resp := http.Response{Header: header}
	cookies := resp.Cookies()
	require.Len(t, cookies, 1)

	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.AddCookie(cookies[0])
	assert.Equal(t, "game_3", utils.ClientIDFromRequest(r, "draft"))
	assert.Empty(t, utils.ClientIDFromRequest(r, "other"))
}
