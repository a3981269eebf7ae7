package director

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malexanderboyd/pwr9-botdr4ft/internal/director/models"
)

func TestClientRateLimitRepliesWithError(t *testing.T) {
	d := NewGameDirector(Options{GameId: "limits", MessageRate: 0.001, MessageBurst: 2})
	c, err := NewClient(d, "")
	require.NoError(t, err)

	assert.True(t, c.admit())
	assert.True(t, c.admit())
	assert.Empty(t, drain(c))

	assert.False(t, c.admit())
	msg := lastOf(drain(c), models.ErrorMessage)
	assert.Equal(t, errRateLimited.Error(), decode[models.ErrorJson](t, msg).Error)
}

func TestClientUnlimitedWithoutRate(t *testing.T) {
	d := NewGameDirector(Options{GameId: "free"})
	c, err := NewClient(d, "")
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		require.True(t, c.admit())
	}
}
