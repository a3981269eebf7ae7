package models

import (
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/card"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/draft"
)

// PickHint is the bot's pre-jitter opinion of one card in the host's pack.
type PickHint struct {
	InstanceID string  `json:"instanceId"`
	Score      float64 `json:"score"`
}

// CardPack is the round_content payload.
type CardPack struct {
	SetName   string          `json:"setName"`
	Round     int             `json:"round"`
	Pick      int             `json:"pick"`
	Direction draft.Direction `json:"direction"`
	Pack      []card.Card     `json:"pack"`
	Hints     []PickHint      `json:"hints,omitempty"`
}
