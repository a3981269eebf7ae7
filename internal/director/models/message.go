package models

import "encoding/json"

type GameMessageType string

// Message is the websocket envelope. Data carries a JSON document as a string.
type Message struct {
	Type GameMessageType `json:"type"`
	Data string          `json:"data"`
}

// NewMessage marshals payload into a Message of the given type.
func NewMessage(t GameMessageType, payload any) (*Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{Type: t, Data: string(raw)}, nil
}

type ChooseCardJson struct {
	InstanceID string `json:"instanceId"`
}

type ErrorJson struct {
	Error string `json:"error"`
}

type RoundEndJson struct {
	Round int `json:"round"`
	Next  int `json:"next,omitempty"`
}
