package app

import (
	"encoding/json"
	"fmt"
)

// Signalling payloads travel as JSON strings inside socket.io events.
func encode(msg any) (string, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed encoding msg: %w", err)
	}
	return string(data), nil
}

func decode(msg string, target any) error {
	err := json.Unmarshal([]byte(msg), target)
	if err != nil {
		return fmt.Errorf("failed decoding msg: %w", err)
	}
	return nil
}
