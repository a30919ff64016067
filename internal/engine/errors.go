package engine

import (
	"errors"
	"fmt"
)

// ErrOffTopic reports a message the relevance gate bounced. The session
// is untouched when this error surfaces.
var ErrOffTopic = errors.New("message is not about a software feature")

// ErrEmptyMessage reports a blank or whitespace-only message.
var ErrEmptyMessage = errors.New("message is empty")

// offTopic wraps ErrOffTopic with the gate's reasoning.
func offTopic(reasoning string) error {
	if reasoning == "" {
		return ErrOffTopic
	}
	return fmt.Errorf("%w: %s", ErrOffTopic, reasoning)
}
