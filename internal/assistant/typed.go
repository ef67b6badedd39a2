package assistant

import (
	"context"
	"errors"
	"strings"
)

// ErrNothingHeard is returned for a blank typed utterance.
var ErrNothingHeard = errors.New("nothing heard")

// Text recognizes one fixed utterance. It is the terminal stand-in for a
// single spoken command.
type Text string

// Recognize returns the text, or ErrNothingHeard if it is blank.
func (t Text) Recognize(context.Context) (string, error) {
	if strings.TrimSpace(string(t)) == "" {
		return "", ErrNothingHeard
	}
	return string(t), nil
}

// Typed is a Recognizer fed by lines typed at a prompt. Each submitted line
// is consumed by exactly one Recognize call.
type Typed struct {
	lines chan string
}

// NewTyped returns an empty prompt recognizer.
func NewTyped() *Typed {
	return &Typed{lines: make(chan string, 1)}
}

// Submit queues line for the next Recognize. It reports false if a line is
// already waiting.
func (t *Typed) Submit(line string) bool {
	select {
	case t.lines <- line:
		return true
	default:
		return false
	}
}

// Recognize waits for a submitted line.
func (t *Typed) Recognize(ctx context.Context) (string, error) {
	select {
	case line := <-t.lines:
		return Text(line).Recognize(ctx)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
