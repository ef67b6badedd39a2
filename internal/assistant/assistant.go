// Package assistant is the simulated voice assistant: it turns one recognized
// utterance into a canned answer, shows it for a while, and speaks it.
//
// Speech recognition and synthesis are ports so the logic runs without any
// audio device.
package assistant

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dyluth/axero/internal/clock"
)

// ErrUnsupported is returned by a Recognizer when no speech capability exists.
var ErrUnsupported = errors.New("speech recognition is not supported")

// ErrBusy is returned by Listen while another Listen is in progress.
var ErrBusy = errors.New("assistant is already listening")

const (
	UnsupportedMessage = "Sorry, your browser does not support voice recognition."
	RetryMessage       = "Sorry, I did not catch that. Please try again."

	UnsupportedDisplay = 3000 * time.Millisecond
	ErrorDisplay       = 2000 * time.Millisecond
	AnswerDisplay      = 3500 * time.Millisecond
)

// Recognizer yields one utterance per call, or an error. It should return
// promptly once ctx is done.
type Recognizer interface {
	Recognize(ctx context.Context) (string, error)
}

// Speaker reads text aloud. Cancel stops anything currently being spoken.
type Speaker interface {
	Cancel()
	Speak(text string) error
}

// Reply is the outcome of a successful Listen.
type Reply struct {
	Transcript string
	Answer     string
	Intent     Intent
}

// Options configures an Assistant.
type Options struct {
	// Speaker may be nil.
	Speaker Speaker

	// OnCommand is called with every recognized utterance.
	OnCommand func(transcript string, intent Intent)
}

// Assistant tracks the listening flag and the transient message shown to
// the user. It is safe for concurrent use.
type Assistant struct {
	clock      clock.Clock
	recognizer Recognizer
	speaker    Speaker
	onCommand  func(string, Intent)

	mu         sync.Mutex
	listening  bool
	message    string
	transcript string
	session    uint64 // bumped by Listen and Stop
	gen        uint64 // bumped whenever the pending dismissal changes
	dismiss    *clock.Timer
	cancel     context.CancelFunc
}

// New creates an assistant. A nil recognizer behaves like one that always
// returns ErrUnsupported.
func New(c clock.Clock, recognizer Recognizer, opts Options) *Assistant {
	return &Assistant{
		clock:      c,
		recognizer: recognizer,
		speaker:    opts.Speaker,
		onCommand:  opts.OnCommand,
	}
}

// Listen captures one utterance and answers it. It blocks until the
// recognizer returns.
//
// Unsupported capability and recognition errors are not returned: they become
// a transient message and Listen returns a zero Reply with a nil error. The
// error result is reserved for ErrBusy and for ctx or Stop cancelling the
// recognition.
func (a *Assistant) Listen(ctx context.Context) (Reply, error) {
	a.mu.Lock()
	if a.listening {
		a.mu.Unlock()
		return Reply{}, ErrBusy
	}
	a.listening = true
	a.session++
	session := a.session
	a.stopDismissLocked()
	a.message = ""
	a.transcript = ""
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.mu.Unlock()
	defer cancel()

	var transcript string
	err := ErrUnsupported
	if a.recognizer != nil {
		transcript, err = a.recognizer.Recognize(ctx)
	}

	if ctx.Err() != nil {
		a.mu.Lock()
		if a.session == session {
			a.listening = false
			a.cancel = nil
		}
		a.mu.Unlock()
		return Reply{}, ctx.Err()
	}

	switch {
	case errors.Is(err, ErrUnsupported):
		a.fail(session, UnsupportedMessage, UnsupportedDisplay)
		return Reply{}, nil
	case err != nil:
		a.fail(session, RetryMessage, ErrorDisplay)
		return Reply{}, nil
	}

	reply := Reply{
		Transcript: transcript,
		Answer:     Respond(transcript, a.clock.Now()),
		Intent:     DetectIntent(transcript),
	}

	a.mu.Lock()
	if a.session != session {
		a.mu.Unlock()
		return Reply{}, context.Canceled
	}
	a.cancel = nil
	a.transcript = transcript
	a.message = reply.Answer
	a.armDismissLocked(AnswerDisplay, true)
	a.mu.Unlock()

	if a.onCommand != nil {
		a.onCommand(reply.Transcript, reply.Intent)
	}
	if a.speaker != nil {
		a.speaker.Cancel()
		_ = a.speaker.Speak(reply.Answer)
	}

	return reply, nil
}

// Stop abandons an in-progress recognition. Returns false if not listening.
func (a *Assistant) Stop() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.listening {
		return false
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.session++
	a.stopDismissLocked()
	a.listening = false
	a.transcript = ""
	a.message = ""
	return true
}

// Listening reports whether the assistant is capturing or showing an answer.
func (a *Assistant) Listening() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.listening
}

// Message is the text currently shown to the user, or "".
func (a *Assistant) Message() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.message
}

// Transcript is the last recognized utterance while its answer is shown.
func (a *Assistant) Transcript() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.transcript
}

// Close cancels recognition and any pending dismissal.
func (a *Assistant) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.session++
	a.stopDismissLocked()
	a.listening = false
}

func (a *Assistant) fail(session uint64, message string, display time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session != session {
		return
	}
	a.cancel = nil
	a.listening = false
	a.transcript = ""
	a.message = message
	a.armDismissLocked(display, false)
}

// armDismissLocked clears the message after d unless something newer has
// replaced it. With resetListening the listening flag and transcript clear
// too.
func (a *Assistant) armDismissLocked(d time.Duration, resetListening bool) {
	a.stopDismissLocked()
	gen := a.gen
	a.dismiss = a.clock.AfterFunc(d, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.gen != gen {
			return
		}
		a.message = ""
		a.dismiss = nil
		if resetListening {
			a.transcript = ""
			a.listening = false
		}
	})
}

func (a *Assistant) stopDismissLocked() {
	a.gen++
	if a.dismiss != nil {
		a.dismiss.Stop()
		a.dismiss = nil
	}
}
