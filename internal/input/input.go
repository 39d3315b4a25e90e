// Package input turns a raw terminal byte stream into per-frame key state.
package input

import (
	"bufio"
	"time"

	"github.com/tomz197/asteroids-arcade/internal/session"
)

// KeyHoldDuration is how long a key is considered "held" after its last press.
// Terminals never report key releases, so a held key is one whose auto-repeat
// keeps arriving.
const KeyHoldDuration = 120 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit   bool
	Left   bool
	Right  bool
	Up     bool
	Down   bool
	Fire   bool
	Enter  bool
	Escape bool
	Mute   bool // Pressed during this frame only; never held

	Closed  bool   // The byte source ended
	Pressed []byte // Raw bytes read this frame
}

// Intent maps the key state onto game intents.
func (in Input) Intent() session.Intent {
	return session.Intent{
		TurnLeft:      in.Left,
		TurnRight:     in.Right,
		ThrustForward: in.Up,
		ThrustBack:    in.Down,
		Fire:          in.Fire,
		Start:         in.Enter,
		Reset:         in.Escape,
	}
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit   time.Time
	left   time.Time
	right  time.Time
	up     time.Time
	down   time.Time
	fire   time.Time
	enter  time.Time
	escape time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 128)}
}

// ResetKeyInput forgets all held keys, so a key held across a screen change
// does not trigger the next screen.
func (s *Stream) ResetKeyInput() {
	s.state = keyState{}
}

// ReadInputAt drains all available bytes and evaluates held keys at now.
// Handles escape sequences for arrow keys and accumulates all pressed keys.
func ReadInputAt(s *Stream, now time.Time) Input {
	var buf []byte

	// Drain all available bytes
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				goto parse
			}
			buf = append(buf, b)
		default:
			goto parse
		}
	}

parse:
	mute := parse(&s.state, buf, now)

	// Keys are "pressed" if seen within hold duration
	held := func(t time.Time) bool { return now.Sub(t) < KeyHoldDuration }
	return Input{
		Quit:    held(s.state.quit) || s.closed,
		Left:    held(s.state.left),
		Right:   held(s.state.right),
		Up:      held(s.state.up),
		Down:    held(s.state.down),
		Fire:    held(s.state.fire),
		Enter:   held(s.state.enter),
		Escape:  held(s.state.escape),
		Mute:    mute,
		Closed:  s.closed,
		Pressed: buf,
	}
}

// parse updates the key state timestamps from buf and reports whether the
// mute key was pressed.
func parse(state *keyState, buf []byte, now time.Time) (mute bool) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				state.up = now
			case 'B':
				state.down = now
			case 'C':
				state.right = now
			case 'D':
				state.left = now
			}
			i += 2
			continue
		}

		if b == 'm' || b == 'M' {
			mute = true
			continue
		}
		applyByteToState(state, b, now)
	}
	return mute
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'i', 'I':
		state.up = now
	case 's', 'S', 'k', 'K':
		state.down = now
	case ' ':
		state.fire = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	}
}
