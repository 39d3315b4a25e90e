package input

import (
	"testing"
	"time"

	"github.com/tomz197/asteroids-arcade/internal/session"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func feed(s *Stream, data string) {
	for i := 0; i < len(data); i++ {
		s.ch <- data[i]
	}
}

func TestKeysMapToIntent(t *testing.T) {
	tests := []struct {
		name  string
		bytes string
		want  session.Intent
	}{
		{"wasd left", "a", session.Intent{TurnLeft: true}},
		{"vim right", "l", session.Intent{TurnRight: true}},
		{"thrust", "w", session.Intent{ThrustForward: true}},
		{"reverse", "s", session.Intent{ThrustBack: true}},
		{"arrow up", "\x1b[A", session.Intent{ThrustForward: true}},
		{"arrow down", "\x1b[B", session.Intent{ThrustBack: true}},
		{"arrow right", "\x1b[C", session.Intent{TurnRight: true}},
		{"arrow left", "\x1b[D", session.Intent{TurnLeft: true}},
		{"fire", " ", session.Intent{Fire: true}},
		{"enter", "\r", session.Intent{Start: true}},
		{"escape", "\x1b", session.Intent{Reset: true}},
		{"combo", "aw ", session.Intent{TurnLeft: true, ThrustForward: true, Fire: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStream()
			feed(s, tt.bytes)
			if got := ReadInputAt(s, t0).Intent(); got != tt.want {
				t.Errorf("intent = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestKeyHold(t *testing.T) {
	s := newStream()
	feed(s, "d")
	ReadInputAt(s, t0)

	if in := ReadInputAt(s, t0.Add(KeyHoldDuration/2)); !in.Right {
		t.Error("key should still be held")
	}
	if in := ReadInputAt(s, t0.Add(KeyHoldDuration)); in.Right {
		t.Error("key should be released after hold duration")
	}
}

func TestMuteIsEdgeTriggered(t *testing.T) {
	s := newStream()
	feed(s, "m")
	if in := ReadInputAt(s, t0); !in.Mute {
		t.Fatal("mute not reported")
	}
	if in := ReadInputAt(s, t0.Add(time.Millisecond)); in.Mute {
		t.Error("mute reported twice for one press")
	}
}

func TestResetKeyInput(t *testing.T) {
	s := newStream()
	feed(s, "\r")
	ReadInputAt(s, t0)
	s.ResetKeyInput()
	if in := ReadInputAt(s, t0.Add(time.Millisecond)); in.Enter {
		t.Error("enter survived reset")
	}
}

func TestClosedStreamQuits(t *testing.T) {
	s := newStream()
	feed(s, "w")
	close(s.ch)

	in := ReadInputAt(s, t0)
	if !in.Closed || !in.Quit || !in.Up {
		t.Errorf("input = %+v, want closed, quit and the buffered key", in)
	}
	// Later reads must not block or panic.
	if in := ReadInputAt(s, t0.Add(time.Second)); !in.Quit {
		t.Error("closed stream should keep quitting")
	}
}

func TestCtrlCQuits(t *testing.T) {
	s := newStream()
	feed(s, "\x03")
	if !ReadInputAt(s, t0).Quit {
		t.Error("ctrl+c should quit")
	}
}
