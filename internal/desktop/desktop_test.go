package desktop

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/asteroids-arcade/internal/object"
	"github.com/tomz197/asteroids-arcade/internal/session"
)

func TestIntentFromKeys(t *testing.T) {
	tests := []struct {
		name string
		keys []ebiten.Key
		want session.Intent
	}{
		{"none", nil, session.Intent{}},
		{"arrows", []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyArrowUp}, session.Intent{TurnLeft: true, ThrustForward: true}},
		{"wasd", []ebiten.Key{ebiten.KeyD, ebiten.KeyS}, session.Intent{TurnRight: true, ThrustBack: true}},
		{"buttons", []ebiten.Key{ebiten.KeySpace, ebiten.KeyEnter, ebiten.KeyEscape}, session.Intent{Fire: true, Start: true, Reset: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			down := map[ebiten.Key]bool{}
			for _, k := range tt.keys {
				down[k] = true
			}
			got := intentFromKeys(func(k ebiten.Key) bool { return down[k] })
			if got != tt.want {
				t.Errorf("intent = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestShipPoints(t *testing.T) {
	pts := shipPoints(object.Ship{X: 100, Y: 100})
	if math.Abs(float64(pts[0][0])-115) > 1e-4 || math.Abs(float64(pts[0][1])-100) > 1e-4 {
		t.Errorf("nose = %v, want (115,100)", pts[0])
	}
	// Wings are mirrored across the heading.
	if math.Abs(float64(pts[1][1]-100)+float64(pts[2][1]-100)) > 1e-4 {
		t.Errorf("wings not symmetric: %v %v", pts[1], pts[2])
	}
}

func TestFadeColor(t *testing.T) {
	if c := fadeColor(1); c.A != 255 {
		t.Errorf("alpha = %d, want 255", c.A)
	}
	if c := fadeColor(-1); c.A != 0 {
		t.Errorf("alpha = %d, want 0", c.A)
	}
}

func TestLayoutKeepsFieldSize(t *testing.T) {
	sess := session.New(session.Options{Field: object.NewField(640, 480)})
	defer sess.Close()
	g := New(sess, Options{})
	if w, h := g.Layout(1920, 1080); w != 640 || h != 480 {
		t.Errorf("layout = %dx%d, want 640x480", w, h)
	}
}
