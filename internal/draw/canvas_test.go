package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestCanvasScalesLogicalCoordinates(t *testing.T) {
	// 10 columns x 5 rows terminal, logical 100x100 field: 10 sub-pixels tall.
	c := NewScaledCanvas(10, 5, 100, 100)
	c.SetFloat(0, 0)
	c.SetFloat(55, 85)

	var cells []rune
	var positions [][2]int
	c.EachCell(func(col, row int, ch rune) {
		cells = append(cells, ch)
		positions = append(positions, [2]int{col, row})
	})

	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d (%v)", len(cells), positions)
	}
	if positions[0] != [2]int{0, 0} || cells[0] != BlockUpperHalf {
		t.Errorf("first cell = %v %q, want (0,0) upper half", positions[0], cells[0])
	}
	if positions[1] != [2]int{6, 4} {
		t.Errorf("second cell = %v, want (6,4)", positions[1])
	}
}

func TestCanvasRenderOnlyWritesChanges(t *testing.T) {
	c := NewScaledCanvas(8, 4, 8, 8)

	var buf bytes.Buffer
	c.SetFloat(1, 1)
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	first := buf.String()
	if !strings.Contains(first, string(BlockLowerHalf)) {
		t.Fatalf("first render %q missing pixel", first)
	}

	buf.Reset()
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("unchanged frame wrote %q", buf.String())
	}

	// Clearing the pixel must blank the cell that was drawn.
	c.Clear()
	buf.Reset()
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "\033[1;2H " {
		t.Errorf("clear render = %q, want blanking of cell 1;2", buf.String())
	}
}

func TestCanvasInvalidateRewritesCells(t *testing.T) {
	c := NewScaledCanvas(8, 4, 8, 8)
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}

	c.Invalidate(2, 1, 3)
	buf.Reset()
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "H "); got != 3 {
		t.Errorf("invalidated render wrote %d blanks, want 3 (%q)", got, buf.String())
	}
}

func TestCanvasResize(t *testing.T) {
	c := NewScaledCanvas(8, 4, 8, 8)
	if c.Resize(8, 4) {
		t.Error("same size should not report a change")
	}
	if !c.Resize(16, 8) {
		t.Error("new size should report a change")
	}
	if c.TerminalWidth() != 16 || c.TerminalHeight() != 8 {
		t.Errorf("size = %dx%d", c.TerminalWidth(), c.TerminalHeight())
	}
	if c.Resize(0, 3) {
		t.Error("invalid size should be ignored")
	}
}

func TestCanvasDrawCircle(t *testing.T) {
	c := NewScaledCanvas(40, 20, 40, 40)
	c.DrawCircle(20, 20, 10, 16)

	n := 0
	c.EachCell(func(col, row int, ch rune) {
		n++
		if col < 9 || col > 31 || row < 4 || row > 15 {
			t.Errorf("cell (%d,%d) far outside circle bounds", col, row)
		}
	})
	if n == 0 {
		t.Fatal("circle drew nothing")
	}
	// Center stays empty for an outline.
	c2 := 0
	c.EachCell(func(col, row int, ch rune) {
		if col == 20 && row == 10 {
			c2++
		}
	})
	if c2 != 0 {
		t.Error("outline should not fill the center")
	}
}

func TestChunkWriter(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out)
	cw.WriteAt(3, 2, "hi")
	cw.WriteAt(0, 0, "x")
	if out.Len() != 0 {
		t.Fatal("nothing should be written before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "\033[2;3Hhi\033[1;1Hx" {
		t.Errorf("output = %q", got)
	}
	if cw.Len() != 0 {
		t.Error("buffer should be empty after Flush")
	}
}
