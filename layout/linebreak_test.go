package layout

import (
	"testing"

	"github.com/saka1/mlux/rich"
)

// fixedMetrics is a monospace stand-in: every rune is 10pt wide, every
// line is 14pt tall, mirroring edwoodtest.NewFont(10, 14)'s fixed-width
// mock font.
type fixedMetrics struct{}

func (fixedMetrics) Advance(text string, style rich.Style) float64 {
	return float64(len([]rune(text))) * 10
}

func (fixedMetrics) LineHeight(style rich.Style) float64 {
	return 14
}

func boxesToStrings(lines []Line) []string {
	var out []string
	for _, ln := range lines {
		var s string
		for _, pb := range ln.Boxes {
			switch {
			case pb.Box.IsNewline():
				s += "\\n"
			case pb.Box.IsTab():
				s += "\\t"
			default:
				s += string(pb.Box.Text)
			}
		}
		out = append(out, s)
	}
	return out
}

func TestLayoutSingleLine(t *testing.T) {
	boxes := rich.ContentToBoxes(rich.Plain("hello world"))
	lines := Layout(boxes, fixedMetrics{}, 500, 80)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %v", len(lines), boxesToStrings(lines))
	}
}

func TestLayoutNewlineSplitsLines(t *testing.T) {
	boxes := rich.ContentToBoxes(rich.Plain("hello\nworld"))
	lines := Layout(boxes, fixedMetrics{}, 500, 80)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %v", len(lines), boxesToStrings(lines))
	}
	if lines[1].Y != 14 {
		t.Errorf("line[1].Y = %v, want 14", lines[1].Y)
	}
}

func TestLayoutWrapSingleWord(t *testing.T) {
	// "hello" is 50pt wide; a 30pt frame fits 3 runes per line.
	boxes := rich.ContentToBoxes(rich.Plain("hello"))
	lines := Layout(boxes, fixedMetrics{}, 30, 80)
	got := boxesToStrings(lines)
	want := []string{"hel", "lo"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestLayoutWrapMultipleChunks(t *testing.T) {
	boxes := rich.ContentToBoxes(rich.Plain("abcdefghij"))
	lines := Layout(boxes, fixedMetrics{}, 30, 80)
	got := boxesToStrings(lines)
	want := []string{"abc", "def", "ghi", "j"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLayoutTabAdvancesToStop(t *testing.T) {
	boxes := rich.ContentToBoxes(rich.Plain("ab\tcd"))
	lines := Layout(boxes, fixedMetrics{}, 500, 80)
	if len(lines) != 1 || len(lines[0].Boxes) != 3 {
		t.Fatalf("unexpected layout: %v", lines)
	}
	if lines[0].Boxes[0].X != 0 {
		t.Errorf("box[0].X = %v, want 0", lines[0].Boxes[0].X)
	}
	if lines[0].Boxes[1].X != 20 {
		t.Errorf("tab box X = %v, want 20", lines[0].Boxes[1].X)
	}
	if lines[0].Boxes[2].X != 80 {
		t.Errorf("box[2].X = %v, want 80", lines[0].Boxes[2].X)
	}
}

func TestLayoutTracksOffsetAcrossWraps(t *testing.T) {
	boxes := rich.ContentToBoxes(rich.Plain("hello"))
	lines := Layout(boxes, fixedMetrics{}, 30, 80)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Boxes[0].Box.Offset != 0 {
		t.Errorf("line 0 offset = %d, want 0", lines[0].Boxes[0].Box.Offset)
	}
	if lines[1].Boxes[0].Box.Offset != 3 {
		t.Errorf("line 1 offset = %d, want 3", lines[1].Boxes[0].Box.Offset)
	}
}

func TestLayoutEmpty(t *testing.T) {
	lines := Layout(nil, fixedMetrics{}, 500, 80)
	if len(lines) != 0 {
		t.Errorf("expected no lines for empty input, got %v", lines)
	}
}
