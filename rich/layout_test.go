package rich

import "testing"

func TestContentToBoxesSimple(t *testing.T) {
	boxes := ContentToBoxes(Plain("hello\nworld"))
	want := []string{"hello", "\n", "world"}
	if len(boxes) != len(want) {
		t.Fatalf("got %d boxes, want %d", len(boxes), len(want))
	}
	for i, w := range want {
		got := boxToString(&boxes[i])
		if got != w {
			t.Errorf("box[%d] = %q, want %q", i, got, w)
		}
	}
}

func TestContentToBoxesTracksOffset(t *testing.T) {
	content := Content{
		{Text: "ab ", Style: DefaultStyle()},
		{Text: "cd\nef", Style: StyleBold},
	}
	boxes := ContentToBoxes(content)
	// "ab " -> box "ab " at offset 0; "cd" at offset 3; "\n" at offset 5; "ef" at offset 6
	wantOffsets := []int{0, 3, 5, 6}
	if len(boxes) != len(wantOffsets) {
		t.Fatalf("got %d boxes, want %d: %v", len(boxes), len(wantOffsets), boxes)
	}
	for i, w := range wantOffsets {
		if boxes[i].Offset != w {
			t.Errorf("box[%d].Offset = %d, want %d", i, boxes[i].Offset, w)
		}
	}
}

func TestContentToBoxesEmptySpanSkipped(t *testing.T) {
	boxes := ContentToBoxes(Content{{Text: "", Style: DefaultStyle()}})
	if len(boxes) != 0 {
		t.Errorf("expected no boxes for an empty span, got %v", boxes)
	}
}

func TestContentToBoxesImageBox(t *testing.T) {
	img := &CachedImage{Path: "x.png"}
	content := Content{{Text: "alt text", Style: Style{Image: true}, Image: img}}
	boxes := ContentToBoxes(content)
	if len(boxes) != 1 || !boxes[0].IsImage() {
		t.Fatalf("expected a single image box, got %v", boxes)
	}
	if boxes[0].ImageData != img {
		t.Errorf("ImageData not carried through to the box")
	}
}

func boxToString(b *Box) string {
	if b.IsNewline() {
		return "\n"
	}
	if b.IsTab() {
		return "\t"
	}
	return string(b.Text)
}
