package viewer

import (
	"testing"

	"github.com/saka1/mlux/layout"
	"github.com/saka1/mlux/markdown"
)

func urlVL(start, end int) layout.VisualLine {
	r := markdown.LineRange{Start: start, End: end}
	return layout.VisualLine{MDRange: &r}
}

func TestCollectAllURLEntriesDedupsByRange(t *testing.T) {
	src := "See [site](https://example.com) for more.\nwrapped continuation\n"
	// Two visual lines sharing the same (1,1) range, as a wrapped paragraph would.
	lines := []layout.VisualLine{urlVL(1, 1), urlVL(1, 1)}
	entries := CollectAllURLEntries(src, lines)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1 (deduped by range)", len(entries))
	}
}

func TestCollectAllURLEntriesTagsVisualLineIndex(t *testing.T) {
	src := "[a](https://a.example)\n[b](https://b.example)\n"
	lines := []layout.VisualLine{urlVL(1, 1), urlVL(2, 2)}
	entries := CollectAllURLEntries(src, lines)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].VisualLine != 1 || entries[1].VisualLine != 2 {
		t.Errorf("entries = %+v, want VisualLine 1 then 2", entries)
	}
}

func TestURLPickerSelectNextWraps(t *testing.T) {
	s := &URLPickerState{Entries: []URLPickerEntry{{URL: "a"}, {URL: "b"}}, Selected: 1}
	HandleURLKey(URLAction{Kind: URLSelectNext}, s)
	if s.Selected != 0 {
		t.Errorf("Selected = %d, want 0 (wrapped)", s.Selected)
	}
}

func TestURLPickerSelectPrevWraps(t *testing.T) {
	s := &URLPickerState{Entries: []URLPickerEntry{{URL: "a"}, {URL: "b"}}, Selected: 0}
	HandleURLKey(URLAction{Kind: URLSelectPrev}, s)
	if s.Selected != 1 {
		t.Errorf("Selected = %d, want 1 (wrapped)", s.Selected)
	}
}

func TestURLPickerConfirmOpensSelected(t *testing.T) {
	s := &URLPickerState{Entries: []URLPickerEntry{{URL: "https://a"}, {URL: "https://b"}}, Selected: 1}
	effects := HandleURLKey(URLAction{Kind: URLConfirm}, s)
	found := false
	for _, e := range effects {
		if oe, ok := e.(EffectOpenURL); ok && oe.URL == "https://b" {
			found = true
		}
	}
	if !found {
		t.Errorf("effects = %+v, want an EffectOpenURL for https://b", effects)
	}
}

func TestURLPickerConfirmOnEmptyReturnsNormal(t *testing.T) {
	s := &URLPickerState{}
	effects := HandleURLKey(URLAction{Kind: URLConfirm}, s)
	if len(effects) == 0 {
		t.Fatal("expected at least one effect")
	}
	sm, ok := effects[0].(EffectSetMode)
	if !ok || sm.Mode != ModeNormal {
		t.Errorf("effects[0] = %+v, want EffectSetMode(Normal)", effects[0])
	}
}

func TestURLPickerCancelReturnsNormal(t *testing.T) {
	s := &URLPickerState{Entries: []URLPickerEntry{{URL: "a"}}}
	effects := HandleURLKey(URLAction{Kind: URLCancel}, s)
	sm, ok := effects[0].(EffectSetMode)
	if !ok || sm.Mode != ModeNormal {
		t.Errorf("effects[0] = %+v, want EffectSetMode(Normal)", effects[0])
	}
}
