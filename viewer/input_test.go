package viewer

import "testing"

func rk(r rune) Key { return Key{Kind: KeyRune, Rune: r} }

func mapSeq(t *testing.T, seq string) (last Action, acc InputAccumulator) {
	t.Helper()
	for _, r := range seq {
		last = MapKey(rk(r), &acc)
	}
	return last, acc
}

func Test5jScrollsDownBy5(t *testing.T) {
	a, _ := mapSeq(t, "5j")
	if a.Kind != ActionScrollDown || a.Count != 5 {
		t.Errorf("got %+v, want ScrollDown(5)", a)
	}
}

func TestGWithoutPrefixJumpsToTop(t *testing.T) {
	var acc InputAccumulator
	a := MapKey(rk('g'), &acc)
	if a.Kind != ActionJumpToTop {
		t.Errorf("got %+v, want JumpToTop", a)
	}
}

func Test56gJumpsToLine56(t *testing.T) {
	a, _ := mapSeq(t, "56g")
	if a.Kind != ActionJumpToLine || a.Count != 56 {
		t.Errorf("got %+v, want JumpToLine(56)", a)
	}
}

func TestQQuits(t *testing.T) {
	var acc InputAccumulator
	a := MapKey(rk('q'), &acc)
	if a.Kind != ActionQuit {
		t.Errorf("got %+v, want Quit", a)
	}
}

func TestCtrlCQuits(t *testing.T) {
	var acc InputAccumulator
	a := MapKey(Key{Kind: KeyCtrlC}, &acc)
	if a.Kind != ActionQuit {
		t.Errorf("got %+v, want Quit", a)
	}
}

func TestEscCancelsInputAndResetsAccumulator(t *testing.T) {
	var acc InputAccumulator
	acc.PushDigit(4)
	a := MapKey(Key{Kind: KeyEsc}, &acc)
	if a.Kind != ActionCancelInput {
		t.Errorf("got %+v, want CancelInput", a)
	}
	if acc.IsActive() {
		t.Error("accumulator should be reset after Esc")
	}
}

func TestUnknownKeyReturnsNone(t *testing.T) {
	var acc InputAccumulator
	a := MapKey(rk('!'), &acc)
	if a.Kind != ActionNone {
		t.Errorf("got %+v, want None", a)
	}
}

func TestYankWithPrefixYanksExactCount(t *testing.T) {
	a, _ := mapSeq(t, "12y")
	if a.Kind != ActionYankExact || a.Count != 12 {
		t.Errorf("got %+v, want YankExact(12)", a)
	}
}

func TestYankWithoutPrefixPrompts(t *testing.T) {
	var acc InputAccumulator
	a := MapKey(rk('y'), &acc)
	if a.Kind != ActionYankExactPrompt {
		t.Errorf("got %+v, want YankExactPrompt", a)
	}
}

func TestBigGWithoutPrefixJumpsToBottom(t *testing.T) {
	var acc InputAccumulator
	a := MapKey(rk('G'), &acc)
	if a.Kind != ActionJumpToBottom {
		t.Errorf("got %+v, want JumpToBottom", a)
	}
}

func TestDigitsBeyondMaxLineNumAreIgnored(t *testing.T) {
	var acc InputAccumulator
	for _, r := range "9999999" {
		MapKey(rk(r), &acc)
	}
	if acc.Peek() > MaxLineNum {
		t.Errorf("accumulator = %d, exceeds MaxLineNum %d", acc.Peek(), MaxLineNum)
	}
}
