package viewer

import (
	"errors"
	"strings"
	"testing"
)

func TestRecoverFromLoadFailureKeepsPriorDocument(t *testing.T) {
	prior := &Document{}
	s := &session{doc: prior, state: ViewState{Filename: "prior.md"}}

	if err := s.recoverFromLoadFailure(errors.New("boom")); err != nil {
		t.Fatalf("recoverFromLoadFailure() error = %v, want nil", err)
	}
	if s.doc != prior {
		t.Errorf("s.doc changed, want the prior document kept")
	}
	if s.state.Filename != "prior.md" {
		t.Errorf("s.state changed, want the prior state kept")
	}
	if !strings.Contains(s.flash, "boom") {
		t.Errorf("s.flash = %q, want it to mention the failure", s.flash)
	}
}

func TestPlaceholderTextMentionsCause(t *testing.T) {
	text := placeholderText(errors.New("disk on fire"))
	if !strings.Contains(text, "disk on fire") {
		t.Errorf("placeholderText = %q, want it to contain the cause", text)
	}
}
