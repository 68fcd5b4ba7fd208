package dialog

import "testing"

func TestSessionPhaseRoundTrip(t *testing.T) {
	s := NewSession(nil)
	if s.Phase() != PhaseIdle {
		t.Errorf("fresh session should be idle, got %q", s.Phase())
	}

	s.SetPhase(PhaseIdeaPresented)
	if s.Phase() != PhaseIdeaPresented {
		t.Errorf("got %q, want idea_presented", s.Phase())
	}

	// Round-trip through the attribute bag as the transport would.
	s2 := NewSession(s.Attributes())
	if s2.Phase() != PhaseIdeaPresented {
		t.Errorf("phase lost in round trip: %q", s2.Phase())
	}
}

func TestSessionUnknownPhaseDegradesToIdle(t *testing.T) {
	s := NewSession(map[string]string{phaseAttributeKey: "garbage"})
	if s.Phase() != PhaseIdle {
		t.Errorf("unknown phase should read as idle, got %q", s.Phase())
	}
}

func TestSessionSetIdleClearsKey(t *testing.T) {
	s := NewSession(map[string]string{phaseAttributeKey: string(PhaseIdeaPresented)})
	s.SetPhase(PhaseIdle)
	if s.Attributes() != nil {
		t.Errorf("idle phase should clear the bag entry, got %v", s.Attributes())
	}
}

func TestSessionDoesNotMutateCallerBag(t *testing.T) {
	in := map[string]string{"other": "value"}
	s := NewSession(in)
	s.SetPhase(PhaseAwaitingFeedback)
	if _, ok := in[phaseAttributeKey]; ok {
		t.Error("session mutated the caller's map")
	}
	if s.Attributes()["other"] != "value" {
		t.Error("unrelated attributes must round-trip untouched")
	}
}
