package content

import (
	"strings"
	"testing"
)

func TestLibrariesNonEmpty(t *testing.T) {
	if len(Ideas) == 0 {
		t.Error("ideas library is empty")
	}
	if len(Praises) == 0 {
		t.Error("praises library is empty")
	}
	if len(Facts) == 0 {
		t.Error("facts library is empty")
	}
	for i, f := range Facts {
		if f.Speech == "" || f.Title == "" || f.Long == "" {
			t.Errorf("fact %d has an empty field", i)
		}
	}
	for i, p := range Praises {
		if !strings.HasSuffix(p, " ") {
			t.Errorf("praise %d must end with a space for concatenation: %q", i, p)
		}
	}
}

func TestStripMarkup(t *testing.T) {
	in := `Make tea <break time="0.05s"/> without being asked.`
	got := StripMarkup(in)
	want := "Make tea without being asked."
	if got != want {
		t.Errorf("StripMarkup: got %q, want %q", got, want)
	}
	if strings.Contains(StripMarkup(strings.Join(Ideas, " ")), "<break") {
		t.Error("StripMarkup left markup in ideas")
	}
}
