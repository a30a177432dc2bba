package disease

import "testing"

func TestParse(t *testing.T) {
	for _, d := range All() {
		parsed, err := Parse(string(d))
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", d, err)
		}
		if parsed != d {
			t.Errorf("Parse(%q) = %q", d, parsed)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	if _, err := Parse("migraine"); err == nil {
		t.Error("Expected error for unknown disease")
	}
	if _, err := Parse(""); err == nil {
		t.Error("Expected error for empty identifier")
	}
}

func TestResultMessages(t *testing.T) {
	for _, d := range All() {
		pos := d.ResultMessage(1)
		neg := d.ResultMessage(0)
		if pos == "" || neg == "" {
			t.Errorf("%s: missing result message", d)
		}
		if pos == neg {
			t.Errorf("%s: positive and negative messages are identical", d)
		}
	}
}

func TestTitles(t *testing.T) {
	for _, d := range All() {
		if d.Title() == "" {
			t.Errorf("%s: missing title", d)
		}
		if d.Icon() == "" {
			t.Errorf("%s: missing icon", d)
		}
	}
}
