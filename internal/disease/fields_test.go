package disease

import "testing"

func TestFeatureCounts(t *testing.T) {
	want := map[Disease]int{
		Diabetes:     8,
		HeartDisease: 13,
		Parkinsons:   22,
	}

	for d, n := range want {
		if got := d.FeatureCount(); got != n {
			t.Errorf("%s: expected %d fields, got %d", d, n, got)
		}
		if got := len(d.Fields()); got != n {
			t.Errorf("%s: Fields() returned %d entries, expected %d", d, got, n)
		}
	}
}

func TestFieldNamesUnique(t *testing.T) {
	for _, d := range All() {
		seen := make(map[string]bool)
		for _, f := range d.Fields() {
			if f.Name == "" {
				t.Errorf("%s: field with empty name", d)
			}
			if f.Label == "" {
				t.Errorf("%s: field %s has no label", d, f.Name)
			}
			if seen[f.Name] {
				t.Errorf("%s: duplicate field name %s", d, f.Name)
			}
			seen[f.Name] = true
		}
	}
}

func TestFieldBounds(t *testing.T) {
	for _, d := range All() {
		for _, f := range d.Fields() {
			if f.Min != nil && f.Default < *f.Min {
				t.Errorf("%s.%s: default %v below min %v", d, f.Name, f.Default, *f.Min)
			}
			if f.Max != nil && f.Default > *f.Max {
				t.Errorf("%s.%s: default %v above max %v", d, f.Name, f.Default, *f.Max)
			}
			if f.Step <= 0 {
				t.Errorf("%s.%s: step must be positive, got %v", d, f.Name, f.Step)
			}
		}
	}
}
