package normalization

import "testing"

type color string

func TestNormalizer(t *testing.T) {
	n := NewNormalizer(map[string]color{"Red": "red", "blue": "blue"}, "red")

	cases := []struct {
		in   string
		want color
	}{
		{"red", "red"},
		{"  BLUE ", "blue"},
		{"green", "red"},
		{"", "red"},
	}
	for _, c := range cases {
		if got := n.Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	if _, err := n.NormalizeWithError("green"); err == nil {
		t.Error("expected error for unknown value")
	}
	if got := n.ValidKeys(); len(got) != 2 || got[0] != "blue" || got[1] != "red" {
		t.Errorf("ValidKeys = %v", got)
	}
}
