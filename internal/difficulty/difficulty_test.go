package difficulty

import "testing"

func TestForAccuracy(t *testing.T) {
	cases := []struct {
		accuracy float64
		want     Level
	}{
		{0, Easy},
		{49.9, Easy},
		{50, Medium},
		{79.9, Medium},
		{80, Hard},
		{100, Hard},
	}
	for _, c := range cases {
		if got := ForAccuracy(c.accuracy); got != c.want {
			t.Errorf("ForAccuracy(%v) = %s, want %s", c.accuracy, got, c.want)
		}
	}
}

func TestDefaultIsMedium(t *testing.T) {
	if Default != Medium {
		t.Errorf("Default = %s, want medium", Default)
	}
}
