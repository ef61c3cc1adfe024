package calibers

import "testing"

func TestParse(t *testing.T) {
	defer Reset()

	cases := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"D100", 100, true},
		{"D140", 140, true},
		{"D300", 300, true},
		{"D0", 0, true},
		{"", 0, false},
		{"D", 0, false},
		{"100", 0, false},
		{"Dabc", 0, false},
		{"D12.5", 0, false},
	}

	for _, c := range cases {
		got, ok := Parse(c.in)
		if got != c.want || ok != c.wantOK {
			t.Errorf("Parse(%q) = (%d, %v), want (%d, %v)", c.in, got, ok, c.want, c.wantOK)
		}
	}
}

func TestParseCacheHit(t *testing.T) {
	defer Reset()

	// Same answer on a hit as on a miss.
	first, ok1 := Parse("D250")
	second, ok2 := Parse("D250")
	if first != second || ok1 != ok2 {
		t.Errorf("cache hit diverged: (%d, %v) vs (%d, %v)", first, ok1, second, ok2)
	}
	if first != 250 || !ok1 {
		t.Errorf("Parse(D250) = (%d, %v), want (250, true)", first, ok1)
	}
}
