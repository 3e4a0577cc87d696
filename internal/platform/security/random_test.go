package security

import "testing"

func TestRandomDigitsWidthAndCharset(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		code, err := RandomDigits(6)
		if err != nil {
			t.Fatalf("random digits: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("len(%q) = %d, want 6", code, len(code))
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("non-digit in %q", code)
			}
		}
		seen[code] = true
	}
	// 200 draws from a million values colliding into one would mean a
	// broken generator
	if len(seen) < 2 {
		t.Fatal("generator returned a constant")
	}
}

func TestRandomDigitsDefaultsToSix(t *testing.T) {
	code, err := RandomDigits(0)
	if err != nil {
		t.Fatalf("random digits: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("len(%q) = %d, want 6", code, len(code))
	}
}
