// ============================================================================
// UTILITY VALIDATION
// ============================================================================

package utils

import "testing"

func TestB2sRoundTrip(t *testing.T) {
	if got := B2s(nil); got != "" {
		t.Errorf("B2s(nil): got %q, want \"\"", got)
	}
	b := []byte("gain")
	if got := B2s(b); got != "gain" {
		t.Errorf("B2s: got %q, want \"gain\"", got)
	}
	if got := B2s(S2b("bucket")); got != "bucket" {
		t.Errorf("S2b/B2s round trip: got %q", got)
	}
	if S2b("") != nil {
		t.Error("S2b(\"\") should be nil")
	}
}

func TestLoadBE64(t *testing.T) {
	b := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	if got := LoadBE64(b); got != 0x0102030405060708 {
		t.Errorf("LoadBE64: got %#x, want 0x0102030405060708", got)
	}
}

func TestMix64(t *testing.T) {
	if Mix64(0) != 0 {
		t.Error("Mix64(0) must be 0")
	}
	if Mix64(1) == 1 {
		t.Error("Mix64(1) did not avalanche")
	}
	if Mix64(12345) != Mix64(12345) {
		t.Error("Mix64 not deterministic")
	}
	// Adjacent inputs must land far apart.
	seen := make(map[uint64]bool)
	for i := uint64(1); i <= 1000; i++ {
		v := Mix64(i)
		if seen[v] {
			t.Fatalf("Mix64 collision at input %d", i)
		}
		seen[v] = true
	}
}
