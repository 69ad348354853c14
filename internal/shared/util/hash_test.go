package util

import "testing"

func TestFingerprint(t *testing.T) {
	got := Fingerprint("Kanzlei@Example.com ")
	if got != Fingerprint("kanzlei@example.com") {
		t.Fatalf("expected case-insensitive fingerprint, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("fingerprint contains non-hex character: %c", ch)
		}
	}
	if len(got) != 16 {
		t.Fatalf("expected 16 hex characters, got %d", len(got))
	}
	if Fingerprint("  ") != "" {
		t.Fatalf("expected empty fingerprint for blank input")
	}
}
