package password

import "testing"

func TestHashAndCompare(t *testing.T) {
	h := NewHasher(10)

	hash, err := h.Hash("Sup3rSecret")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	if hash == "Sup3rSecret" {
		t.Fatalf("Hash() returned plaintext")
	}

	if !h.Compare(hash, "Sup3rSecret") {
		t.Errorf("Compare() = false for correct password")
	}
	if h.Compare(hash, "wrong-password") {
		t.Errorf("Compare() = true for wrong password")
	}
}

func TestNewHasher_OutOfRangeCost(t *testing.T) {
	h := NewHasher(99)

	hash, err := h.Hash("abc123XYZ")
	if err != nil {
		t.Fatalf("Hash() with clamped cost error: %v", err)
	}
	if !h.Compare(hash, "abc123XYZ") {
		t.Errorf("Compare() failed after cost clamp")
	}
}

func TestCompare_InvalidHash(t *testing.T) {
	h := NewHasher(10)
	if h.Compare("not-a-bcrypt-hash", "whatever") {
		t.Errorf("Compare() = true for malformed hash")
	}
}
