package password

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	// MinCost keeps the test fast; the hash format is identical.
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}

	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("expected bcrypt hash prefix, got %q", hash[:4])
	}

	if !h.Verify(hash, "correct horse battery staple") {
		t.Error("expected correct password to verify")
	}
	if h.Verify(hash, "wrong password") {
		t.Error("expected wrong password to fail verification")
	}
}

func TestHash_DistinctSalts(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	h1, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	h2, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}

	if h1 == h2 {
		t.Error("expected different hashes for the same password (random salt)")
	}
}

func TestNewHasher_CostFallback(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{"below minimum", bcrypt.MinCost - 1, DefaultCost},
		{"above maximum", bcrypt.MaxCost + 1, DefaultCost},
		{"valid", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHasher(tt.cost)
			if h.cost != tt.want {
				t.Errorf("NewHasher(%d).cost = %d, want %d", tt.cost, h.cost, tt.want)
			}
		})
	}
}

func TestVerifyDummy_AlwaysFalse(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	if h.VerifyDummy("anything") {
		t.Error("VerifyDummy must always return false")
	}
	if h.VerifyDummy("") {
		t.Error("VerifyDummy must always return false for empty input")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	if h.Verify("not a bcrypt hash", "secret") {
		t.Error("expected malformed hash to fail verification")
	}
}
