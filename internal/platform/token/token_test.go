package token

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestNew_Format(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	// 24 bytes in unpadded base64 is always 32 characters
	if len(tok) != 32 {
		t.Errorf("expected 32-character token, got %d (%q)", len(tok), tok)
	}

	if strings.ContainsAny(tok, "+/=") {
		t.Errorf("token contains non-URL-safe characters: %q", tok)
	}

	decoded, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil {
		t.Fatalf("token does not decode as unpadded URL-safe base64: %v", err)
	}
	if len(decoded) != ByteLength {
		t.Errorf("expected %d decoded bytes, got %d", ByteLength, len(decoded))
	}
}

func TestNew_URLSafeAlphabet(t *testing.T) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

	for i := 0; i < 100; i++ {
		tok, err := New()
		if err != nil {
			t.Fatalf("New() error: %v", err)
		}
		for _, r := range tok {
			if !strings.ContainsRune(alphabet, r) {
				t.Fatalf("token %q contains character %q outside the URL-safe alphabet", tok, r)
			}
		}
	}
}

func TestNew_Uniqueness(t *testing.T) {
	const n = 10000

	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		tok, err := New()
		if err != nil {
			t.Fatalf("New() error at iteration %d: %v", i, err)
		}
		if seen[tok] {
			t.Fatalf("duplicate token after %d generations: %q", i, tok)
		}
		seen[tok] = true
	}
}
