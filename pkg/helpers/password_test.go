package helpers

import (
	"math/rand"
	"reflect"
	"testing"
	"testing/quick"
)

// asciiPassword keeps generated passwords under bcrypt's 72 byte input limit.
type asciiPassword string

func (asciiPassword) Generate(r *rand.Rand, _ int) reflect.Value {
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*() "
	n := r.Intn(40)
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return reflect.ValueOf(asciiPassword(b))
}

func TestHashVerifyRoundTrip(t *testing.T) {
	h := NewPasswordHasher(DefaultBcryptCost)

	property := func(plain, other asciiPassword) bool {
		hash, err := h.Hash(string(plain))
		if err != nil {
			t.Logf("hash: %v", err)
			return false
		}
		ok, err := h.Verify(string(plain), hash)
		if err != nil || !ok {
			return false
		}
		if other == plain {
			return true
		}
		ok, err = h.Verify(string(other), hash)
		return err == nil && !ok
	}
	if err := quick.Check(property, &quick.Config{MaxCount: 8}); err != nil {
		t.Fatal(err)
	}
}

func TestHashUsesConfiguredCost(t *testing.T) {
	hash, err := NewPasswordHasher(DefaultBcryptCost).Hash("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash[:7] != "$2a$10$" {
		t.Fatalf("expected cost 10 bcrypt hash, got %q", hash[:7])
	}
	if hash == "secret" {
		t.Fatal("hash must not equal plaintext")
	}
}

func TestNewPasswordHasherClampsCost(t *testing.T) {
	if got := NewPasswordHasher(1).Cost; got != DefaultBcryptCost {
		t.Fatalf("expected default cost, got %d", got)
	}
	if got := NewPasswordHasher(99).Cost; got != DefaultBcryptCost {
		t.Fatalf("expected default cost, got %d", got)
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	h := PasswordHasher{}
	tests := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "too short", hash: "not-a-hash"},
		{name: "bad prefix", hash: "x2a$10$abcdefghijklmnopqrstuuPMGaTHh7tQ1sJ5r0HqZzZzZzZzZzZzZzZ"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := h.Verify("secret", tc.hash)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if ok {
				t.Fatal("expected verify to fail")
			}
		})
	}
}
