package crypt_test

import (
	"errors"
	"testing"

	"github.com/ordena/ordena/pkg/crypt"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	enc, err := crypt.Encrypt("hello world")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if enc == "hello world" {
		t.Fatal("ciphertext equals plaintext")
	}

	plain, err := crypt.Decrypt(enc)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if plain != "hello world" {
		t.Errorf("expected %q, got %q", "hello world", plain)
	}
}

func TestEncryptIsNonDeterministic(t *testing.T) {
	a, err := crypt.Encrypt("same input")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	b, err := crypt.Encrypt("same input")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if a == b {
		t.Error("expected different ciphertexts for the same plaintext (random nonce)")
	}
}

func TestDecryptRejectsTamperedCiphertext(t *testing.T) {
	enc, err := crypt.Encrypt("sensitive")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	// Flip a character somewhere past the nonce.
	tampered := []byte(enc)
	mid := len(tampered) / 2
	if tampered[mid] == 'A' {
		tampered[mid] = 'B'
	} else {
		tampered[mid] = 'A'
	}

	if _, err := crypt.Decrypt(string(tampered)); !errors.Is(err, crypt.ErrDecrypt) {
		t.Errorf("expected ErrDecrypt, got %v", err)
	}
}

func TestDecryptRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "not-base64!!", "aGVsbG8="} {
		if _, err := crypt.Decrypt(input); !errors.Is(err, crypt.ErrDecrypt) {
			t.Errorf("input %q: expected ErrDecrypt, got %v", input, err)
		}
	}
}

func TestEncryptJSONRoundTrip(t *testing.T) {
	type payload struct {
		UserID uint     `json:"user_id"`
		Tags   []string `json:"tags"`
	}

	enc, err := crypt.EncryptJSON(payload{UserID: 42, Tags: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	var out payload
	if err := crypt.DecryptJSON(enc, &out); err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if out.UserID != 42 || len(out.Tags) != 2 {
		t.Errorf("unexpected payload after round trip: %+v", out)
	}
}
