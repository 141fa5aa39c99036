package service

import "testing"

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash equals the plaintext")
	}

	if !ComparePassword(hash, "s3cret-pass") {
		t.Error("correct password rejected")
	}
	if ComparePassword(hash, "wrong-pass") {
		t.Error("wrong password accepted")
	}
}
