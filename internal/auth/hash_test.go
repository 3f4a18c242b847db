package auth

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("Str0ng!Pw")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "Str0ng!Pw" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !VerifyPassword(hash, "Str0ng!Pw") {
		t.Fatal("correct password must verify")
	}
	if VerifyPassword(hash, "WrongPw1!") {
		t.Fatal("wrong password must not verify")
	}
	if VerifyPassword("", "Str0ng!Pw") {
		t.Fatal("empty hash must not verify")
	}
}
