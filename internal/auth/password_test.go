package auth

import "testing"

func TestHashPassword_SaltUniqueness(t *testing.T) {
	const pw = "correct horse battery staple"

	h1, err := HashPassword(pw)
	if err != nil {
		t.Fatalf("hash 1: %v", err)
	}
	h2, err := HashPassword(pw)
	if err != nil {
		t.Fatalf("hash 2: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password must differ (per-hash salt)")
	}
	if err := CheckPassword(pw, h1); err != nil {
		t.Errorf("verify against hash 1: %v", err)
	}
	if err := CheckPassword(pw, h2); err != nil {
		t.Errorf("verify against hash 2: %v", err)
	}
}

func TestCheckPassword_Mismatch(t *testing.T) {
	h, err := HashPassword("pw1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := CheckPassword("pw2", h); err != ErrWrongPassword {
		t.Errorf("err = %v, want ErrWrongPassword", err)
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	if err := CheckPassword("pw", "not-a-bcrypt-hash"); err == nil || err == ErrWrongPassword {
		t.Errorf("malformed hash should fail with a distinct error, got %v", err)
	}
}
