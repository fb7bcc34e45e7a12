package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("pw123456")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "pw123456" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPassword(hash, "pw123456") {
		t.Error("correct password should verify")
	}
	if CheckPassword(hash, "pw123457") {
		t.Error("wrong password should not verify")
	}
	if CheckPassword("not-a-hash", "pw123456") {
		t.Error("garbage hash should not verify")
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "pw123456", false},
		{"too short", "pw1", true},
		{"letters only", "passwordonly", true},
		{"numbers only", "1234567890", true},
		{"exactly eight", "abcd1234", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestGenerateRandomString(t *testing.T) {
	a, err := GenerateRandomString(32)
	if err != nil {
		t.Fatalf("GenerateRandomString: %v", err)
	}
	if len(a) != 32 {
		t.Errorf("length = %d, want 32", len(a))
	}

	b, err := GenerateRandomString(32)
	if err != nil {
		t.Fatalf("GenerateRandomString: %v", err)
	}
	if a == b {
		t.Error("two random strings should not collide")
	}
}
