package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "unit-test-secret"

func TestAccessToken_RoundTrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 42, 30)
	if err != nil {
		t.Fatalf("NewAccessToken() error = %v", err)
	}
	if tok.Token == "" {
		t.Fatal("NewAccessToken() returned empty token")
	}
	wantExp := time.Now().UTC().Add(30 * time.Minute)
	if d := tok.Exp.Sub(wantExp); d < -time.Minute || d > time.Minute {
		t.Errorf("token expiry = %v, want about %v", tok.Exp, wantExp)
	}

	uid, err := ParseAccessToken(testSecret, tok.Token)
	if err != nil {
		t.Fatalf("ParseAccessToken() error = %v", err)
	}
	if uid != 42 {
		t.Errorf("ParseAccessToken() subject = %d, want 42", uid)
	}
}

func TestParseAccessToken_Rejections(t *testing.T) {
	valid, err := NewAccessToken(testSecret, 7, 30)
	if err != nil {
		t.Fatalf("NewAccessToken() error = %v", err)
	}

	expired, err := NewAccessToken(testSecret, 7, -1)
	if err != nil {
		t.Fatalf("NewAccessToken() error = %v", err)
	}

	// Flip the last character of the signature segment.
	tampered := valid.Token[:len(valid.Token)-1]
	if strings.HasSuffix(valid.Token, "A") {
		tampered += "B"
	} else {
		tampered += "A"
	}

	// Structurally valid token with no subject claim at all.
	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing no-sub token: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage string", "not.a.jwt"},
		{"empty string", ""},
		{"expired token", expired.Token},
		{"tampered signature", tampered},
		{"wrong secret", mustSign(t, "some-other-secret", 7)},
		{"missing subject", noSub},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseAccessToken(testSecret, tt.token); err != ErrInvalidToken {
				t.Errorf("ParseAccessToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

// TestParseAccessToken_StringSubject covers issuers that encode the subject
// as a numeric string instead of a JSON number.
func TestParseAccessToken_StringSubject(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "19",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	uid, err := ParseAccessToken(testSecret, raw)
	if err != nil {
		t.Fatalf("ParseAccessToken() error = %v", err)
	}
	if uid != 19 {
		t.Errorf("ParseAccessToken() subject = %d, want 19", uid)
	}
}

func mustSign(t *testing.T, secret string, uid uint64) string {
	t.Helper()
	tok, err := NewAccessToken(secret, uid, 30)
	if err != nil {
		t.Fatalf("NewAccessToken() error = %v", err)
	}
	return tok.Token
}
