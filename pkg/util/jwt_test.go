package util

import (
	"net/http/httptest"
	"testing"
)

func TestJWT_RoundTrip(t *testing.T) {
	token, err := GenerateJWT(7, "secret")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	userID, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if userID != 7 {
		t.Fatalf("userID = %d, want 7", userID)
	}
}

func TestJWT_WrongSecretRejected(t *testing.T) {
	token, err := GenerateJWT(7, "secret")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseJWT(token, "other"); err == nil {
		t.Fatal("token signed with a different secret must not parse")
	}
}

func TestExtractToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if got := ExtractToken(r); got != "" {
		t.Fatalf("no header, got %q", got)
	}

	r.Header.Set("Authorization", "Bearer abc")
	if got := ExtractToken(r); got != "abc" {
		t.Fatalf("got %q, want abc", got)
	}

	r.Header.Set("Authorization", "Basic abc")
	if got := ExtractToken(r); got != "" {
		t.Fatalf("non-bearer scheme, got %q", got)
	}
}
