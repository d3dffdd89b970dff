package filestorage

import (
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"
)

func fixedSigner(secret string, at time.Time) *HMACSigner {
	s := NewHMACSigner(secret, "/api/v1/files")
	s.now = func() time.Time { return at }
	return s
}

func TestSignedURLRoundTrip(t *testing.T) {
	base := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)
	s := fixedSigner("test-secret", base)

	signed, err := s.SignedURL("dokumen/abc/kk.pdf", time.Hour)
	if err != nil {
		t.Fatalf("SignedURL returned error: %v", err)
	}
	if !strings.HasPrefix(signed, "/api/v1/files/dokumen/abc/kk.pdf?") {
		t.Fatalf("unexpected URL shape: %s", signed)
	}

	u, err := url.Parse(signed)
	if err != nil {
		t.Fatalf("failed to parse signed URL: %v", err)
	}
	q := u.Query()

	if err := s.Verify("dokumen/abc/kk.pdf", q.Get("expires"), q.Get("signature")); err != nil {
		t.Fatalf("Verify rejected a freshly issued URL: %v", err)
	}
}

func TestSignedURLTamperedPath(t *testing.T) {
	base := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)
	s := fixedSigner("test-secret", base)

	signed, err := s.SignedURL("dokumen/abc/kk.pdf", time.Hour)
	if err != nil {
		t.Fatalf("SignedURL returned error: %v", err)
	}
	u, _ := url.Parse(signed)
	q := u.Query()

	if err := s.Verify("dokumen/other/kk.pdf", q.Get("expires"), q.Get("signature")); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid for tampered path, got %v", err)
	}
}

func TestSignedURLExpired(t *testing.T) {
	base := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)
	s := fixedSigner("test-secret", base)

	signed, err := s.SignedURL("dokumen/abc/kk.pdf", time.Hour)
	if err != nil {
		t.Fatalf("SignedURL returned error: %v", err)
	}
	u, _ := url.Parse(signed)
	q := u.Query()

	// Move the clock past the expiry
	s.now = func() time.Time { return base.Add(2 * time.Hour) }

	if err := s.Verify("dokumen/abc/kk.pdf", q.Get("expires"), q.Get("signature")); !errors.Is(err, ErrSignatureExpired) {
		t.Fatalf("expected ErrSignatureExpired, got %v", err)
	}
}

func TestVerifyRejectsGarbageExpiry(t *testing.T) {
	s := fixedSigner("test-secret", time.Now())
	if err := s.Verify("dokumen/abc/kk.pdf", "not-a-number", "deadbeef"); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}
