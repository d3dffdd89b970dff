package filestorage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Signed URL errors
var (
	ErrSignatureInvalid = errors.New("invalid signature")
	ErrSignatureExpired = errors.New("signature expired")
)

// HMACSigner issues expiring URLs for stored files. The signature
// covers the storage path and the unix expiry so neither can be
// changed without invalidating the URL.
type HMACSigner struct {
	secret   []byte
	basePath string // URL path prefix where files are served, e.g. /api/v1/files
	now      func() time.Time
}

// NewHMACSigner creates a signer with the given secret and serving prefix.
func NewHMACSigner(secret, basePath string) *HMACSigner {
	return &HMACSigner{
		secret:   []byte(secret),
		basePath: basePath,
		now:      time.Now,
	}
}

// SignedURL returns a time-limited URL for the stored path.
func (s *HMACSigner) SignedURL(storagePath string, ttl time.Duration) (string, error) {
	if storagePath == "" {
		return "", fmt.Errorf("empty storage path")
	}

	expires := s.now().Add(ttl).Unix()
	sig := s.sign(storagePath, expires)

	q := url.Values{}
	q.Set("expires", strconv.FormatInt(expires, 10))
	q.Set("signature", sig)

	return s.basePath + "/" + storagePath + "?" + q.Encode(), nil
}

// Verify checks a signature and expiry for the stored path.
func (s *HMACSigner) Verify(storagePath, expiresStr, signature string) error {
	expires, err := strconv.ParseInt(expiresStr, 10, 64)
	if err != nil {
		return ErrSignatureInvalid
	}

	expected := s.sign(storagePath, expires)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureInvalid
	}

	if s.now().Unix() > expires {
		return ErrSignatureExpired
	}

	return nil
}

func (s *HMACSigner) sign(storagePath string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s:%d", storagePath, expires)
	return hex.EncodeToString(mac.Sum(nil))
}
