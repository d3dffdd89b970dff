package filestorage

import (
	"mime/multipart"
	"time"
)

// FileInfo represents information about a stored file
type FileInfo struct {
	Path     string // Relative path where the file is stored
	Filename string // Original filename
	FileSize int64  // Size in bytes
	MimeType string // MIME type of the file
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile saves a file and returns the relative path where it was stored
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath lets you specify a subdirectory for storing the file
	SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error)

	// DeleteFile removes a file from storage
	DeleteFile(filePath string) error

	// GetFullPath returns the full filesystem path for a given stored path
	GetFullPath(fileURL string) string
}

// URLSigner issues and verifies expiring access URLs for stored files
type URLSigner interface {
	// SignedURL returns a time-limited URL for the stored path
	SignedURL(storagePath string, ttl time.Duration) (string, error)

	// Verify checks a signature and expiry for the stored path,
	// returning an error when the URL is tampered with or expired
	Verify(storagePath, expiresStr, signature string) error
}
