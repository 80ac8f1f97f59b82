// Package storage abstracts where uploaded product images live.
//
// Two drivers are available:
//   - "local" — files under the uploads directory, served at /uploads/*
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Boot once in internal/server, then:
//
//	storage.Put("product-ab12.jpg", data)
//	url := storage.URL("product-ab12.jpg")
package storage

import "io"

// Disk is the filesystem driver interface.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// GetStream returns a ReadCloser for the file. Caller must close it.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Size returns the byte size of the file.
	Size(path string) (int64, error)

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(path string) error

	// URL returns the public URL for path, or "" when the driver has no
	// configured public prefix (the caller derives one from the request).
	URL(path string) string
}
