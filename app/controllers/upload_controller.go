package controllers

import (
	"fmt"
	"math/rand"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/shashiranjanraj/dressshop/pkg/logger"
	"github.com/shashiranjanraj/dressshop/pkg/response"
	"github.com/shashiranjanraj/dressshop/pkg/storage"
	"github.com/shashiranjanraj/dressshop/pkg/workerpool"
)

const (
	maxUploadFiles    = 5
	maxUploadFileSize = 5 << 20 // 5 MB per image
)

var allowedImageExts = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".gif": true, ".webp": true,
}

// UploadController handles product image uploads.
type UploadController struct {
	pool *workerpool.Pool
}

// NewUploadController wires the controller. The pool bounds how many images
// are written to storage concurrently.
func NewUploadController(pool *workerpool.Pool) *UploadController {
	return &UploadController{pool: pool}
}

// UploadImages stores up to 5 product images and returns their public URLs.
// POST /api/products/upload-images (admin, multipart field "images")
func (c *UploadController) UploadImages(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadFiles * maxUploadFileSize); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		response.Error(w, http.StatusBadRequest, "No files uploaded")
		return
	}
	if len(files) > maxUploadFiles {
		response.Error(w, http.StatusBadRequest,
			fmt.Sprintf("Too many files. Maximum is %d", maxUploadFiles))
		return
	}

	// Validate everything before storing anything.
	names := make([]string, len(files))
	for i, fh := range files {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if !allowedImageExts[ext] {
			response.Error(w, http.StatusBadRequest, "Only image files are allowed")
			return
		}
		if fh.Size > maxUploadFileSize {
			response.Error(w, http.StatusBadRequest,
				fmt.Sprintf("File %s exceeds the 5MB limit", fh.Filename))
			return
		}
		names[i] = fmt.Sprintf("product-%d-%d%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), ext)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for i, fh := range files {
		i, fh := i, fh
		wg.Add(1)
		if err := c.pool.SubmitWait(func() {
			defer wg.Done()

			f, err := fh.Open()
			if err == nil {
				defer f.Close()
				err = storage.PutStream(names[i], f)
			}
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}); err != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
		}
	}
	wg.Wait()

	if firstErr != nil {
		// Best effort cleanup of whatever did land.
		for _, name := range names {
			storage.Delete(name) //nolint:errcheck
		}
		logger.WithCtx(r.Context()).Error("image upload failed", "error", firstErr)
		response.Error(w, http.StatusInternalServerError, "Failed to upload images")
		return
	}

	urls := make([]string, len(names))
	for i, name := range names {
		urls[i] = publicURL(r, name)
	}

	logger.WithCtx(r.Context()).Info("images uploaded", "count", len(urls))
	response.Success(w, map[string]interface{}{
		"message": "Images uploaded successfully",
		"images":  urls,
	})
}

// publicURL prefers the disk's configured URL; the local disk without an
// explicit base URL falls back to the request host.
func publicURL(r *http.Request, name string) string {
	if u := storage.URL(name); u != "" {
		return u
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/uploads/%s", scheme, r.Host, name)
}
