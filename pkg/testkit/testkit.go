// Package testkit provides helpers for exercising HTTP handlers in tests.
package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Envelope mirrors the JSON response body every endpoint returns.
type Envelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

// Request performs an in-process HTTP request against h and returns the
// recorder. body may be nil; a non-empty token is sent as a Bearer header.
func Request(t *testing.T, h http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("testkit: marshal request body: %v", err)
		}
		rd = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// Decode parses the response envelope from rec.
func Decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("testkit: decode response %q: %v", rec.Body.String(), err)
	}
	return env
}

// DecodeData unmarshals the envelope's data field into dest.
func DecodeData(t *testing.T, rec *httptest.ResponseRecorder, dest any) Envelope {
	t.Helper()

	env := Decode(t, rec)
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, dest); err != nil {
			t.Fatalf("testkit: decode data %q: %v", string(env.Data), err)
		}
	}
	return env
}

// MultipartFile is one file part for a multipart request.
type MultipartFile struct {
	Field    string
	Filename string
	Content  []byte
}

// MultipartRequest performs an in-process multipart/form-data request,
// used for the product image upload endpoints.
func MultipartRequest(t *testing.T, h http.Handler, method, path string, fields map[string]string, files []MultipartFile, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("testkit: write field %s: %v", k, err)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			t.Fatalf("testkit: create file part %s: %v", f.Filename, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			t.Fatalf("testkit: write file part %s: %v", f.Filename, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("testkit: close multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
