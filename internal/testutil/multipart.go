package testutil

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

type FormFile struct {
	Field    string
	Name     string
	Contents []byte
}

// NewMultipartRequest builds a multipart/form-data request with the given
// text fields and files.
func NewMultipartRequest(t *testing.T, method, target string, fields map[string]string, files ...FormFile) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Name)
		if err != nil {
			t.Fatalf("create form file %s: %v", f.Field, err)
		}
		if _, err = part.Write(f.Contents); err != nil {
			t.Fatalf("write form file %s: %v", f.Field, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// FileHeader returns the parsed header of a single uploaded file.
func FileHeader(t *testing.T, field, name string, contents []byte) *multipart.FileHeader {
	t.Helper()
	req := NewMultipartRequest(t, http.MethodPost, "/", nil, FormFile{Field: field, Name: name, Contents: contents})
	if err := req.ParseMultipartForm(64 << 20); err != nil {
		t.Fatalf("parse multipart form: %v", err)
	}
	return req.MultipartForm.File[field][0]
}

var (
	pngSignature = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	mp4Header    = []byte("\x00\x00\x00\x18ftypisom\x00\x00\x02\x00isomiso2")
)

func padded(prefix []byte, size int) []byte {
	if size < len(prefix) {
		size = len(prefix)
	}
	out := make([]byte, size)
	copy(out, prefix)
	return out
}

// PNG returns size bytes that sniff as image/png.
func PNG(size int) []byte {
	return padded(pngSignature, size)
}

// MP4 returns size bytes that sniff as video/mp4.
func MP4(size int) []byte {
	return padded(mp4Header, size)
}
