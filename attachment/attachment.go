// Package attachment holds uploaded files as plain values and the rules
// every multipart provider applies to them before any network call.
package attachment

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/kbukum/aigateway/httpclient"
	"github.com/kbukum/aigateway/validation"
)

const (
	// MaxFiles is the most files one request may carry.
	MaxFiles = 5
	// MaxFileSize is the per-file limit in bytes (50 MiB).
	MaxFileSize int64 = 50 << 20

	octetStream = "application/octet-stream"
)

// File is one uploaded file, read fully into memory.
type File struct {
	Filename string
	MIMEType string
	Size     int64
	Data     []byte
}

// wireSize is the larger of the declared size and the bytes that will be
// sent, so a stale Size cannot let an oversized file through.
func (f File) wireSize() int64 {
	return max(f.Size, int64(len(f.Data)))
}

// Validate checks the file count and every file's size.
func Validate(files []File) error {
	return Rules(validation.New(), files).Err()
}

// Rules adds the count and size checks to v, so callers can combine them
// with their own field rules into one error.
func Rules(v *validation.Validator, files []File) *validation.Validator {
	v.Count("files", len(files), 1, MaxFiles)
	for _, f := range files {
		v.MaxSize("files", f.wireSize(), MaxFileSize)
	}
	return v
}

// Multipart puts every file under field, keeping names and types.
func Multipart(field string, files []File) *httpclient.MultipartBody {
	body := &httpclient.MultipartBody{}
	for _, f := range files {
		body.AddFile(field, f.Filename, f.MIMEType, f.Data)
	}
	return body
}

// Accept reports whether a MIME type is allowed for a provider.
type Accept func(mimeType string) bool

// AcceptOCR allows images and PDFs.
func AcceptOCR(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/") || mimeType == "application/pdf"
}

// AcceptSpeech allows audio, plus octet-stream for clients that send none.
func AcceptSpeech(mimeType string) bool {
	return strings.HasPrefix(mimeType, "audio/") || mimeType == octetStream
}

// CheckTypes rejects the first file accept refuses, using message as the
// validation error text.
func CheckTypes(files []File, accept Accept, message string) error {
	for _, f := range files {
		if !accept(f.MIMEType) {
			msg := fmt.Sprintf("%s (%s: %s)", message, f.Filename, f.MIMEType)
			return validation.New().Custom(false, "files", msg).Err()
		}
	}
	return nil
}

// FromFileHeader reads an uploaded part. The declared Content-Type is kept
// unless it is missing or generic, in which case the content is sniffed.
func FromFileHeader(fh *multipart.FileHeader) (File, error) {
	src, err := fh.Open()
	if err != nil {
		return File{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer func() { _ = src.Close() }()

	data, err := io.ReadAll(src)
	if err != nil {
		return File{}, fmt.Errorf("read %s: %w", fh.Filename, err)
	}

	return File{
		Filename: fh.Filename,
		MIMEType: resolveType(fh.Header.Get("Content-Type"), data),
		Size:     int64(len(data)),
		Data:     data,
	}, nil
}

// FromFileHeaders reads every part in order.
func FromFileHeaders(headers []*multipart.FileHeader) ([]File, error) {
	files := make([]File, 0, len(headers))
	for _, fh := range headers {
		f, err := FromFileHeader(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// FromPath reads a file from disk and sniffs its type.
func FromPath(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	return File{
		Filename: filepath.Base(path),
		MIMEType: resolveType("", data),
		Size:     int64(len(data)),
		Data:     data,
	}, nil
}

func resolveType(declared string, data []byte) string {
	declared = baseType(declared)
	if declared != "" && declared != octetStream {
		return declared
	}
	return baseType(mimetype.Detect(data).String())
}

// baseType drops parameters: "text/plain; charset=utf-8" becomes "text/plain".
func baseType(s string) string {
	t, _, _ := strings.Cut(s, ";")
	return strings.ToLower(strings.TrimSpace(t))
}
