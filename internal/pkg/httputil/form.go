// Package httputil holds multipart helpers shared by the REST handlers and their tests.
package httputil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"sort"
)

// MaxFileSize caps the bytes read from a single uploaded file.
const MaxFileSize = 32 << 20

// ErrFileTooLarge is returned when an upload exceeds MaxFileSize.
var ErrFileTooLarge = errors.New("uploaded file too large")

// FormFile is one file part of a multipart body.
type FormFile struct {
	Field    string
	FileName string
	Content  []byte
}

// ReadFileHeader reads the full content of an uploaded file.
func ReadFileHeader(header *multipart.FileHeader) ([]byte, error) {
	if header == nil {
		return nil, fmt.Errorf("file header must not be nil")
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file %s: %w", header.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file %s: %w", header.Filename, err)
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("%w: %s", ErrFileTooLarge, header.Filename)
	}

	return data, nil
}

// NewMultipartBody encodes fields and files as multipart/form-data and returns
// the body with its Content-Type header value.
func NewMultipartBody(fields map[string]string, files []FormFile) (*bytes.Buffer, string, error) {
	body, writer, err := encodeMultipart(fields, files)
	if err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

func encodeMultipart(fields map[string]string, files []FormFile) (*bytes.Buffer, *multipart.Writer, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := writer.WriteField(name, fields[name]); err != nil {
			return nil, nil, fmt.Errorf("failed to write field %s: %w", name, err)
		}
	}

	for _, f := range files {
		part, err := writer.CreateFormFile(f.Field, f.FileName)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create form file %s: %w", f.Field, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, nil, fmt.Errorf("failed to write form file %s: %w", f.Field, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return &buf, writer, nil
}
