package pdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestReader_AcquireText_Failures(t *testing.T) {
	reader := NewReader(1024 * 1024) // 1MB limit

	tests := []struct {
		name string
		data []byte
	}{
		{
			name: "nil data",
			data: nil,
		},
		{
			name: "empty data",
			data: []byte{},
		},
		{
			name: "not a PDF",
			data: []byte("plain text, no PDF structure here at all"),
		},
		{
			name: "truncated PDF header",
			data: []byte("%PDF-1.4"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := reader.AcquireText(context.Background(), tt.data)
			if text != "" {
				t.Errorf("expected empty text for unreadable input, got %q", text)
			}
		})
	}
}

func TestReader_AcquireText_OversizedData(t *testing.T) {
	reader := NewReader(16) // tiny limit

	text := reader.AcquireText(context.Background(), make([]byte, 32))
	if text != "" {
		t.Errorf("expected empty text for oversized input, got %q", text)
	}
}

func TestReader_AcquireText_CancelledContext(t *testing.T) {
	reader := NewReader(1024 * 1024)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	text := reader.AcquireText(ctx, []byte("%PDF-1.4 whatever"))
	if text != "" {
		t.Errorf("expected empty text for cancelled context, got %q", text)
	}
}

func TestReader_ReadFile_Errors(t *testing.T) {
	reader := NewReader(1024 * 1024)

	tempDir, err := os.MkdirTemp("", "rental_reader_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	nonPDFPath := filepath.Join(tempDir, "application.txt")
	if err := os.WriteFile(nonPDFPath, []byte("not a pdf"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	tests := []struct {
		name string
		req  ReadFileRequest
	}{
		{
			name: "empty path",
			req:  ReadFileRequest{Path: ""},
		},
		{
			name: "non-existent file",
			req:  ReadFileRequest{Path: "/non/existent/file.pdf"},
		},
		{
			name: "non-PDF extension",
			req:  ReadFileRequest{Path: nonPDFPath},
		},
		{
			name: "directory instead of file",
			req:  ReadFileRequest{Path: tempDir},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := reader.ReadFile(tt.req)
			if err == nil {
				t.Errorf("expected error but got none")
			}
			if result != nil {
				t.Errorf("expected nil result on error, got %+v", result)
			}
		})
	}
}

func TestNewReader(t *testing.T) {
	maxFileSize := int64(2 * 1024 * 1024) // 2MB
	reader := NewReader(maxFileSize)

	if reader == nil {
		t.Fatal("NewReader returned nil")
	}
	if reader.maxFileSize != maxFileSize {
		t.Errorf("expected maxFileSize=%d but got %d", maxFileSize, reader.maxFileSize)
	}
}
