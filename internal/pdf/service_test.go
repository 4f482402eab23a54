package pdf

import (
	"context"
	"testing"
)

func TestNewService(t *testing.T) {
	maxFileSize := int64(1024 * 1024)
	service := NewService(maxFileSize)

	if service == nil {
		t.Fatal("NewService returned nil")
	}
	if service.reader == nil {
		t.Error("reader component not initialized")
	}
	if service.raw == nil {
		t.Error("raw decoder component not initialized")
	}
	if service.validator == nil {
		t.Error("validator component not initialized")
	}
	if service.stats == nil {
		t.Error("stats component not initialized")
	}
	if service.GetMaxFileSize() != maxFileSize {
		t.Errorf("expected max file size %d but got %d", maxFileSize, service.GetMaxFileSize())
	}
}

func TestService_CollaboratorContracts(t *testing.T) {
	service := NewService(1024 * 1024)

	// Acquisition never errors; unreadable input yields empty text.
	if text := service.AcquireText(context.Background(), []byte("not a pdf")); text != "" {
		t.Errorf("expected empty text for unreadable bytes, got %q", text)
	}

	// Raw decoding scrapes literal strings even from broken documents.
	raw := service.DecodeRaw([]byte("junk (Rental Application for John Smith) junk"))
	if raw != "Rental Application for John Smith" {
		t.Errorf("unexpected raw decode output: %q", raw)
	}
}

func TestService_ValidateFile(t *testing.T) {
	service := NewService(1024 * 1024)

	result, err := service.ValidateFile(ValidateFileRequest{Path: "/non/existent/file.pdf"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Valid {
		t.Error("expected invalid result for non-existent file")
	}
}
