package util

import (
	"bytes"
	"testing"
)

// PNG 文件头魔数
var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func TestValidateMimeType(t *testing.T) {
	mimeType, err := ValidateMimeType(bytes.NewReader(pngHeader), []string{MimeImage})
	if err != nil {
		t.Fatalf("ValidateMimeType(png) error: %v", err)
	}
	if mimeType != "image/png" {
		t.Errorf("mimeType = %q, want image/png", mimeType)
	}
}

func TestValidateMimeTypeRejected(t *testing.T) {
	pdf := []byte("%PDF-1.4 some content")
	mimeType, err := ValidateMimeType(bytes.NewReader(pdf), []string{MimeImage})
	if err == nil {
		t.Fatal("expected error for pdf against image allow list")
	}
	if mimeType != MimePDF {
		t.Errorf("mimeType = %q, want %q", mimeType, MimePDF)
	}

	if _, err := ValidateMimeType(bytes.NewReader(pdf), []string{MimeImage, MimePDF}); err != nil {
		t.Errorf("pdf should pass when listed: %v", err)
	}
}

func TestMimePredicates(t *testing.T) {
	if !IsImage("image/jpeg") || IsImage("video/mp4") {
		t.Error("IsImage misclassified")
	}
	if !IsVideo("video/mp4") || IsVideo("image/png") {
		t.Error("IsVideo misclassified")
	}
	if !IsPDF("application/pdf") || IsPDF("application/zip") {
		t.Error("IsPDF misclassified")
	}
}
