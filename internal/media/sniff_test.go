package media

import (
	"bytes"
	"strings"
	"testing"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestDetectContentTypeTrustsBytesOverDeclared(t *testing.T) {
	got := DetectContentType(bytes.NewReader(pngHeader), "video/mp4")
	if got != "image/png" {
		t.Fatalf("expected image/png got %q", got)
	}
}

func TestDetectContentTypeFallsBackToDeclared(t *testing.T) {
	got := DetectContentType(bytes.NewReader([]byte{0x00, 0x01, 0x02, 0x03}), "video/x-custom")
	if got != "video/x-custom" {
		t.Fatalf("expected declared type, got %q", got)
	}
}

func TestDetectContentTypeKeepsTextOverDeclaredImage(t *testing.T) {
	got := DetectContentType(strings.NewReader("<?php echo 'hi'; ?>\n"), "image/png")
	if got == "image/png" {
		t.Fatalf("text content must not pass as the declared image type")
	}
	if got != "text/plain" && !strings.HasPrefix(got, "text/") {
		t.Fatalf("expected a text type, got %q", got)
	}
}

func TestDetectContentTypePlainText(t *testing.T) {
	got := DetectContentType(strings.NewReader("just some notes about the flat\n"), "image/jpeg")
	if got != "text/plain" {
		t.Fatalf("expected text/plain got %q", got)
	}
}
