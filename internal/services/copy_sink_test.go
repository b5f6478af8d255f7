package services_test

import (
	"os"
	"strings"
	"testing"

	"offerkit/internal/services"
)

func TestFileCopySinkWrite(t *testing.T) {
	sink := services.FileCopySink{Dir: t.TempDir()}

	path, err := sink.Write("Paint With Confidence!", "hero\n\nfaq")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(path, "paint-with-confidence.txt") {
		t.Fatalf("unexpected export path %q", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "hero\n\nfaq" {
		t.Fatalf("document mangled on export: %q", b)
	}
}

func TestFileCopySinkEmptyName(t *testing.T) {
	sink := services.FileCopySink{Dir: t.TempDir()}
	path, err := sink.Write("   ", "text")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(path, "offer.txt") {
		t.Fatalf("empty names should export as offer.txt, got %q", path)
	}
}
