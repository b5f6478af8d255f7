package services

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// CopySink receives a generated document. A sink failure never invalidates
// the document itself; callers surface the error and keep the text.
type CopySink interface {
	Write(name, text string) (location string, err error)
}

// FileCopySink drops documents as .txt files under Dir.
type FileCopySink struct {
	Dir string
}

var reUnsafe = regexp.MustCompile(`[^a-z0-9-]+`)

// slugify turns an offer name into a safe file stem.
func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = reUnsafe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "offer"
	}
	return s
}

func (s FileCopySink) Write(name, text string) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.Dir, slugify(name)+".txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
