package common

import (
	"path/filepath"
	"strings"

	anyascii "github.com/anyascii/go"
)

// SafeFileName transliterates a document name to ASCII so sidecar and JSON
// artifact names stay portable across filesystems and sheet links.
func SafeFileName(name string) string {
	s := anyascii.Transliterate(name)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// DocumentName returns the base name of a document path without its extension.
func DocumentName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
