package constants

import "strings"

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsPDFExt reports whether ext names a PDF file. Enforcement notices arrive
// as scanned PDFs only; other formats are skipped during ingestion.
func IsPDFExt(ext string) bool {
	return NormalizeExt(ext) == "pdf"
}
