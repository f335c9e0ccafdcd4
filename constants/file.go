package constants

import "strings"

// AllowedExtensions holds the default allowed file extensions for OCR dump ingestion.
// The pipeline consumes text already produced by the OCR collaborator.
var AllowedExtensions = map[string]struct{}{
	"txt": {},
	"ocr": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
