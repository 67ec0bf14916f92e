package security

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool   // Whether the file passed all validation checks
	Extension    string // Normalised file extension
	DetectedMIME string // MIME type sniffed from the content
	ContentType  string // Content type to store the object with
	Error        string // Error message if validation failed
}

// Magic byte signatures for resume formats, keyed by lowercase extension.
var magicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                         // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}}, // OLE Compound Document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                         // ZIP (PK..)
	".txt":  {},                                                 // Text files have no magic bytes - rely on MIME detection
}

// resumeContentTypes is both the extension whitelist and the content type the
// object is stored and served with.
var resumeContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

// Sniffed MIME types accepted per extension. application/octet-stream is never
// accepted on its own.
var allowedMIME = map[string][]string{
	".pdf":  {"application/pdf"},
	".doc":  {"application/msword", "application/x-ole-storage"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip"},
	".txt":  {"text/plain"},
}

// FileValidator checks uploaded resumes.
type FileValidator struct {
	MaxSize int64
}

func NewFileValidator(maxSize int64) *FileValidator {
	return &FileValidator{MaxSize: maxSize}
}

// Validate performs 4-layer validation:
// 1. Size limit
// 2. Extension whitelist
// 3. Magic byte verification (content matches extension)
// 4. Sniffed MIME type whitelist
func (v *FileValidator) Validate(filename string, data []byte) FileValidationResult {
	var result FileValidationResult

	if len(data) == 0 {
		result.Error = "file is empty"
		return result
	}
	if v.MaxSize > 0 && int64(len(data)) > v.MaxSize {
		result.Error = fmt.Sprintf("file exceeds the %d MB limit", v.MaxSize>>20)
		return result
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	contentType, ok := resumeContentTypes[ext]
	if !ok {
		result.Error = "file extension not allowed: " + ext
		return result
	}
	result.ContentType = contentType

	if ext != ".txt" && !validateMagicBytes(ext, data) {
		result.Error = "file content does not match extension"
		return result
	}

	detected := mimetype.Detect(data)
	result.DetectedMIME = detected.String()
	if !mimeAllowed(ext, detected) {
		result.Error = "MIME type not allowed: " + detected.String()
		return result
	}

	result.Valid = true
	return result
}

// mimeAllowed walks the detected type and its parents, so a .docx sniffed
// only as its zip container still matches.
func mimeAllowed(ext string, detected *mimetype.MIME) bool {
	for m := detected; m != nil; m = m.Parent() {
		for _, allowed := range allowedMIME[ext] {
			if m.Is(allowed) {
				return true
			}
		}
	}
	return false
}

// validateMagicBytes checks if file content starts with expected magic bytes
func validateMagicBytes(ext string, data []byte) bool {
	if len(data) < 4 {
		return false
	}

	signatures, ok := magicBytes[ext]
	if !ok {
		return false
	}
	if len(signatures) == 0 {
		return true
	}

	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

// ContentTypeFor returns the stored content type for a key or filename, or
// application/octet-stream for unknown extensions.
func ContentTypeFor(name string) string {
	if ct, ok := resumeContentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// AllowedExtensions returns the accepted resume extensions for error messages
func AllowedExtensions() []string {
	return []string{".pdf", ".doc", ".docx", ".txt"}
}
