package storage

// Config holds upload storage configuration
type Config struct {
	Dir               string   // Directory uploads are written to
	MaxBytes          int64    // Largest accepted upload
	AllowedExtensions []string // Lowercase, without the dot
}

const DefaultMaxBytes = 16 << 20

var DefaultAllowedExtensions = []string{"pdf", "png", "jpg", "jpeg", "doc", "docx"}
