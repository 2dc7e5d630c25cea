package filemgr

import "errors"

// PublicPrefix is the URL path under which local uploads are served.
const PublicPrefix = "/uploads/"

var (
	AllowedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	AllowedMIMEs      = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

	ErrInvalidExtension = errors.New("invalid file extension")
	ErrInvalidMIME      = errors.New("invalid MIME type")
	ErrFileTooLarge     = errors.New("file size exceeds limit")
	ErrNoHandle         = errors.New("attachment has no deletable handle")
)
