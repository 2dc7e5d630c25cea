package filemgr

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"blogapi/models"
)

// Storage persists uploaded images and removes them again.
type Storage interface {
	// Save stores the bytes read from r. filename is only a hint used for
	// the extension check and the stored name.
	Save(ctx context.Context, r io.Reader, filename string) (models.Attachment, error)
	// Remove deletes a previously saved attachment. Removing something that
	// is already gone is not an error.
	Remove(ctx context.Context, att models.Attachment) error
}

func checkExtension(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(AllowedExtensions, ext) {
		return "", fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
	}
	return ext, nil
}

func isMIMEAllowed(mimeType string) bool {
	return slices.Contains(AllowedMIMEs, mimeType)
}
