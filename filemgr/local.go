package filemgr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/webp"

	"blogapi/models"
)

// Local keeps uploads in a directory that the router serves under
// PublicPrefix.
type Local struct {
	dir      string
	baseURL  string
	maxSize  int64
	maxWidth int
}

func NewLocal(dir, baseURL string, maxSize int64, maxWidth int) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &Local{dir: dir, baseURL: baseURL, maxSize: maxSize, maxWidth: maxWidth}, nil
}

func (l *Local) Save(_ context.Context, r io.Reader, filename string) (models.Attachment, error) {
	ext, err := checkExtension(filename)
	if err != nil {
		return models.Attachment{}, err
	}

	buf, err := io.ReadAll(io.LimitReader(r, l.maxSize+1))
	if err != nil {
		return models.Attachment{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(buf)) > l.maxSize {
		return models.Attachment{}, ErrFileTooLarge
	}

	mimeType := http.DetectContentType(buf)
	if !isMIMEAllowed(mimeType) {
		return models.Attachment{}, fmt.Errorf("%w: %s", ErrInvalidMIME, mimeType)
	}

	buf = l.downscale(buf, ext)

	name := uuid.New().String() + ext
	fullPath := filepath.Join(l.dir, name)
	if err := os.WriteFile(fullPath, buf, 0o644); err != nil {
		return models.Attachment{}, fmt.Errorf("write %s: %w", fullPath, err)
	}
	log.Debug().Str("path", fullPath).Int("size", len(buf)).Str("mime", mimeType).Msg("Upload saved")

	return models.Attachment{URL: l.baseURL + PublicPrefix + name, PublicID: name}, nil
}

// downscale shrinks images wider than maxWidth. Anything it cannot decode or
// re-encode is returned unchanged.
func (l *Local) downscale(buf []byte, ext string) []byte {
	if l.maxWidth <= 0 {
		return buf
	}
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return buf
	}
	img, err := imaging.Decode(bytes.NewReader(buf), imaging.AutoOrientation(true))
	if err != nil || img.Bounds().Dx() <= l.maxWidth {
		return buf
	}

	resized := imaging.Resize(img, l.maxWidth, 0, imaging.Lanczos)
	var out bytes.Buffer
	if err := imaging.Encode(&out, resized, format, imaging.JPEGQuality(85)); err != nil {
		log.Warn().Err(err).Msg("Re-encoding resized image failed; keeping original")
		return buf
	}
	return out.Bytes()
}

func (l *Local) Remove(_ context.Context, att models.Attachment) error {
	name := att.PublicID
	if name == "" {
		name = fileNameFromURL(att.URL)
	}
	name = filepath.Base(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return ErrNoHandle
	}

	err := os.Remove(filepath.Join(l.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

func fileNameFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return path.Base(u.Path)
}
