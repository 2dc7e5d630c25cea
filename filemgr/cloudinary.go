package filemgr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"blogapi/models"
)

// Cloudinary stores uploads on the Cloudinary media host.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinary prefers a full CLOUDINARY_URL and falls back to the
// separate credentials.
func NewCloudinary(rawURL, cloudName, apiKey, apiSecret, folder string) (*Cloudinary, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if rawURL != "" {
		cld, err = cloudinary.NewFromURL(rawURL)
	} else {
		cld, err = cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary client: %w", err)
	}
	return &Cloudinary{cld: cld, folder: folder}, nil
}

func (c *Cloudinary) Save(ctx context.Context, r io.Reader, filename string) (models.Attachment, error) {
	if _, err := checkExtension(filename); err != nil {
		return models.Attachment{}, err
	}

	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{Folder: c.folder})
	if err != nil {
		return models.Attachment{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return models.Attachment{}, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return models.Attachment{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func (c *Cloudinary) Remove(ctx context.Context, att models.Attachment) error {
	publicID := att.PublicID
	if publicID == "" {
		publicID = PublicIDFromURL(att.URL)
	}
	if publicID == "" {
		return ErrNoHandle
	}

	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy %s: %w", publicID, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy %s: %s", publicID, res.Error.Message)
	}
	switch res.Result {
	case "ok", "not found":
		return nil
	default:
		return errors.New("cloudinary destroy " + publicID + ": " + res.Result)
	}
}

var versionSegment = regexp.MustCompile(`^v\d+$`)

// PublicIDFromURL recovers the public id from a Cloudinary delivery URL such
// as https://res.cloudinary.com/demo/image/upload/v1712/blogs/cat.jpg, which
// yields "blogs/cat". It returns "" for URLs that are not delivery URLs.
func PublicIDFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	_, rest, found := strings.Cut(u.Path, "/upload/")
	if !found || rest == "" {
		return ""
	}

	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) > 1 && versionSegment.MatchString(parts[0]) {
		parts = parts[1:]
	}
	last := parts[len(parts)-1]
	if dot := strings.LastIndex(last, "."); dot > 0 {
		parts[len(parts)-1] = last[:dot]
	}
	return strings.Join(parts, "/")
}
