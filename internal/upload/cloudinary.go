// Package upload wraps the image host. Handlers hand it a multipart file and
// get back a serving URL plus the public id needed to delete the asset later.
package upload

import (
	"context"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"blogapi/internal/apperr"
)

// MaxFileSize caps uploaded images at 5 MiB.
const MaxFileSize = 5 << 20

type Client struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func New(cloudName, apiKey, apiSecret, folder string) (*Client, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &Client{cld: cld, folder: folder}, nil
}

// ValidateImage rejects non-image content types and oversized files before
// anything leaves the process.
func ValidateImage(contentType string, size int64) error {
	if !strings.HasPrefix(contentType, "image/") {
		return apperr.BadRequest("only image uploads are allowed, got '%s'", contentType)
	}
	if size > MaxFileSize {
		return apperr.BadRequest("image too large, the limit is %d bytes", int64(MaxFileSize))
	}
	return nil
}

// Upload stores the image under a fresh public id and returns its URL.
func (c *Client) Upload(ctx context.Context, r io.Reader) (url, publicID string, err error) {
	resp, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID: uuid.NewString(),
		Folder:   c.folder,
	})
	if err != nil {
		return "", "", apperr.Upstream("unable to upload photo, please try again", err)
	}
	return resp.SecureURL, resp.PublicID, nil
}

// Destroy removes a previously uploaded asset by its public id.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	_, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return apperr.Upstream("unable to delete photo", err)
	}
	return nil
}
