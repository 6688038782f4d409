// Package storage adapts Cloudinary to the ports.ImageStore interface.
package storage

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/shopstack/storefront-api/internal/core/ports"
)

const productsFolder = "products"

type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore builds a store from a cloudinary:// URL.
func NewCloudinaryStore(url string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

// Upload stores a base64 data-URI or remote URL under the products folder.
func (s *CloudinaryStore) Upload(ctx context.Context, image string) (*ports.UploadedImage, error) {
	res, err := s.cld.Upload.Upload(ctx, image, uploader.UploadParams{Folder: productsFolder})
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	return &ports.UploadedImage{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("destroy image: %w", err)
	}
	return nil
}
