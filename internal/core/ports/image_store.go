package ports

import "context"

// UploadedImage identifies a stored image: the public URL served to
// clients and the provider id needed to delete it later.
type UploadedImage struct {
	URL      string
	PublicID string
}

// ImageStore abstracts the external image hosting service.
type ImageStore interface {
	// Upload stores a base64 data-URI or remote URL under the products
	// folder and returns its public location.
	Upload(ctx context.Context, image string) (*UploadedImage, error)
	Delete(ctx context.Context, publicID string) error
}
