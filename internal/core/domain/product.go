package domain

import "time"

// Product is a catalog entry. Prices are stored in integer minor
// currency units (cents) to keep money arithmetic exact.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	PriceCents    int64     `json:"price_cents"`
	ImageURL      string    `json:"image_url,omitempty"`
	ImagePublicID string    `json:"-"`
	Category      string    `json:"category"`
	IsFeatured    bool      `json:"is_featured"`
	CreatedAt     time.Time `json:"created_at"`
}

// CartProduct is a product resolved against a cart line, carrying the
// stored quantity alongside the current catalog record.
type CartProduct struct {
	Product
	Quantity int `json:"quantity"`
}
