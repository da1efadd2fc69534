package models

// Product is a catalog entry. The catalog is read-only and seeded at startup.
type Product struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
