package storage

import (
	"fmt"
	"strings"
)

// ImageResolver turns a stored product image reference into a public URL
// suitable for the gateway basket icon field.
type ImageResolver interface {
	Resolve(path, category string, productID uint) string
}

type publicStorage struct {
	baseURL string
}

// NewPublicStorage resolves images against a public object-storage root,
// e.g. https://cdn.example. Empty paths fall back to a per-product
// placeholder under the category folder.
func NewPublicStorage(baseURL string) ImageResolver {
	return &publicStorage{baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *publicStorage) Resolve(path, category string, productID uint) string {
	if path == "" {
		return fmt.Sprintf("%s/%s/%d.png", s.baseURL, category, productID)
	}
	return s.baseURL + "/" + strings.TrimLeft(path, "/")
}
