// Package resources holds the API transformers shaping model JSON.
package resources

import (
	"encoding/json"
	"fmt"

	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/pkg/resource"
	"github.com/ordena/ordena/pkg/storage"
)

// ProductResource shapes a product for API responses, adding the public
// image URL and an availability flag.
type ProductResource struct{ resource.Base }

func (r *ProductResource) ToArray(v interface{}) resource.Map {
	p := asModel[models.Product](v)

	imageURL := ""
	if p.ImagePath != "" {
		imageURL = storage.URL(p.ImagePath)
	}

	return resource.Map{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"stock":       p.Stock,
		"category":    p.Category,
		"active":      p.Active,
		"available":   p.Active && p.Stock > 0,
		"image_url":   imageURL,
		"links":       resource.Map{"self": fmt.Sprintf("/api/products/%d", p.ID)},
	}
}

// asModel recovers a typed model from either the model itself or the
// generic map produced by collection marshalling.
func asModel[T any](v interface{}) T {
	if m, ok := v.(T); ok {
		return m
	}
	var m T
	raw, err := json.Marshal(v)
	if err != nil {
		return m
	}
	_ = json.Unmarshal(raw, &m)
	return m
}
