// Package transform holds the helpers shared by the per entity row to view
// model transformers: display order sorting, spec value decoding, default
// substitution and per row failure isolation.
package transform

import (
	"cmp"
	"slices"
	"strings"
)

// DefaultIcon replaces a missing feature icon.
const DefaultIcon = "check"

// Image is the view model shape of every image reference.
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// NewImage builds an Image, substituting fallbackAlt for a blank alt text.
func NewImage(url, alt, fallbackAlt string) Image {
	if strings.TrimSpace(alt) == "" {
		alt = fallbackAlt
	}
	return Image{URL: url, Alt: alt}
}

// Primary returns the first image or an empty Image.
func Primary(images []Image) Image {
	if len(images) == 0 {
		return Image{}
	}
	return images[0]
}

// Icon returns icon or DefaultIcon when blank.
func Icon(icon string) string {
	if strings.TrimSpace(icon) == "" {
		return DefaultIcon
	}
	return icon
}

// SortByDisplayOrder returns a stably sorted copy of items, ascending by order.
// A nil input yields an empty slice.
func SortByDisplayOrder[T any](items []T, order func(T) int) []T {
	out := make([]T, len(items))
	copy(out, items)
	slices.SortStableFunc(out, func(a, b T) int {
		return cmp.Compare(order(a), order(b))
	})
	return out
}

// Project sorts items by display order and maps each onto a view value.
func Project[T, V any](items []T, order func(T) int, fn func(T) V) []V {
	sorted := SortByDisplayOrder(items, order)
	out := make([]V, 0, len(sorted))
	for _, item := range sorted {
		out = append(out, fn(item))
	}
	return out
}
