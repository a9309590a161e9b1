// Package slugs derives URL slugs for content titles and resolves collisions
// with a short random suffix.
package slugs

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Exists reports whether a slug is already taken.
type Exists func(ctx context.Context, s string) (bool, error)

// Derive converts a title into a URL slug.
func Derive(title string) string {
	return slug.Make(title)
}

// DeriveUnique derives a slug from title and, when it is already taken,
// appends a short random suffix until a free slug is found.
func DeriveUnique(ctx context.Context, title string, exists Exists) (string, error) {
	base := Derive(title)
	candidate := base
	for i := 0; i < 5; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("slug lookup: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		suffix := strings.Split(uuid.NewString(), "-")[0]
		candidate = base + "-" + suffix
	}
	return "", fmt.Errorf("slug: could not find a free slug for %q", title)
}
