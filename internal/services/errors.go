package services

import (
	"fmt"

	"github.com/eduflex/backend/internal/repositories"
)

// Unpublished content is invisible outside management surfaces, so services
// report it exactly like a missing row.
func errNotFoundCourse() error {
	return fmt.Errorf("course %w", repositories.ErrNotFound)
}
