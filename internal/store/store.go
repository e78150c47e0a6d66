// Package store persists recipes together with their ingredients and
// answers predicate-filtered, paginated queries over them.
package store

import (
	"context"
	"fmt"

	"github.com/pageza/recipemanager/backend/internal/apperr"
	"github.com/pageza/recipemanager/backend/internal/models"
	"github.com/pageza/recipemanager/backend/internal/search"
)

var (
	// ErrNotFound is returned when no recipe has the requested id.
	ErrNotFound = fmt.Errorf("%w: recipe not found by given id", apperr.ErrNotFound)
	// ErrDuplicateName is returned when a write would give two recipes the
	// same name.
	ErrDuplicateName = fmt.Errorf("%w: recipe name already exists", apperr.ErrInvalidRequest)
)

// RecipeStore is the persistence contract of the recipe service. A recipe
// and its ingredients are always written as one unit; callers never observe
// a partially written recipe.
type RecipeStore interface {
	Get(ctx context.Context, id uint) (*models.Recipe, error)
	// FindByName returns (nil, nil) when no recipe has the name.
	FindByName(ctx context.Context, name string) (*models.Recipe, error)
	ListAll(ctx context.Context) ([]*models.Recipe, error)
	// FindPage applies pred, orders by page.Sort with an id tie-break and
	// returns the page window plus the total number of matches.
	FindPage(ctx context.Context, pred search.Predicate, page search.Page) ([]*models.Recipe, int64, error)
	// Insert ignores any ids on recipe and its ingredients and returns the
	// stored copy with the assigned ones.
	Insert(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
	// Replace overwrites every mutable field of the recipe with the given id
	// and swaps its ingredients wholesale.
	Replace(ctx context.Context, id uint, recipe *models.Recipe) (*models.Recipe, error)
	Delete(ctx context.Context, id uint) error
}
