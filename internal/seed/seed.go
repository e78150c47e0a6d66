// Package seed loads recipes from a YAML file into the recipe service.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pageza/recipemanager/backend/internal/apperr"
	"github.com/pageza/recipemanager/backend/internal/log"
	"github.com/pageza/recipemanager/backend/internal/store"
	"github.com/pageza/recipemanager/backend/internal/types"
)

// File is the document layout of a seed file:
//
//	recipes:
//	  - name: Pancakes
//	    foodCategory: VEG
//	    servings: 4
//	    ingredients:
//	      - name: flour
//	    instructions: Mix and fry.
type File struct {
	Recipes []types.RecipeRequest `yaml:"recipes"`
}

// RecipeAdder is the part of the recipe service seeding needs
type RecipeAdder interface {
	AddRecipe(ctx context.Context, req *types.RecipeRequest) (*types.Recipe, error)
}

// Rejection records a recipe the service refused
type Rejection struct {
	Name   string
	Reason string
}

// Report summarises a seed run
type Report struct {
	Inserted int
	Skipped  []string
	Rejected []Rejection
}

// Parse decodes a seed document. Unknown keys are an error.
func Parse(r io.Reader) ([]types.RecipeRequest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	return f.Recipes, nil
}

// LoadFile reads and parses the seed file at path
func LoadFile(path string) ([]types.RecipeRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Apply adds every recipe in order. Duplicate names are skipped and invalid
// recipes are rejected; both are reported. Any other failure stops the run.
func Apply(ctx context.Context, svc RecipeAdder, recipes []types.RecipeRequest) (Report, error) {
	var report Report
	for i := range recipes {
		req := &recipes[i]
		_, err := svc.AddRecipe(ctx, req)
		switch {
		case err == nil:
			report.Inserted++
		case errors.Is(err, store.ErrDuplicateName):
			report.Skipped = append(report.Skipped, req.Name)
			log.Info(ctx, "seed recipe already exists", "name", req.Name)
		case apperr.KindOf(err) == apperr.KindInvalidRequest:
			report.Rejected = append(report.Rejected, Rejection{Name: req.Name, Reason: err.Error()})
			log.Warn(ctx, "seed recipe rejected", "name", req.Name, "error", err)
		default:
			return report, fmt.Errorf("seeding recipe %q: %w", req.Name, err)
		}
	}
	return report, nil
}
