package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/pageza/recipemanager/backend/internal/models"
	"github.com/pageza/recipemanager/backend/internal/search"
)

// MemoryStore is a RecipeStore held in process memory. Records are cloned
// on the way in and on the way out so callers never share state with the
// store.
type MemoryStore struct {
	mu               sync.RWMutex
	recipes          map[uint]*models.Recipe
	nextID           uint
	nextIngredientID uint
}

var _ RecipeStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		recipes:          make(map[uint]*models.Recipe),
		nextID:           1,
		nextIngredientID: 1,
	}
}

func (s *MemoryStore) Get(_ context.Context, id uint) (*models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r.Clone(), nil
}

func (s *MemoryStore) FindByName(_ context.Context, name string) (*models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.recipes {
		if r.Name == name {
			return r.Clone(), nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) ListAll(_ context.Context) ([]*models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot(), nil
}

func (s *MemoryStore) FindPage(ctx context.Context, pred search.Predicate, page search.Page) ([]*models.Recipe, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	s.mu.RLock()
	all := s.snapshot()
	s.mu.RUnlock()

	matched := pred.Filter(all)
	return page.Window(matched), int64(len(matched)), nil
}

func (s *MemoryStore) Insert(_ context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(recipe.Name, 0) {
		return nil, ErrDuplicateName
	}

	rec := recipe.Clone()
	rec.ID = s.nextID
	s.nextID++
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	s.assignIngredientIDs(rec)

	s.recipes[rec.ID] = rec
	return rec.Clone(), nil
}

func (s *MemoryStore) Replace(_ context.Context, id uint, recipe *models.Recipe) (*models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.recipes[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.nameTaken(recipe.Name, id) {
		return nil, ErrDuplicateName
	}

	rec := recipe.Clone()
	rec.ID = id
	rec.CreatedAt = stored.CreatedAt
	rec.UpdatedAt = time.Now().UTC()
	s.assignIngredientIDs(rec)

	s.recipes[id] = rec
	return rec.Clone(), nil
}

func (s *MemoryStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[id]; !ok {
		return ErrNotFound
	}
	delete(s.recipes, id)
	return nil
}

// snapshot returns clones of every recipe in id order. Callers hold mu.
func (s *MemoryStore) snapshot() []*models.Recipe {
	out := make([]*models.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, r.Clone())
	}
	slices.SortFunc(out, func(a, b *models.Recipe) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}

func (s *MemoryStore) nameTaken(name string, owner uint) bool {
	for id, r := range s.recipes {
		if id != owner && r.Name == name {
			return true
		}
	}
	return false
}

func (s *MemoryStore) assignIngredientIDs(r *models.Recipe) {
	for i := range r.Ingredients {
		r.Ingredients[i].ID = s.nextIngredientID
		r.Ingredients[i].RecipeID = r.ID
		s.nextIngredientID++
	}
}
