package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipemanager/backend/internal/apperr"
	"github.com/pageza/recipemanager/backend/internal/models"
	"github.com/pageza/recipemanager/backend/internal/search"
)

var sortColumns = map[search.SortField]string{
	search.SortByID:           "id",
	search.SortByName:         "name",
	search.SortByServings:     "servings",
	search.SortByFoodCategory: "food_category",
}

// GormStore keeps recipes in the recipes and ingredients tables of a SQL
// database reached through gorm.
type GormStore struct {
	db *gorm.DB
}

var _ RecipeStore = (*GormStore)(nil)

// NewGormStore creates a store on db. The schema must already be migrated.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func orderedIngredients(db *gorm.DB) *gorm.DB {
	return db.Order("ingredients.id ASC")
}

// Get retrieves a recipe by ID
func (s *GormStore) Get(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).Preload("Ingredients", orderedIngredients).First(&recipe, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperr.Storage("get recipe", err)
	}
	return &recipe, nil
}

// FindByName retrieves a recipe by its exact name
func (s *GormStore) FindByName(ctx context.Context, name string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).Preload("Ingredients", orderedIngredients).
		Where("name = ?", name).
		Take(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage("find recipe by name", err)
	}
	return &recipe, nil
}

// ListAll returns every recipe in id order
func (s *GormStore) ListAll(ctx context.Context) ([]*models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Preload("Ingredients", orderedIngredients).Order("id ASC").Find(&recipes).Error; err != nil {
		return nil, apperr.Storage("list recipes", err)
	}
	return pointers(recipes), nil
}

// FindPage runs the count and the page query in one transaction so the
// total and the window come from the same snapshot.
func (s *GormStore) FindPage(ctx context.Context, pred search.Predicate, page search.Page) ([]*models.Recipe, int64, error) {
	var (
		total   int64
		recipes []models.Recipe
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scopes, err := compile(tx, pred)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Recipe{}).Scopes(scopes...).Count(&total).Error; err != nil {
			return err
		}
		offset := page.Offset()
		if total == 0 || offset < 0 || int64(offset) >= total {
			return nil
		}
		return tx.Model(&models.Recipe{}).Scopes(scopes...).
			Preload("Ingredients", orderedIngredients).
			Order(orderBy(page)).
			Offset(offset).
			Limit(page.Size).
			Find(&recipes).Error
	})
	if err != nil {
		return nil, 0, apperr.Storage("search recipes", err)
	}
	return pointers(recipes), total, nil
}

// compile translates pred into gorm scopes. Ingredient exclusion is the
// only condition that touches the database here: the ids of recipes
// holding an excluded ingredient are plucked first and then negated.
func compile(tx *gorm.DB, pred search.Predicate) ([]func(*gorm.DB) *gorm.DB, error) {
	var scopes []func(*gorm.DB) *gorm.DB
	add := func(query string, args ...interface{}) {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where(query, args...) })
	}

	for _, c := range pred.Conditions() {
		switch c.Field {
		case search.FieldName:
			add("recipes.name = ?", c.Text)
		case search.FieldFoodCategory:
			add("recipes.food_category = ?", c.Text)
		case search.FieldServings:
			add("recipes.servings = ?", c.Number)
		case search.FieldInstructions:
			add(`LOWER(recipes.instructions) LIKE ? ESCAPE '\'`, "%"+escapeLike(c.Text)+"%")
		case search.FieldIngredients:
			if c.Op == search.OpAnyOf {
				sub := tx.Model(&models.Ingredient{}).Select("recipe_id").Where("name IN ?", c.Values)
				add("recipes.id IN (?)", sub)
				continue
			}
			var excluded []uint
			if err := tx.Model(&models.Ingredient{}).Where("name IN ?", c.Values).Distinct().Pluck("recipe_id", &excluded).Error; err != nil {
				return nil, err
			}
			if len(excluded) > 0 {
				add("recipes.id NOT IN ?", excluded)
			}
		}
	}

	return scopes, nil
}

func orderBy(page search.Page) clause.OrderBy {
	desc := page.Direction == search.Desc
	col, ok := sortColumns[page.Sort]
	if !ok {
		col = "id"
	}
	columns := []clause.OrderByColumn{{Column: clause.Column{Table: "recipes", Name: col}, Desc: desc}}
	if col != "id" {
		columns = append(columns, clause.OrderByColumn{Column: clause.Column{Table: "recipes", Name: "id"}, Desc: desc})
	}
	return clause.OrderBy{Columns: columns}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Insert creates the recipe and its ingredients in one transaction. The
// name check runs inside the transaction and the unique index on
// recipes.name catches concurrent inserts that slip past it.
func (s *GormStore) Insert(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	rec := recipe.Clone()
	rec.ID = 0
	for i := range rec.Ingredients {
		rec.Ingredients[i].ID = 0
		rec.Ingredients[i].RecipeID = 0
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureNameFree(tx, rec.Name, 0); err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
	if err != nil {
		return nil, translateWriteError("insert recipe", err)
	}
	return rec, nil
}

// Replace updates all mutable columns and swaps the ingredient rows
func (s *GormStore) Replace(ctx context.Context, id uint, recipe *models.Recipe) (*models.Recipe, error) {
	var stored models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&stored, id).Error; err != nil {
			return err
		}
		if err := ensureNameFree(tx, recipe.Name, id); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&stored).
			Select("Name", "FoodCategory", "Servings", "Instructions").
			Updates(models.Recipe{
				Name:         recipe.Name,
				FoodCategory: recipe.FoodCategory,
				Servings:     recipe.Servings,
				Instructions: recipe.Instructions,
			}).Error; err != nil {
			return err
		}
		if len(recipe.Ingredients) > 0 {
			ings := make([]models.Ingredient, len(recipe.Ingredients))
			for i, ing := range recipe.Ingredients {
				ings[i] = models.Ingredient{RecipeID: id, Name: ing.Name}
			}
			if err := tx.Create(&ings).Error; err != nil {
				return err
			}
		}
		stored = models.Recipe{}
		return tx.Preload("Ingredients", orderedIngredients).First(&stored, id).Error
	})
	if err != nil {
		return nil, translateWriteError("replace recipe", err)
	}
	return &stored, nil
}

// Delete removes the recipe and its ingredients
func (s *GormStore) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Select("id").First(&recipe, id).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
	if err != nil {
		return translateWriteError("delete recipe", err)
	}
	return nil
}

func ensureNameFree(tx *gorm.DB, name string, owner uint) error {
	var count int64
	q := tx.Model(&models.Recipe{}).Where("name = ?", name)
	if owner != 0 {
		q = q.Where("id <> ?", owner)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateName
	}
	return nil
}

func translateWriteError(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, ErrDuplicateName), errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateName
	default:
		return apperr.Storage(op, err)
	}
}

func pointers(recipes []models.Recipe) []*models.Recipe {
	result := make([]*models.Recipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result
}
