package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/recipemanager/backend/internal/log"
	"github.com/pageza/recipemanager/backend/internal/models"
)

// Migrate creates or updates the recipes and ingredients tables
func Migrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database handle is nil")
	}

	if err := db.AutoMigrate(&models.Recipe{}, &models.Ingredient{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Debug(context.Background(), "schema migrated", "dialect", db.Dialector.Name())
	return nil
}
