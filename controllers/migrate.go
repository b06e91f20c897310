package controllers

import (
	"gorm.io/gorm"

	"github.com/khawajaawaiz/goblog/models"
)

// MigrateModels creates or updates the users and blog_posts tables.
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Post{})
}
