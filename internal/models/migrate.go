package models

import "gorm.io/gorm"

// AutoMigrate creates or updates every relational table.
func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Post{}, "Tags", &PostTagging{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&Profile{},
		&Post{},
		&PostTag{},
		&PostTagging{},
		&Follow{},
		&Comment{},
		&Like{},
	)
}
