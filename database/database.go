package database

import (
	"gorm.io/gorm"

	"github.com/misionvictoriosa/site-backend/models"
)

type Database struct {
	db          *gorm.DB
	userRepo    *UserRepo
	projectRepo *ProjectRepo
	mediaRepo   *MediaRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:          db,
		userRepo:    NewUserRepo(db),
		projectRepo: NewProjectRepo(db),
		mediaRepo:   NewMediaRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) MediaRepo() *MediaRepo {
	return d.mediaRepo
}

// Transaction runs fn inside one database transaction. The callback receives
// a Database whose repositories are bound to the transaction; any error from
// fn rolls back every write made through it.
func (d Database) Transaction(fn func(tx Database) error) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Migrate ensures the schema for all models exists.
func (d Database) Migrate() error {
	return d.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Media{},
		&models.Characteristic{},
	)
}
