package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/misionvictoriosa/site-backend/models"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// FindAll returns all users ordered by id
func (r *UserRepo) FindAll() ([]*models.User, error) {
	var users []*models.User
	err := r.db.Order("id").Find(&users).Error
	return users, err
}

// FindByID returns a user by its ID, or nil when no such user exists.
func (r *UserRepo) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername returns the user with the given username, or nil when no
// such user exists.
func (r *UserRepo) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameTaken reports whether another user (any user when excludeID is 0)
// already holds the given username.
func (r *UserRepo) UsernameTaken(username string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&models.User{}).Where("username = ?", username)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// Add inserts a new user into the database
func (r *UserRepo) Add(user *models.User) error {
	return r.db.Create(user).Error
}

// Update updates an existing user in the database
func (r *UserRepo) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete removes a user from the database by id
func (r *UserRepo) Delete(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}

// EnsureAdmin guarantees the protected admin account exists, creating it
// with the given password hash when absent. It reports whether the account
// was created by this call.
func (r *UserRepo) EnsureAdmin(passwordHash string) (bool, error) {
	existing, err := r.FindByUsername(models.AdminUsername)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	admin := models.User{Username: models.AdminUsername, PasswordHash: passwordHash}
	if err := r.db.Create(&admin).Error; err != nil {
		return false, err
	}
	return true, nil
}
