package models

import "golang.org/x/crypto/bcrypt"

// AdminUsername is the distinguished account that gates user management and
// can never be deleted.
const AdminUsername = "admin"

// User represents an administrator account
type User struct {
	ID           uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Username     string `json:"username" db:"username" gorm:"type:text;not null;unique"`
	PasswordHash string `json:"-" db:"password_hash" gorm:"type:text;not null"`
}

// IsAdmin reports whether this account is the protected admin identity.
func (u User) IsAdmin() bool {
	return u.Username == AdminUsername
}

// CheckPassword verifies a plaintext password against the stored hash.
func (u User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// HashPassword produces a salted bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
