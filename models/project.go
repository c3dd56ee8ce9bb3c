package models

import "time"

// Project represents a site project with its owned media gallery and
// characteristic badges
type Project struct {
	ID          uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Title       string `json:"title" db:"title" gorm:"type:text;not null"`
	Description string `json:"description" db:"description" gorm:"type:text;not null"`
	// Image is the legacy single-image slot, kept for projects created before
	// the media gallery existed. Nil means no legacy image is stored.
	Image     []byte    `json:"-" db:"image"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Media           []Media          `json:"media,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Characteristics []Characteristic `json:"characteristics,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

// HasImage reports whether the legacy single-image slot holds content.
func (p Project) HasImage() bool {
	return len(p.Image) > 0
}
