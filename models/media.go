package models

import "time"

// MediaKindImage is the only media kind currently stored.
const MediaKindImage = "image"

// LegacyImageOrder sorts the synthetic legacy-image entry ahead of every
// gallery row in combined image lists.
const LegacyImageOrder = -1

// Media represents an ordered binary image owned by a project. Rendering
// order is (display_order, id) ascending.
type Media struct {
	ID           uint      `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	ProjectID    uint      `json:"project_id" db:"project_id" gorm:"not null;index:idx_media_project_id"`
	Kind         string    `json:"kind" db:"kind" gorm:"type:text;not null;default:image"`
	Name         string    `json:"name" db:"name" gorm:"type:text"`
	Content      []byte    `json:"-" db:"content" gorm:"not null"`
	DisplayOrder int       `json:"display_order" db:"display_order" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
