package models

// Defaults applied when a submitted characteristic omits its icon or color.
const (
	DefaultCharacteristicIcon  = "fas fa-star"
	DefaultCharacteristicColor = "primary"
)

// Characteristic represents a short iconified highlight attached to a
// project, rendered as a badge. Rendering order is (display_order, id)
// ascending.
type Characteristic struct {
	ID           uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	ProjectID    uint   `json:"project_id" db:"project_id" gorm:"not null;index:idx_characteristic_project_id"`
	Text         string `json:"text" db:"text" gorm:"type:text;not null"`
	Icon         string `json:"icon" db:"icon" gorm:"type:text;not null;default:'fas fa-star'"`
	Color        string `json:"color" db:"color" gorm:"type:text;not null;default:primary"`
	DisplayOrder int    `json:"display_order" db:"display_order" gorm:"not null;default:0"`
}
