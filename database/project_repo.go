package database

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/misionvictoriosa/site-backend/models"
)

// MediaUpload is one accepted gallery file from a form submission. Empty
// filenames and zero-length files are filtered out before this point.
type MediaUpload struct {
	Name    string
	Content []byte
}

// CharacteristicInput is a newly submitted characteristic. Index is the
// entry's position among all submitted new-characteristic rows, blank ones
// included, and becomes the basis for its display order.
type CharacteristicInput struct {
	Text  string
	Icon  string
	Color string
	Index int
}

// CharacteristicUpdate is an in-place edit of an existing characteristic.
// Nil fields keep the stored value; they arise when the submitted parallel
// lists were shorter than the id list.
type CharacteristicUpdate struct {
	ID    uint
	Text  *string
	Icon  *string
	Color *string
}

// ProjectEdit is the full set of changes from one edit-form submission,
// applied atomically.
type ProjectEdit struct {
	Title       string
	Description string
	// Image replaces the legacy single image when non-nil; nil keeps the
	// stored bytes untouched.
	Image                 []byte
	NewMedia              []MediaUpload
	UpdateCharacteristics []CharacteristicUpdate
	DeleteCharacteristics []uint
	NewCharacteristics    []CharacteristicInput
}

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// preloadOrdered loads the media gallery and characteristics in their
// rendering order, (display_order, id) ascending.
func preloadOrdered(db *gorm.DB) *gorm.DB {
	order := func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order, id")
	}
	return db.Preload("Media", order).Preload("Characteristics", order)
}

// FindAll returns all projects, newest id first, with ordered media and
// characteristics.
func (r *ProjectRepo) FindAll() ([]*models.Project, error) {
	var projects []*models.Project
	err := preloadOrdered(r.db).Order("id DESC").Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID with ordered media and
// characteristics, or nil when it does not exist.
func (r *ProjectRepo) FindByID(id uint) (*models.Project, error) {
	var project models.Project
	err := preloadOrdered(r.db).First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Create inserts a project together with its gallery uploads and new
// characteristics in one transaction. Gallery rows are numbered 1..K in
// submission order; characteristic display order is the submission index.
func (r *ProjectRepo) Create(project *models.Project, gallery []MediaUpload, characteristics []CharacteristicInput) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		order := 1
		for _, upload := range gallery {
			media := models.Media{
				ProjectID:    project.ID,
				Kind:         models.MediaKindImage,
				Name:         upload.Name,
				Content:      upload.Content,
				DisplayOrder: order,
			}
			if err := tx.Create(&media).Error; err != nil {
				return err
			}
			order++
		}
		for _, input := range characteristics {
			characteristic := models.Characteristic{
				ProjectID:    project.ID,
				Text:         input.Text,
				Icon:         input.Icon,
				Color:        input.Color,
				DisplayOrder: input.Index,
			}
			if err := tx.Create(&characteristic).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ApplyEdit applies one edit-form submission to a project in a single
// transaction: title/description update, optional legacy image replacement,
// appended gallery uploads, and characteristic updates/deletes/adds. Any
// failure rolls the whole submission back.
func (r *ProjectRepo) ApplyEdit(id uint, edit ProjectEdit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"title":       edit.Title,
			"description": edit.Description,
		}
		if edit.Image != nil {
			updates["image"] = edit.Image
		}
		result := tx.Model(&models.Project{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if len(edit.NewMedia) > 0 {
			order, err := nextOrder(tx, &models.Media{}, id)
			if err != nil {
				return err
			}
			for _, upload := range edit.NewMedia {
				media := models.Media{
					ProjectID:    id,
					Kind:         models.MediaKindImage,
					Name:         upload.Name,
					Content:      upload.Content,
					DisplayOrder: order,
				}
				if err := tx.Create(&media).Error; err != nil {
					return err
				}
				order++
			}
		}

		for _, update := range edit.UpdateCharacteristics {
			var characteristic models.Characteristic
			err := tx.First(&characteristic, update.ID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if update.Text != nil {
				characteristic.Text = *update.Text
			}
			if update.Icon != nil {
				characteristic.Icon = *update.Icon
			}
			if update.Color != nil {
				characteristic.Color = *update.Color
			}
			if err := tx.Save(&characteristic).Error; err != nil {
				return err
			}
		}

		if len(edit.DeleteCharacteristics) > 0 {
			if err := tx.Delete(&models.Characteristic{}, edit.DeleteCharacteristics).Error; err != nil {
				return err
			}
		}

		if len(edit.NewCharacteristics) > 0 {
			maxOrder, err := nextOrder(tx, &models.Characteristic{}, id)
			if err != nil {
				return err
			}
			for _, input := range edit.NewCharacteristics {
				characteristic := models.Characteristic{
					ProjectID:    id,
					Text:         input.Text,
					Icon:         input.Icon,
					Color:        input.Color,
					DisplayOrder: maxOrder + input.Index,
				}
				if err := tx.Create(&characteristic).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// nextOrder returns one past the current maximum display order among a
// project's rows of the given model, or 1 when it has none.
func nextOrder(tx *gorm.DB, model any, projectID uint) (int, error) {
	var max int
	err := tx.Model(model).
		Where("project_id = ?", projectID).
		Select("COALESCE(MAX(display_order), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// Delete removes a project and, through the cascade on its associations, all
// of its media and characteristic rows.
func (r *ProjectRepo) Delete(id uint) error {
	return r.db.Select(clause.Associations).Delete(&models.Project{ID: id}).Error
}
