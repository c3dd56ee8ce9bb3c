package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/misionvictoriosa/site-backend/models"
)

type ProjectRepoTestSuite struct {
	DatabaseTestSuite
}

func (s *ProjectRepoTestSuite) TestCreateWithoutUploads() {
	project := &models.Project{Title: "Comedor comunitario", Description: "Alimentación para familias"}
	s.Require().NoError(s.projects.Create(project, nil, nil))

	found, err := s.projects.FindByID(project.ID)
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Require().Equal("Comedor comunitario", found.Title)
	s.Require().Equal("Alimentación para familias", found.Description)
	s.Require().Empty(found.Media)
	s.Require().Empty(found.Characteristics)
	s.Require().False(found.HasImage())
}

func (s *ProjectRepoTestSuite) TestCreateNumbersGalleryInSubmissionOrder() {
	project := &models.Project{Title: "Galería", Description: "desc"}
	gallery := []MediaUpload{
		{Name: "a.jpg", Content: []byte("aaa")},
		{Name: "b.jpg", Content: []byte("bbb")},
		{Name: "c.jpg", Content: []byte("ccc")},
	}
	s.Require().NoError(s.projects.Create(project, gallery, nil))

	found, err := s.projects.FindByID(project.ID)
	s.Require().NoError(err)
	s.Require().Len(found.Media, 3)
	for i, media := range found.Media {
		s.Require().Equal(i+1, media.DisplayOrder)
		s.Require().Equal(gallery[i].Name, media.Name)
		s.Require().Equal(gallery[i].Content, media.Content)
		s.Require().Equal(models.MediaKindImage, media.Kind)
	}
}

func (s *ProjectRepoTestSuite) TestCreateCharacteristicsKeepSubmissionIndex() {
	project := &models.Project{Title: "Con badges", Description: "desc"}
	inputs := []CharacteristicInput{
		{Text: "Agua potable", Icon: "fas fa-tint", Color: "info", Index: 0},
		// index 2: a blank row sat between the two submitted texts
		{Text: "Educación", Icon: models.DefaultCharacteristicIcon, Color: models.DefaultCharacteristicColor, Index: 2},
	}
	s.Require().NoError(s.projects.Create(project, nil, inputs))

	found, err := s.projects.FindByID(project.ID)
	s.Require().NoError(err)
	s.Require().Len(found.Characteristics, 2)
	s.Require().Equal("Agua potable", found.Characteristics[0].Text)
	s.Require().Equal(0, found.Characteristics[0].DisplayOrder)
	s.Require().Equal("Educación", found.Characteristics[1].Text)
	s.Require().Equal(2, found.Characteristics[1].DisplayOrder)
}

func (s *ProjectRepoTestSuite) TestFindAllNewestFirst() {
	first := s.createTestProject("primero")
	second := s.createTestProject("segundo")

	projects, err := s.projects.FindAll()
	s.Require().NoError(err)
	s.Require().Len(projects, 2)
	s.Require().Equal(second.ID, projects[0].ID)
	s.Require().Equal(first.ID, projects[1].ID)
}

func (s *ProjectRepoTestSuite) TestFindByIDMissing() {
	found, err := s.projects.FindByID(9999)
	s.Require().NoError(err)
	s.Require().Nil(found)
}

func (s *ProjectRepoTestSuite) TestApplyEditKeepsLegacyImageWhenNotReplaced() {
	original := []byte{0xff, 0xd8, 0x01, 0x02}
	project := &models.Project{Title: "t", Description: "d", Image: original}
	s.Require().NoError(s.projects.Create(project, nil, nil))

	edit := ProjectEdit{Title: "nuevo título", Description: "nueva descripción"}
	s.Require().NoError(s.projects.ApplyEdit(project.ID, edit))

	found, err := s.projects.FindByID(project.ID)
	s.Require().NoError(err)
	s.Require().Equal("nuevo título", found.Title)
	s.Require().Equal(original, found.Image)
}

func (s *ProjectRepoTestSuite) TestApplyEditReplacesLegacyImage() {
	project := &models.Project{Title: "t", Description: "d", Image: []byte("old")}
	s.Require().NoError(s.projects.Create(project, nil, nil))

	replacement := []byte("replacement bytes")
	edit := ProjectEdit{Title: "t", Description: "d", Image: replacement}
	s.Require().NoError(s.projects.ApplyEdit(project.ID, edit))

	found, err := s.projects.FindByID(project.ID)
	s.Require().NoError(err)
	s.Require().Equal(replacement, found.Image)
}

func (s *ProjectRepoTestSuite) TestApplyEditAppendsMediaAfterCurrentMax() {
	project := &models.Project{Title: "t", Description: "d"}
	gallery := []MediaUpload{
		{Name: "a.jpg", Content: []byte("a")},
		{Name: "b.jpg", Content: []byte("b")},
	}
	s.Require().NoError(s.projects.Create(project, gallery, nil))

	edit := ProjectEdit{
		Title:       "t",
		Description: "d",
		NewMedia:    []MediaUpload{{Name: "c.jpg", Content: []byte("c")}},
	}
	s.Require().NoError(s.projects.ApplyEdit(project.ID, edit))

	found, err := s.projects.FindByID(project.ID)
	s.Require().NoError(err)
	s.Require().Len(found.Media, 3)
	s.Require().Equal(3, found.Media[2].DisplayOrder)
	s.Require().Equal("c.jpg", found.Media[2].Name)
}

func (s *ProjectRepoTestSuite) TestApplyEditMediaOrderStartsAtOneWhenEmpty() {
	project := s.createTestProject("sin galería")

	edit := ProjectEdit{
		Title:       project.Title,
		Description: project.Description,
		NewMedia:    []MediaUpload{{Name: "first.jpg", Content: []byte("x")}},
	}
	s.Require().NoError(s.projects.ApplyEdit(project.ID, edit))

	found, err := s.projects.FindByID(project.ID)
	s.Require().NoError(err)
	s.Require().Len(found.Media, 1)
	s.Require().Equal(1, found.Media[0].DisplayOrder)
}

func (s *ProjectRepoTestSuite) TestApplyEditCharacteristicOperations() {
	project := &models.Project{Title: "t", Description: "d"}
	inputs := []CharacteristicInput{
		{Text: "mantener", Icon: "fas fa-home", Color: "primary", Index: 0},
		{Text: "editar", Icon: "fas fa-star", Color: "primary", Index: 1},
		{Text: "borrar", Icon: "fas fa-star", Color: "primary", Index: 2},
	}
	s.Require().NoError(s.projects.Create(project, nil, inputs))

	found, err := s.projects.FindByID(project.ID)
	s.Require().NoError(err)
	s.Require().Len(found.Characteristics, 3)
	toEdit := found.Characteristics[1]
	toDelete := found.Characteristics[2]

	edit := ProjectEdit{
		Title:       "t",
		Description: "d",
		UpdateCharacteristics: []CharacteristicUpdate{
			// Icon nil: list shorter than ids keeps the stored value
			{ID: toEdit.ID, Text: strPtr("editado"), Color: strPtr("danger")},
		},
		DeleteCharacteristics: []uint{toDelete.ID},
		NewCharacteristics: []CharacteristicInput{
			{Text: "nuevo", Icon: models.DefaultCharacteristicIcon, Color: models.DefaultCharacteristicColor, Index: 0},
		},
	}
	s.Require().NoError(s.projects.ApplyEdit(project.ID, edit))

	found, err = s.projects.FindByID(project.ID)
	s.Require().NoError(err)
	s.Require().Len(found.Characteristics, 3)

	byText := map[string]models.Characteristic{}
	for _, c := range found.Characteristics {
		byText[c.Text] = c
	}
	s.Require().Contains(byText, "mantener")
	s.Require().Contains(byText, "editado")
	s.Require().Contains(byText, "nuevo")
	s.Require().NotContains(byText, "borrar")
	s.Require().Equal("fas fa-star", byText["editado"].Icon)
	s.Require().Equal("danger", byText["editado"].Color)
	// the order-2 row was deleted first, so the append lands at max+1 = 2
	s.Require().Equal(2, byText["nuevo"].DisplayOrder)
}

func (s *ProjectRepoTestSuite) TestApplyEditUnknownCharacteristicIDIsSkipped() {
	project := s.createTestProject("sin características")

	edit := ProjectEdit{
		Title:       project.Title,
		Description: project.Description,
		UpdateCharacteristics: []CharacteristicUpdate{
			{ID: 4242, Text: strPtr("fantasma")},
		},
	}
	s.Require().NoError(s.projects.ApplyEdit(project.ID, edit))
}

func (s *ProjectRepoTestSuite) TestApplyEditMissingProject() {
	edit := ProjectEdit{Title: "t", Description: "d"}
	err := s.projects.ApplyEdit(9999, edit)
	s.Require().Error(err)
	s.Require().True(errors.Is(err, gorm.ErrRecordNotFound))
}

func (s *ProjectRepoTestSuite) TestDeleteCascadesToChildren() {
	project := &models.Project{Title: "t", Description: "d"}
	gallery := []MediaUpload{{Name: "a.jpg", Content: []byte("a")}}
	inputs := []CharacteristicInput{{Text: "x", Icon: "i", Color: "c", Index: 0}}
	s.Require().NoError(s.projects.Create(project, gallery, inputs))

	found, err := s.projects.FindByID(project.ID)
	s.Require().NoError(err)
	mediaID := found.Media[0].ID

	s.Require().NoError(s.projects.Delete(project.ID))

	gone, err := s.projects.FindByID(project.ID)
	s.Require().NoError(err)
	s.Require().Nil(gone)

	media, err := s.media.FindByID(mediaID)
	s.Require().NoError(err)
	s.Require().Nil(media)

	var count int64
	s.Require().NoError(s.gormDB.Model(&models.Characteristic{}).Where("project_id = ?", project.ID).Count(&count).Error)
	s.Require().Zero(count)
}

func (s *ProjectRepoTestSuite) TestMediaOrderedByDisplayOrderThenID() {
	project := s.createTestProject("orden")

	// Insert rows out of order with duplicate display orders
	rows := []models.Media{
		{ProjectID: project.ID, Kind: models.MediaKindImage, Name: "later", Content: []byte("1"), DisplayOrder: 5},
		{ProjectID: project.ID, Kind: models.MediaKindImage, Name: "first", Content: []byte("2"), DisplayOrder: 1},
		{ProjectID: project.ID, Kind: models.MediaKindImage, Name: "tie-a", Content: []byte("3"), DisplayOrder: 3},
		{ProjectID: project.ID, Kind: models.MediaKindImage, Name: "tie-b", Content: []byte("4"), DisplayOrder: 3},
	}
	for i := range rows {
		s.Require().NoError(s.gormDB.Create(&rows[i]).Error)
	}

	found, err := s.projects.FindByID(project.ID)
	s.Require().NoError(err)
	s.Require().Len(found.Media, 4)
	s.Require().Equal("first", found.Media[0].Name)
	s.Require().Equal("tie-a", found.Media[1].Name)
	s.Require().Equal("tie-b", found.Media[2].Name)
	s.Require().Equal("later", found.Media[3].Name)
}

func TestProjectRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectRepoTestSuite))
}
