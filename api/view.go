package api

import (
	"encoding/base64"
	"html/template"
	"strconv"

	"github.com/misionvictoriosa/site-backend/models"
)

// indexCharacteristicLimit caps the badges shown per project on the listing
// page; the detail page shows them all.
const indexCharacteristicLimit = 3

// MediaView is one renderable image: a gallery row or the synthetic entry
// for the legacy single image, which always sorts first.
type MediaView struct {
	ID      string
	Name    string
	DataURI template.URL
	Order   int
	Legacy  bool
}

// ProjectView is a project prepared for template rendering, with binary
// content encoded as data URIs.
type ProjectView struct {
	ID              uint
	Title           string
	Description     string
	LegacyImage     template.URL // empty when no legacy image is stored
	Gallery         []MediaView  // media rows only, in (display_order, id) order
	Images          []MediaView  // combined list, legacy entry first
	Characteristics []models.Characteristic
}

func dataURI(content []byte) template.URL {
	return template.URL("data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(content))
}

// newProjectView builds the view for a project whose media and
// characteristics were loaded in rendering order. characteristicLimit caps
// the badge list; 0 means no cap.
func newProjectView(project *models.Project, characteristicLimit int) ProjectView {
	view := ProjectView{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
	}

	if project.HasImage() {
		view.LegacyImage = dataURI(project.Image)
	}

	for _, media := range project.Media {
		if media.Kind != models.MediaKindImage || len(media.Content) == 0 {
			continue
		}
		view.Gallery = append(view.Gallery, MediaView{
			ID:      strconv.FormatUint(uint64(media.ID), 10),
			Name:    media.Name,
			DataURI: dataURI(media.Content),
			Order:   media.DisplayOrder,
		})
	}

	if view.LegacyImage != "" {
		view.Images = append(view.Images, MediaView{
			ID:      "main",
			Name:    "Imagen principal",
			DataURI: view.LegacyImage,
			Order:   models.LegacyImageOrder,
			Legacy:  true,
		})
	}
	view.Images = append(view.Images, view.Gallery...)

	view.Characteristics = project.Characteristics
	if characteristicLimit > 0 && len(view.Characteristics) > characteristicLimit {
		view.Characteristics = view.Characteristics[:characteristicLimit]
	}

	return view
}

func newProjectViews(projects []*models.Project, characteristicLimit int) []ProjectView {
	views := make([]ProjectView, 0, len(projects))
	for _, project := range projects {
		views = append(views, newProjectView(project, characteristicLimit))
	}
	return views
}
