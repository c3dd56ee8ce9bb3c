package api

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/misionvictoriosa/site-backend/database"
	"github.com/misionvictoriosa/site-backend/errs"
	"github.com/misionvictoriosa/site-backend/models"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing; larger
// file parts spill to temp files.
const maxUploadMemory = 32 << 20

// Form field names, kept compatible with the site's existing templates.
const (
	fieldTitle        = "titulo"
	fieldDescription  = "descripcion"
	fieldLegacyImage  = "imagen"
	fieldGalleryImage = "imagenes_adicionales"

	fieldNewCharText  = "caracteristica_texto_nueva"
	fieldNewCharIcon  = "caracteristica_icono_nueva"
	fieldNewCharColor = "caracteristica_color_nueva"

	fieldCharID     = "caracteristica_id"
	fieldCharText   = "caracteristica_texto"
	fieldCharIcon   = "caracteristica_icono"
	fieldCharColor  = "caracteristica_color"
	fieldCharDelete = "caracteristica_eliminar"
)

// projectForm is one parsed project submission, with uploads read into
// memory and the parallel characteristic lists already folded into
// structured edit operations.
type projectForm struct {
	Title       string
	Description string
	// Image is the legacy-slot upload, nil when no usable file was supplied.
	Image                 []byte
	Gallery               []database.MediaUpload
	NewCharacteristics    []database.CharacteristicInput
	UpdateCharacteristics []database.CharacteristicUpdate
	DeleteCharacteristics []uint
}

// parseProjectForm reads a create/edit submission. Title and description are
// required after trimming; empty upload slots are skipped silently.
func parseProjectForm(r *http.Request) (projectForm, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return projectForm{}, errs.NewBadRequestError("malformed multipart form")
	}

	form := projectForm{
		Title:       strings.TrimSpace(r.FormValue(fieldTitle)),
		Description: strings.TrimSpace(r.FormValue(fieldDescription)),
	}
	if form.Title == "" || form.Description == "" {
		return projectForm{}, errs.NewValidationError(fieldTitle, "Título y descripción son obligatorios.")
	}

	files := r.MultipartForm.File

	if headers := files[fieldLegacyImage]; len(headers) > 0 {
		content, err := readUpload(headers[0])
		if err != nil {
			return projectForm{}, err
		}
		form.Image = content
	}

	for _, header := range files[fieldGalleryImage] {
		content, err := readUpload(header)
		if err != nil {
			return projectForm{}, err
		}
		if content == nil {
			continue
		}
		form.Gallery = append(form.Gallery, database.MediaUpload{
			Name:    header.Filename,
			Content: content,
		})
	}

	values := r.MultipartForm.Value
	form.NewCharacteristics = foldNewCharacteristics(
		values[fieldNewCharText],
		values[fieldNewCharIcon],
		values[fieldNewCharColor],
	)
	form.UpdateCharacteristics = foldCharacteristicUpdates(
		values[fieldCharID],
		values[fieldCharText],
		values[fieldCharIcon],
		values[fieldCharColor],
	)
	form.DeleteCharacteristics = parseIDList(values[fieldCharDelete])

	return form, nil
}

// readUpload reads one uploaded file fully into memory. Files with a blank
// filename or no content yield nil without error: an empty slot, not a
// failure.
func readUpload(header *multipart.FileHeader) ([]byte, error) {
	if header == nil || strings.TrimSpace(header.Filename) == "" {
		return nil, nil
	}

	file, err := header.Open()
	if err != nil {
		return nil, errs.NewBadRequestError("unreadable uploaded file")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, errs.NewBadRequestError("unreadable uploaded file")
	}
	if len(content) == 0 {
		return nil, nil
	}
	return content, nil
}

// foldNewCharacteristics turns the parallel new-characteristic lists into
// inputs. A row is produced only when its text is non-blank; icon and color
// default when their list is shorter than the text list. The submission
// index survives so display order matches the form.
func foldNewCharacteristics(texts, icons, colors []string) []database.CharacteristicInput {
	var inputs []database.CharacteristicInput
	for i, text := range texts {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}

		input := database.CharacteristicInput{
			Text:  trimmed,
			Icon:  models.DefaultCharacteristicIcon,
			Color: models.DefaultCharacteristicColor,
			Index: i,
		}
		if i < len(icons) {
			input.Icon = icons[i]
		}
		if i < len(colors) {
			input.Color = colors[i]
		}
		inputs = append(inputs, input)
	}
	return inputs
}

// foldCharacteristicUpdates pairs existing characteristic ids with their
// parallel text/icon/color entries. Lists shorter than the id list leave the
// corresponding field nil, which keeps the stored value.
func foldCharacteristicUpdates(ids, texts, icons, colors []string) []database.CharacteristicUpdate {
	var updates []database.CharacteristicUpdate
	for i, raw := range ids {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			continue
		}

		update := database.CharacteristicUpdate{ID: uint(id)}
		if i < len(texts) {
			update.Text = &texts[i]
		}
		if i < len(icons) {
			update.Icon = &icons[i]
		}
		if i < len(colors) {
			update.Color = &colors[i]
		}
		updates = append(updates, update)
	}
	return updates
}

func parseIDList(raw []string) []uint {
	var ids []uint
	for _, value := range raw {
		id, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}
