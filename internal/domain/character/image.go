package character

import (
	"net/http"
	"path/filepath"
	"strings"

	dnderr "github.com/KirkDiggler/charform/internal/errors"
)

// Image is an uploaded character picture
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

var acceptedContentTypes = map[string]bool{
	"image/png":  true,
	"image/jpg":  true,
	"image/jpeg": true,
}

// NewImage accepts PNG and JPG uploads only, by content type or by file extension.
// An empty content type is sniffed from the data.
func NewImage(filename, contentType string, data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, dnderr.InvalidArgumentf("image '%s' is empty", filename)
	}

	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !acceptedContentTypes[contentType] && ext != ".png" && ext != ".jpg" {
		return nil, dnderr.InvalidArgumentf("image '%s' must be .png or .jpg", filename).
			WithMeta("content_type", contentType)
	}

	return &Image{
		Filename:    filepath.Base(filename),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// FirstAcceptable returns the first offered image, mirroring a drop of several files.
// Later files are ignored even when the first is rejected.
func FirstAcceptable(images []Image) (*Image, error) {
	if len(images) == 0 {
		return nil, dnderr.InvalidArgument("no image offered")
	}
	first := images[0]
	return NewImage(first.Filename, first.ContentType, first.Data)
}
