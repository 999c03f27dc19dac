package model

import (
	"io"
	"slices"
	"strings"
)

type MediaType string

const (
	MediaImage    MediaType = "imagen"
	MediaAudio    MediaType = "audio"
	MediaVideo    MediaType = "video"
	MediaDocument MediaType = "documento"
)

func MediaTypeFromMIME(mime string) MediaType {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return MediaImage
	case strings.HasPrefix(mime, "audio/"):
		return MediaAudio
	case strings.HasPrefix(mime, "video/"):
		return MediaVideo
	default:
		return MediaDocument
	}
}

// Opener opens the content of a staged file. Each call returns a fresh reader.
type Opener func() (io.ReadCloser, error)

// StagedFile is a local file waiting to be uploaded.
type StagedFile struct {
	ID          string
	Name        string
	ContentType string
	Size        int64
	// Preview is set for images only.
	Preview Opener
	Open    Opener
}

func (f StagedFile) IsImage() bool {
	return MediaTypeFromMIME(f.ContentType) == MediaImage
}

type MediaAsset struct {
	ID          int64     `json:"id"`
	FileName    string    `json:"nombre_archivo"`
	Type        MediaType `json:"tipo"`
	MimeType    string    `json:"mime_type"`
	URL         string    `json:"url"`
	Description string    `json:"descripcion,omitempty"`
	Category    string    `json:"categoria,omitempty"`
	Size        int64     `json:"tamano"`
	Order       int       `json:"orden,omitempty"`
}

func SortMediaByOrder(media []MediaAsset) {
	slices.SortStableFunc(media, func(a, b MediaAsset) int {
		return a.Order - b.Order
	})
}
