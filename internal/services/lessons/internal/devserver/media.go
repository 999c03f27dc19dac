package devserver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
	"github.com/google/uuid"
)

// MediaStore writes uploaded files under root with random names and
// serves them below serveRoot.
type MediaStore struct {
	serveRoot *url.URL
	root      string
}

type MediaStoreConfig struct {
	ServeRoot *url.URL
	Root      string
}

func NewMediaStore(cfg MediaStoreConfig) *MediaStore {
	return &MediaStore{
		serveRoot: cfg.ServeRoot,
		root:      cfg.Root,
	}
}

// Save sniffs the content type of data and stores it on disk. The returned
// asset has no id yet.
func (s *MediaStore) Save(name string, data io.Reader) (model.MediaAsset, error) {
	var buff bytes.Buffer
	mt, err := mimetype.DetectReader(io.TeeReader(data, &buff))
	if err != nil {
		if tooLarge(err) {
			return model.MediaAsset{}, serr.NewServiceError(err, http.StatusRequestEntityTooLarge, "archivo demasiado grande")
		}
		return model.MediaAsset{}, fmt.Errorf("detect content type: %w", err)
	}

	f, err := os.Create(filepath.Join(s.root, uuid.NewString()+mt.Extension()))
	if err != nil {
		return model.MediaAsset{}, fmt.Errorf("create media file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, io.MultiReader(&buff, data))
	if err == nil && size == 0 {
		err = serr.Validation("el archivo está vacío")
	}
	if err != nil {
		_ = os.Remove(f.Name())
		if tooLarge(err) {
			return model.MediaAsset{}, serr.NewServiceError(err, http.StatusRequestEntityTooLarge, "archivo demasiado grande")
		}
		return model.MediaAsset{}, fmt.Errorf("save media file: %w", err)
	}

	relPath, err := filepath.Rel(s.root, f.Name())
	if err != nil {
		return model.MediaAsset{}, fmt.Errorf("get relative media path: %w", err)
	}

	return model.MediaAsset{
		FileName: filepath.Base(name),
		Type:     model.MediaTypeFromMIME(mt.String()),
		MimeType: mt.String(),
		URL:      s.serveRoot.JoinPath(relPath).String(),
		Size:     size,
	}, nil
}

func tooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr)
}
