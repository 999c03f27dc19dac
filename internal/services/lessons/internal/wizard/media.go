package wizard

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
)

// StageFile queues a file for upload. The content type is sniffed from the
// first bytes; images get a preview handle.
func (w *Wizard) StageFile(name string, open model.Opener) (model.StagedFile, error) {
	r, err := open()
	if err != nil {
		return model.StagedFile{}, fmt.Errorf("open %s: %w", name, err)
	}
	defer r.Close()

	cr := &countingReader{r: r}
	mt, err := mimetype.DetectReader(cr)
	if err != nil {
		return model.StagedFile{}, fmt.Errorf("detect content type of %s: %w", name, err)
	}
	if _, err := io.Copy(io.Discard, cr); err != nil {
		return model.StagedFile{}, fmt.Errorf("read %s: %w", name, err)
	}

	f := model.StagedFile{
		ID:          w.ids.NewID(),
		Name:        name,
		ContentType: mt.String(),
		Size:        cr.n,
		Open:        open,
	}
	if f.IsImage() {
		f.Preview = open
	}

	w.draft.Files = append(w.draft.Files, f)
	w.notifier.Success(fmt.Sprintf("Archivo %s agregado", name))
	return f, nil
}

// StagePath stages a file from disk.
func (w *Wizard) StagePath(path string) (model.StagedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.StagedFile{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return model.StagedFile{}, fmt.Errorf("%s is a directory", path)
	}

	return w.StageFile(filepath.Base(path), func() (io.ReadCloser, error) {
		return os.Open(path)
	})
}

func (w *Wizard) UnstageFile(id string) bool {
	i := slices.IndexFunc(w.draft.Files, func(f model.StagedFile) bool { return f.ID == id })
	if i < 0 {
		return false
	}
	w.draft.Files = slices.Delete(w.draft.Files, i, i+1)
	return true
}

func (w *Wizard) StagedFiles() []model.StagedFile {
	return slices.Clone(w.draft.Files)
}

// SetMediaInfo sets the description and category sent with every upload.
func (w *Wizard) SetMediaInfo(description, category string) {
	w.mediaDesc = description
	w.mediaCat = category
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
