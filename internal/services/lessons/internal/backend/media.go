package backend

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
)

const (
	fileField        = "archivo"
	descriptionField = "descripcion"
	categoryField    = "categoria"
)

type mediaResponse struct {
	Media *model.MediaAsset `json:"multimedia"`
}

type mediaListResponse struct {
	Media []model.MediaAsset `json:"multimedia"`
}

type attachRequest struct {
	LessonID int64 `json:"leccion_id"`
	Order    int   `json:"orden"`
}

// UploadMedia streams a staged file to the backend as multipart form data.
func (c *Client) UploadMedia(ctx context.Context, f model.StagedFile, description, category string) (model.MediaAsset, error) {
	if f.Open == nil {
		return model.MediaAsset{}, fmt.Errorf("upload %s: file has no content", f.Name)
	}

	src, err := f.Open()
	if err != nil {
		return model.MediaAsset{}, fmt.Errorf("open %s: %w", f.Name, err)
	}

	pr, pw := io.Pipe()
	w := multipart.NewWriter(pw)
	go func() {
		defer src.Close()
		pw.CloseWithError(writeForm(w, f, src, description, category))
	}()

	req, err := c.newRequest(ctx, http.MethodPost, "/api/multimedia/subir", pr)
	if err != nil {
		pr.Close()
		return model.MediaAsset{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var resp mediaResponse
	if err := c.do(req, &resp); err != nil {
		pr.CloseWithError(err)
		return model.MediaAsset{}, err
	}
	if resp.Media == nil {
		return model.MediaAsset{}, fmt.Errorf("upload %s: empty response", f.Name)
	}
	return *resp.Media, nil
}

func writeForm(w *multipart.Writer, f model.StagedFile, src io.Reader, description, category string) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, escapeQuotes(f.Name)))
	ct := f.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("copy file data: %w", err)
	}
	if err := w.WriteField(descriptionField, description); err != nil {
		return fmt.Errorf("write description: %w", err)
	}
	if err := w.WriteField(categoryField, category); err != nil {
		return fmt.Errorf("write category: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close writer: %w", err)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// AttachMedia links an uploaded asset to a lesson at the given position.
func (c *Client) AttachMedia(ctx context.Context, mediaID, lessonID int64, order int) error {
	path := fmt.Sprintf("/api/multimedia/%d/asociar", mediaID)
	return c.doJSON(ctx, http.MethodPost, path, attachRequest{LessonID: lessonID, Order: order}, nil)
}

func (c *Client) Media(ctx context.Context, lessonID int64) ([]model.MediaAsset, error) {
	var resp mediaListResponse
	path := fmt.Sprintf("/api/multimedia/leccion/%d", lessonID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Media, nil
}

// MediaLibrary lists every uploaded asset, optionally filtered by category.
func (c *Client) MediaLibrary(ctx context.Context, category string) ([]model.MediaAsset, error) {
	path := "/api/multimedia"
	if category != "" {
		path += "?" + url.Values{"categoria": {category}}.Encode()
	}

	var resp mediaListResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Media, nil
}
