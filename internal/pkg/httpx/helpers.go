package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
)

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func ReadJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		return serr.NewServiceError(err, http.StatusBadRequest, "invalid request body")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, resp any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	return enc.Encode(resp)
}

func HandleErr(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request error",
		"error", err,
		"method", r.Method,
		"url", r.URL.String(),
		"remote_addr", r.RemoteAddr,
	)

	var se *serr.ServiceError
	if errors.As(err, &se) {
		_ = WriteJSON(w, se.StatusCode, ErrorResponse{Error: se.Msg})
		return
	}

	_ = WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
}
