package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	minioclient "github.com/plumeworks/plume/internal/store/minio"
	"github.com/plumeworks/plume/pkg/apierr"
)

// maxUploadBytes bounds the whole multipart body.
const maxUploadBytes = 100 * 1024 * 1024

type UploadHandler struct {
	logger *slog.Logger
	minio  *minioclient.Client
}

func NewUploadHandler(logger *slog.Logger, minio *minioclient.Client) *UploadHandler {
	return &UploadHandler{logger: logger, minio: minio}
}

// Upload handles POST /api/v1/upload. Every part named "file" is stored
// under a fresh object prefix; the response is the list of public URLs in
// submission order.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeAPIError(w, h.logger, apierr.FileRequired())
		return
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		writeAPIError(w, h.logger, apierr.FileRequired())
		return
	}

	urls := make([]string, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			writeAPIError(w, h.logger, apierr.UploadFailed(err))
			return
		}

		objectName := "files/" + uuid.New().String() + "/" + header.Filename
		url, err := h.minio.UploadFile(r.Context(), objectName, file, header.Size, header.Header.Get("Content-Type"))
		file.Close()
		if err != nil {
			writeAPIError(w, h.logger, apierr.UploadFailed(err))
			return
		}
		urls = append(urls, url)
	}

	h.logger.Info("files uploaded", slog.Int("count", len(urls)))
	writeJSON(w, http.StatusCreated, urls)
}
