package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"breeder-site-backend/internal/contract"
	"breeder-site-backend/internal/schema"
	"breeder-site-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// UploadHandler handles image uploads
type UploadHandler struct {
	uploadService *services.UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Routes mounts the upload operation
func (h *UploadHandler) Routes(r chi.Router) {
	route := contract.API.Uploads.Create
	mount(r, route, handle(route, adminOnly, "", h.upload))
}

// upload reads the multipart "file" part. The route has no JSON input, so the
// session is checked before the file is read.
func (h *UploadHandler) upload(ctx context.Context, q request[contract.NoInput]) (reply, error) {
	limit := h.uploadService.MaxBytes()
	// room for the multipart envelope; the service enforces the file limit itself
	q.r.Body = http.MaxBytesReader(nil, q.r.Body, limit+MaxBodyBytes)

	file, _, err := q.r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return reply{}, &schema.ValidationError{Field: "file", Message: "File too large"}
		}
		return reply{}, &schema.ValidationError{Field: "file", Message: "No file uploaded"}
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return reply{}, err
	}

	res, err := h.uploadService.Upload(ctx, data)
	if err != nil {
		return reply{}, err
	}
	return ok(res), nil
}
