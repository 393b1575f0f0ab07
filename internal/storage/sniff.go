package storage

import (
	"net/http"

	"github.com/mdcampos/wants-api/internal/apperrors"
)

// Extensions for the image MIME types we accept. Anything outside this
// table is rejected, including types http.DetectContentType does
// recognize (text, archives, ...).
var imageExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
	"image/bmp":  "bmp",
	// http.DetectContentType reports ICO as image/x-icon.
	"image/x-icon": "ico",
}

// DetectImageType determines the file type of data by sniffing the bytes
// themselves. Client-declared MIME types and file extensions are never
// trusted. Returns the canonical extension and MIME type, or
// apperrors.ErrInvalidContent when the bytes are not a recognized image.
func DetectImageType(data []byte) (ext string, mimeType string, err error) {
	mimeType = http.DetectContentType(data)

	ext, ok := imageExtensions[mimeType]
	if !ok {
		return "", "", apperrors.ErrInvalidContent
	}
	return ext, mimeType, nil
}
