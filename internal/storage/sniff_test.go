package storage

import (
	"errors"
	"testing"

	"github.com/mdcampos/wants-api/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectImageType(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		wantExt  string
		wantMime string
	}{
		{
			name:     "png",
			data:     []byte("\x89PNG\r\n\x1a\npayload"),
			wantExt:  "png",
			wantMime: "image/png",
		},
		{
			name:     "jpeg",
			data:     []byte("\xff\xd8\xffpayload"),
			wantExt:  "jpg",
			wantMime: "image/jpeg",
		},
		{
			name:     "gif",
			data:     []byte("GIF89apayload"),
			wantExt:  "gif",
			wantMime: "image/gif",
		},
		{
			name:     "webp",
			data:     []byte("RIFF\x00\x00\x00\x00WEBPVP8 payload"),
			wantExt:  "webp",
			wantMime: "image/webp",
		},
		{
			name:     "bmp",
			data:     []byte("BMpayload"),
			wantExt:  "bmp",
			wantMime: "image/bmp",
		},
		{
			name:     "ico",
			data:     []byte("\x00\x00\x01\x00payload"),
			wantExt:  "ico",
			wantMime: "image/x-icon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, mimeType, err := DetectImageType(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, ext)
			assert.Equal(t, tt.wantMime, mimeType)
		})
	}

	t.Run("unrecognized content", func(t *testing.T) {
		for _, data := range [][]byte{
			[]byte("plain text, not an image"),
			[]byte("<html><body>spoofed upload</body></html>"),
			{},
			nil,
		} {
			_, _, err := DetectImageType(data)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidContent))
		}
	})

	t.Run("extension never comes from a claimed type", func(t *testing.T) {
		// PNG bytes stay PNG no matter what the client called the file.
		ext, _, err := DetectImageType([]byte("\x89PNG\r\n\x1a\nrenamed-to.jpg"))
		require.NoError(t, err)
		assert.Equal(t, "png", ext)
	})
}
