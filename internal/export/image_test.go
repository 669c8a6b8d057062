package export

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	gifHeader  = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\xff\xff\xff\x00\x00\x00")
	jpegHeader = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
)

func TestImageDataURI_Supported(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		prefix string
	}{
		{name: "png", data: pngHeader, prefix: "data:image/png;base64,"},
		{name: "gif", data: gifHeader, prefix: "data:image/gif;base64,"},
		{name: "jpeg", data: jpegHeader, prefix: "data:image/jpeg;base64,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri, err := ImageDataURI(tt.data)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(uri, tt.prefix), uri)

			decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, tt.prefix))
			require.NoError(t, err)
			assert.Equal(t, tt.data, decoded)
		})
	}
}

func TestImageDataURI_Rejected(t *testing.T) {
	for name, data := range map[string][]byte{
		"empty": nil,
		"text":  []byte("just some text"),
		"pdf":   []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n"),
		"svg":   []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ImageDataURI(data)
			assert.ErrorIs(t, err, ErrUnsupportedImage)
		})
	}
}

func TestReadImageDataURI_Limit(t *testing.T) {
	uri, err := ReadImageDataURI(bytes.NewReader(pngHeader), int64(len(pngHeader)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	_, err = ReadImageDataURI(bytes.NewReader(pngHeader), 8)
	assert.ErrorIs(t, err, ErrImageTooLarge)

	_, err = ReadImageDataURI(bytes.NewReader(gifHeader), 0)
	assert.NoError(t, err)
}
