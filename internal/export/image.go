package export

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

// ErrUnsupportedImage is returned for uploads that are not PNG, JPEG or GIF
var ErrUnsupportedImage = errors.New("unsupported image type: expected PNG, JPEG or GIF")

// ErrImageTooLarge is returned when an upload exceeds the reader limit
var ErrImageTooLarge = errors.New("image is too large")

// supportedImages are the raster types a block flow diagram may use
var supportedImages = []string{"image/png", "image/jpeg", "image/gif"}

// ImageDataURI sniffs data and returns it as a base64 data URI
func ImageDataURI(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrUnsupportedImage
	}

	mtype := mimetype.Detect(data)
	for _, supported := range supportedImages {
		if mtype.Is(supported) {
			return "data:" + supported + ";base64," + base64.StdEncoding.EncodeToString(data), nil
		}
	}
	return "", fmt.Errorf("%w (got %s)", ErrUnsupportedImage, mtype.String())
}

// ReadImageDataURI reads at most limit bytes from r and converts them with ImageDataURI.
// A limit of zero or less reads everything.
func ReadImageDataURI(r io.Reader, limit int64) (string, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return "", ErrImageTooLarge
	}
	return ImageDataURI(data)
}
