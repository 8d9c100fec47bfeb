// Package imageenc turns an image file chosen by the admin into a data URL
// that can be stored inline as a gift image.
package imageenc

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxBytes is the largest image accepted.
const MaxBytes = 2 << 20

// Encode reads an image and returns it as a base64 data URL.
func Encode(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("image is empty")
	}
	if len(data) > MaxBytes {
		return "", fmt.Errorf("image is larger than %d bytes", MaxBytes)
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", fmt.Errorf("unsupported file type %s", mime.String())
	}
	return "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// EncodeFile encodes the image at path.
func EncodeFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()
	return Encode(f)
}
