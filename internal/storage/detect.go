package storage

import (
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// detect sniffs the content of r and returns its extension (without the dot)
// and its MIME type without parameters.
func detect(r io.Reader) (string, string, error) {
	m, err := mimetype.DetectReader(r)
	if err != nil {
		return "", "", err
	}
	mimeType, _, _ := strings.Cut(m.String(), ";")
	return strings.TrimPrefix(m.Extension(), "."), strings.TrimSpace(mimeType), nil
}
