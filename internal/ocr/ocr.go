package ocr

import (
	"context"
	"net/http"
)

// Reader is the optical-recognition boundary: image bytes in, best-effort
// text out. An unreadable image yields an empty string, not an error; errors
// are reserved for the service call itself failing.
type Reader interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// DetectMIME sniffs the image content type from its leading bytes.
func DetectMIME(image []byte) string {
	return http.DetectContentType(image)
}
