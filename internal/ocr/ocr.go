// Package ocr extracts text from images. It is the upstream collaborator of
// the detection engine: the engine only ever sees the extracted text, never
// the image.
package ocr

import "context"

// Extractor turns one image file into plain text. Implementations must be
// safe for concurrent use or construct per-call state internally.
type Extractor interface {
	Name() string
	ExtractText(ctx context.Context, path string) (string, error)
}
