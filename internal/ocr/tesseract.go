package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/otiai10/gosseract/v2"

	// Register decoders for the formats the scanner accepts.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Tesseract implements Extractor using the gosseract client. A fresh client
// is created per call, so a single Tesseract value is safe to share across
// the scan pool.
type Tesseract struct {
	clientFactory func() *gosseract.Client
	languages     []string
}

// NewTesseract constructs a Tesseract-backed extractor. With no languages
// given it recognizes simplified Chinese plus English, matching the text the
// detectors are tuned for.
func NewTesseract(languages ...string) *Tesseract {
	if len(languages) == 0 {
		languages = []string{"chi_sim", "eng"}
	}
	return &Tesseract{clientFactory: gosseract.NewClient, languages: languages}
}

func (t *Tesseract) Name() string { return "tesseract" }

// ExtractText decodes and preprocesses the image at path, then runs
// recognition on it.
func (t *Tesseract) ExtractText(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, Preprocess(img)); err != nil {
		return "", fmt.Errorf("encode preprocessed image: %w", err)
	}

	c := t.clientFactory()
	defer c.Close()
	if err := c.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if err := c.SetLanguage(t.languages...); err != nil {
		return "", fmt.Errorf("set languages: %w", err)
	}
	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}
