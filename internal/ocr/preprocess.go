package ocr

import (
	"image"

	"golang.org/x/image/draw"
)

// minRecognitionWidth is the width below which OCR accuracy on dense CJK
// text drops off sharply; smaller images are upscaled before recognition.
const minRecognitionWidth = 1000

// Preprocess prepares a decoded image for recognition: grayscale conversion
// and, for small images, a 2x Catmull-Rom upscale. Binarization is left to
// the OCR engine, which thresholds adaptively.
func Preprocess(img image.Image) image.Image {
	b := img.Bounds()
	gray := image.NewGray(b)
	draw.Draw(gray, b, img, b.Min, draw.Src)
	if b.Dx() >= minRecognitionWidth {
		return gray
	}
	scaled := image.NewGray(image.Rect(0, 0, b.Dx()*2, b.Dy()*2))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), gray, b, draw.Src, nil)
	return scaled
}
