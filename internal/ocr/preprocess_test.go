package ocr

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPreprocess_SmallImageUpscaled(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 400; x++ {
			src.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	out := Preprocess(src)
	_, isGray := out.(*image.Gray)
	require.True(t, isGray)
	require.Equal(t, 800, out.Bounds().Dx())
	require.Equal(t, 400, out.Bounds().Dy())
}

func TestPreprocess_LargeImageKeepsSize(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1200, 300))
	out := Preprocess(src)
	_, isGray := out.(*image.Gray)
	require.True(t, isGray)
	require.Equal(t, 1200, out.Bounds().Dx())
	require.Equal(t, 300, out.Bounds().Dy())
}
