package vision

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Crop returns the sub-image of img bounded by r, clamped to img's bounds.
// The result is a copy, safe to mutate independently of the source.
func Crop(img image.Image, r image.Rectangle) *image.RGBA {
	r = r.Intersect(img.Bounds())
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
	return out
}

// CropAround crops a w×h region whose top-left corner is at (x, y).
func CropAround(img image.Image, x, y, w, h int) *image.RGBA {
	return Crop(img, image.Rect(x, y, x+w, y+h))
}

// Resize scales img to w×h using bilinear interpolation.
func Resize(img image.Image, w, h int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	return out
}

// Upscale scales img by an integer factor. Recognition engines resolve
// small numerals far more reliably on upscaled crops.
func Upscale(img image.Image, factor int) *image.RGBA {
	b := img.Bounds()
	return Resize(img, b.Dx()*factor, b.Dy()*factor)
}

// Grayscale converts img to 8-bit grayscale.
func Grayscale(img image.Image) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(x-b.Min.X, y-b.Min.Y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return out
}

// MeanBrightness returns the average grayscale intensity of img in 0..255.
func MeanBrightness(img image.Image) float64 {
	gray := Grayscale(img)
	b := gray.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 0
	}
	var sum uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			sum += uint64(gray.GrayAt(x, y).Y)
		}
	}
	return float64(sum) / float64(total)
}

// WhiteRatio returns the fraction of pixels whose grayscale intensity is at
// least threshold. Used to read binary UI states from label backgrounds.
func WhiteRatio(img image.Image, threshold uint8) float64 {
	gray := Grayscale(img)
	b := gray.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 0
	}
	white := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if gray.GrayAt(x, y).Y >= threshold {
				white++
			}
		}
	}
	return float64(white) / float64(total)
}
