package image

import (
	"bytes"
	"errors"
	"fmt"
	goimage "image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ErrLoad marks an image that could not be opened or decoded. Callers skip
// such files instead of failing the run.
var ErrLoad = errors.New("image could not be loaded")

type ImageProcessor struct{}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{}
}

// Open decodes path once, honouring EXIF orientation. Failures wrap ErrLoad.
func (ip *ImageProcessor) Open(path string) (goimage.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("opening image %s: %w: %v", path, ErrLoad, err)
	}
	return img, nil
}

// BinarizeImage converts img to grayscale and thresholds it with Otsu's
// method. The result only contains pure black and pure white pixels.
func (ip *ImageProcessor) BinarizeImage(img goimage.Image) *goimage.NRGBA {
	gray := imaging.Grayscale(img)
	threshold := OtsuThreshold(Histogram(gray))
	return Threshold(gray, threshold)
}

// Threshold maps every pixel brighter than t to white and the rest to
// black. img is expected to be grayscale already.
func Threshold(img goimage.Image, t uint8) *goimage.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		if c.R > t {
			return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		}
		return color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	})
}

// Histogram counts pixel intensities of a grayscale image. The red channel
// stands in for luminance.
func Histogram(img *goimage.NRGBA) [256]int {
	var hist [256]int
	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+b.Dx()*4]
		for x := 0; x < len(row); x += 4 {
			hist[row[x]]++
		}
	}
	return hist
}

// OtsuThreshold picks the level t that maximises the between-class variance
// of the two classes [0, t] and (t, 255].
func OtsuThreshold(hist [256]int) uint8 {
	total := 0
	var sum float64
	for i, n := range hist {
		total += n
		sum += float64(i) * float64(n)
	}
	if total == 0 {
		return 0
	}

	var (
		sumB    float64
		weightB int
		best    float64
		level   int
	)
	for t := 0; t < 256; t++ {
		weightB += hist[t]
		if weightB == 0 {
			continue
		}
		weightF := total - weightB
		if weightF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])

		meanB := sumB / float64(weightB)
		meanF := (sum - sumB) / float64(weightF)
		between := float64(weightB) * float64(weightF) * (meanB - meanF) * (meanB - meanF)
		if between > best {
			best = between
			level = t
		}
	}
	return uint8(level)
}

// EncodePNG serialises img for engines that take encoded bytes.
func EncodePNG(img goimage.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveJPEG encodes an already decoded image into dst as JPEG.
func (ip *ImageProcessor) SaveJPEG(img goimage.Image, dst string) error {
	if err := imaging.Save(img, dst, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("saving image %s: %w", dst, err)
	}
	return nil
}
