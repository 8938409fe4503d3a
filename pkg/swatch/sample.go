// Package swatch определяет цвет образца по фотографии.
package swatch

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Регистрируем JPEG декодер
	_ "image/png"  // Регистрируем PNG декодер
	"math"

	"github.com/nfnt/resize"

	"github.com/ilkoid/paintmix/pkg/colorspace"
)

// DefaultSampleSize — сторона уменьшенного изображения.
const DefaultSampleSize = 16

// SampleColor возвращает средний цвет изображения.
//
// Параметры:
//   - data: байты изображения (JPEG, PNG)
//   - size: сторона квадрата, до которого уменьшается изображение перед
//     усреднением. 0 или меньше — DefaultSampleSize.
//
// Уменьшение сглаживает блики и текстуру мазка, полупрозрачные пиксели
// учитываются с весом альфа-канала.
func SampleColor(data []byte, size int) (colorspace.RGB, error) {
	// 1. Декодируем изображение
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return colorspace.RGB{}, fmt.Errorf("decode image: %w", err)
	}

	if size <= 0 {
		size = DefaultSampleSize
	}

	// 2. Уменьшаем до size x size (Bilinear достаточно для усреднения)
	small := resize.Resize(uint(size), uint(size), img, resize.Bilinear)

	// 3. Усредняем в 16-битном пространстве image/color
	var sumR, sumG, sumB, sumA float64
	bounds := small.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := small.At(x, y).RGBA()
			sumR += float64(r)
			sumG += float64(g)
			sumB += float64(b)
			sumA += float64(a)
		}
	}

	if sumA == 0 {
		return colorspace.RGB{}, fmt.Errorf("image is fully transparent")
	}

	// RGBA() отдаёт премультиплицированные значения: делим на сумму альфы.
	return colorspace.RGB{
		R: channel(sumR / sumA),
		G: channel(sumG / sumA),
		B: channel(sumB / sumA),
	}, nil
}

func channel(v float64) int {
	return int(math.Round(math.Min(1, math.Max(0, v)) * 255))
}
