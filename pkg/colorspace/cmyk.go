package colorspace

import (
	"fmt"
	"math"
)

// CMYK — субтрактивная модель, каналы в процентах [0,100].
type CMYK struct {
	C float64 `json:"c" yaml:"c"`
	M float64 `json:"m" yaml:"m"`
	Y float64 `json:"y" yaml:"y"`
	K float64 `json:"k" yaml:"k"`
}

func (c CMYK) String() string {
	return fmt.Sprintf("cmyk(%g,%g,%g,%g)", c.C, c.M, c.Y, c.K)
}

// Validate проверяет что все каналы в [0,100].
func (c CMYK) Validate() error {
	for _, v := range []float64{c.C, c.M, c.Y, c.K} {
		if math.IsNaN(v) || v < 0 || v > 100 {
			return conversionErr("cmyk", c.String(), "channel out of range [0,100]")
		}
	}
	return nil
}

// RGBToCMYK: k = 1 - max(r,g,b)/255, c = (1-r/255-k)/(1-k) и т.д.
// Для чистого чёрного (1-k == 0) c = m = y = 0.
func RGBToCMYK(c RGB) (CMYK, error) {
	if err := c.Validate(); err != nil {
		return CMYK{}, err
	}

	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0

	k := 1 - math.Max(r, math.Max(g, b))
	if 1-k == 0 {
		return CMYK{K: 100}, nil
	}

	return CMYK{
		C: float64(round((1 - r - k) / (1 - k) * 100)),
		M: float64(round((1 - g - k) / (1 - k) * 100)),
		Y: float64(round((1 - b - k) / (1 - k) * 100)),
		K: float64(round(k * 100)),
	}, nil
}

// CMYKToRGB — обратное преобразование: r = 255*(1-c)*(1-k).
func CMYKToRGB(c CMYK) (RGB, error) {
	if err := c.Validate(); err != nil {
		return RGB{}, err
	}

	k := 1 - c.K/100
	return RGB{
		R: round(255 * (1 - c.C/100) * k),
		G: round(255 * (1 - c.M/100) * k),
		B: round(255 * (1 - c.Y/100) * k),
	}, nil
}
