package colorspace

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSL — тон в градусах [0,360], насыщенность и светлота в процентах [0,100].
type HSL struct {
	H float64 `json:"h" yaml:"h"`
	S float64 `json:"s" yaml:"s"`
	L float64 `json:"l" yaml:"l"`
}

func (c HSL) String() string {
	return fmt.Sprintf("hsl(%g,%g,%g)", c.H, c.S, c.L)
}

// Validate проверяет диапазоны каналов.
func (c HSL) Validate() error {
	if math.IsNaN(c.H) || c.H < 0 || c.H > 360 {
		return conversionErr("hsl", c.String(), "hue out of range [0,360]")
	}
	if math.IsNaN(c.S) || c.S < 0 || c.S > 100 || math.IsNaN(c.L) || c.L < 0 || c.L > 100 {
		return conversionErr("hsl", c.String(), "saturation/lightness out of range [0,100]")
	}
	return nil
}

// RGBToHSL — цилиндрическое преобразование, каналы округлены до целых.
// Тон 360 после округления сворачивается в 0.
func RGBToHSL(c RGB) (HSL, error) {
	if err := c.Validate(); err != nil {
		return HSL{}, err
	}

	h, s, l := c.colorful().Hsl()
	hue := round(h)
	if hue >= 360 {
		hue -= 360
	}

	return HSL{
		H: float64(hue),
		S: float64(round(s * 100)),
		L: float64(round(l * 100)),
	}, nil
}

// HSLToRGB — обратное преобразование.
func HSLToRGB(c HSL) (RGB, error) {
	if err := c.Validate(); err != nil {
		return RGB{}, err
	}
	return fromColorful(colorful.Hsl(c.H, c.S/100, c.L/100)), nil
}
