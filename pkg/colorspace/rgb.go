// Package colorspace конвертирует цвет между RGB, HEX, CMYK, HSL и CIE LAB
// и считает перцептивное расстояние DeltaE.
//
// RGB — опорное представление: любое другое сначала переводится в RGB,
// затем при необходимости в LAB. Каналы RGB/CMYK/HSL округляются до целых,
// LAB — до двух знаков, чтобы повторные конвертации давали одинаковый результат.
package colorspace

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var hexRe = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// RGB — цвет в 8-битных каналах.
type RGB struct {
	R int `json:"r" yaml:"r"`
	G int `json:"g" yaml:"g"`
	B int `json:"b" yaml:"b"`
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// Validate проверяет что все каналы в диапазоне [0,255].
func (c RGB) Validate() error {
	for _, v := range []int{c.R, c.G, c.B} {
		if v < 0 || v > 255 {
			return conversionErr("rgb", c.String(), "channel out of range [0,255]")
		}
	}
	return nil
}

// colorful переводит в представление go-colorful (каналы 0..1).
func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: int(r), G: int(g), B: int(b)}
}

// RGBToHex возвращает "#RRGGBB" в верхнем регистре.
func RGBToHex(c RGB) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	return strings.ToUpper(c.colorful().Hex()), nil
}

// HexToRGB разбирает ровно 6 шестнадцатеричных цифр, "#" необязателен,
// регистр не важен.
func HexToRGB(hex string) (RGB, error) {
	s := strings.TrimSpace(hex)
	if !hexRe.MatchString(s) {
		return RGB{}, conversionErr("hex_to_rgb", fmt.Sprintf("%q", hex), "expected 6 hex digits")
	}
	c, err := colorful.Hex("#" + strings.ToLower(strings.TrimPrefix(s, "#")))
	if err != nil {
		return RGB{}, conversionErr("hex_to_rgb", fmt.Sprintf("%q", hex), err.Error())
	}
	return fromColorful(c), nil
}

func round(v float64) int {
	return int(math.Round(v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
