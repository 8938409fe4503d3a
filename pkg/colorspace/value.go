package colorspace

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Value — цвет, заданный в одном или нескольких представлениях.
//
// Разрешение в RGB идёт по приоритету: RGB, HEX, CMYK, HSL.
type Value struct {
	RGB  *RGB   `json:"rgb,omitempty" yaml:"rgb,omitempty"`
	HEX  string `json:"hex,omitempty" yaml:"hex,omitempty"`
	CMYK *CMYK  `json:"cmyk,omitempty" yaml:"cmyk,omitempty"`
	HSL  *HSL   `json:"hsl,omitempty" yaml:"hsl,omitempty"`
}

// IsEmpty сообщает что ни одно представление не задано.
func (v Value) IsEmpty() bool {
	return v.RGB == nil && strings.TrimSpace(v.HEX) == "" && v.CMYK == nil && v.HSL == nil
}

// ToRGB приводит значение к опорному RGB.
func (v Value) ToRGB() (RGB, error) {
	switch {
	case v.RGB != nil:
		if err := v.RGB.Validate(); err != nil {
			return RGB{}, err
		}
		return *v.RGB, nil
	case strings.TrimSpace(v.HEX) != "":
		return HexToRGB(v.HEX)
	case v.CMYK != nil:
		return CMYKToRGB(*v.CMYK)
	case v.HSL != nil:
		return HSLToRGB(*v.HSL)
	default:
		return RGB{}, ErrNoColor
	}
}

// ToLab — ToRGB + RGBToLab.
func (v Value) ToLab() (Lab, error) {
	rgb, err := v.ToRGB()
	if err != nil {
		return Lab{}, err
	}
	return RGBToLab(rgb)
}

var notationRe = regexp.MustCompile(`^(rgb|cmyk|hsl)\s*\(([^)]*)\)$`)

// Parse разбирает текстовую нотацию цвета:
//
//	#FF0000, FF0000, rgb(255,0,0), cmyk(0,100,100,0), hsl(0,100,50)
func Parse(notation string) (Value, error) {
	s := strings.ToLower(strings.TrimSpace(notation))
	if s == "" {
		return Value{}, ErrNoColor
	}

	if hexRe.MatchString(s) {
		return Value{HEX: "#" + strings.ToUpper(strings.TrimPrefix(s, "#"))}, nil
	}

	m := notationRe.FindStringSubmatch(s)
	if m == nil {
		return Value{}, conversionErr("parse", fmt.Sprintf("%q", notation), "unknown color notation")
	}

	nums, err := parseNumbers(m[2])
	if err != nil {
		return Value{}, conversionErr("parse", fmt.Sprintf("%q", notation), err.Error())
	}

	var v Value
	switch m[1] {
	case "rgb":
		if len(nums) != 3 {
			return Value{}, conversionErr("parse", fmt.Sprintf("%q", notation), "rgb needs 3 channels")
		}
		v.RGB = &RGB{R: round(nums[0]), G: round(nums[1]), B: round(nums[2])}
		err = v.RGB.Validate()
	case "cmyk":
		if len(nums) != 4 {
			return Value{}, conversionErr("parse", fmt.Sprintf("%q", notation), "cmyk needs 4 channels")
		}
		v.CMYK = &CMYK{C: nums[0], M: nums[1], Y: nums[2], K: nums[3]}
		err = v.CMYK.Validate()
	case "hsl":
		if len(nums) != 3 {
			return Value{}, conversionErr("parse", fmt.Sprintf("%q", notation), "hsl needs 3 channels")
		}
		v.HSL = &HSL{H: nums[0], S: nums[1], L: nums[2]}
		err = v.HSL.Validate()
	}
	if err != nil {
		return Value{}, err
	}

	return v, nil
}

// parseNumbers разбирает "1, 2.5, 3%" в числа; знак процента допускается.
func parseNumbers(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	nums := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSuffix(strings.TrimSpace(p), "%")
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", p)
		}
		nums = append(nums, v)
	}
	return nums, nil
}
