package colorspace

import "fmt"

// Lab — CIE L*a*b* (D65). Используется только для расстояний.
type Lab struct {
	L float64 `json:"l" yaml:"l"`
	A float64 `json:"a" yaml:"a"`
	B float64 `json:"b" yaml:"b"`
}

func (c Lab) String() string {
	return fmt.Sprintf("lab(%.2f,%.2f,%.2f)", c.L, c.A, c.B)
}

// RGBToLab: sRGB -> линейный sRGB (кусочная гамма) -> XYZ (D65) -> LAB
// с порогом 6/29 для f(t). Математику выполняет go-colorful, который
// возвращает L в [0,1], поэтому масштабируем на 100.
func RGBToLab(c RGB) (Lab, error) {
	if err := c.Validate(); err != nil {
		return Lab{}, err
	}

	l, a, b := c.colorful().Lab()
	return Lab{
		L: round2(l * 100),
		A: round2(a * 100),
		B: round2(b * 100),
	}, nil
}
