package palette

import (
	"strings"

	"github.com/ilkoid/paintmix/pkg/colorspace"
)

// DefaultCategoryFallbacks — цвет по умолчанию для категории, когда у записи
// нет ни одного цветового поля. Переопределяется секцией
// matching.category_fallbacks в config.yaml.
var DefaultCategoryFallbacks = map[string]string{
	"白色系": "#F5F5F0",
	"黑色系": "#1C1C1C",
	"灰色系": "#808080",
	"红色系": "#C0392B",
	"橙色系": "#E67E22",
	"黄色系": "#F1C40F",
	"绿色系": "#27AE60",
	"蓝色系": "#2E86C1",
	"紫色系": "#8E44AD",
	"棕色系": "#8B5A2B",
}

// ResolveRGB находит лучший доступный RGB записи: явные цветовые поля
// (RGB, HEX, CMYK, HSL), иначе цвет категории из fallbacks.
//
// ok == false — цвет не определить, запись не участвует в поиске.
// Ошибка — поле заполнено, но битое (ConversionError).
func ResolveRGB(r ColorRecord, fallbacks map[string]string) (rgb colorspace.RGB, ok bool, err error) {
	if v := r.Value(); !v.IsEmpty() {
		rgb, err = v.ToRGB()
		if err != nil {
			return colorspace.RGB{}, false, err
		}
		return rgb, true, nil
	}

	hex, found := fallbacks[strings.TrimSpace(r.Category)]
	if !found {
		return colorspace.RGB{}, false, nil
	}
	rgb, err = colorspace.HexToRGB(hex)
	if err != nil {
		return colorspace.RGB{}, false, err
	}
	return rgb, true, nil
}
