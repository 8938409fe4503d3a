// Package palette работает со снимком пользовательских цветов: группирует
// дубликаты рецептур по сигнатуре пропорций и ищет ближайшие цвета по DeltaE.
//
// Все функции чистые: снимок принадлежит вызывающему и никогда не мутируется.
package palette

import (
	"github.com/ilkoid/paintmix/pkg/colorspace"
)

// ColorRecord — сохранённый пользовательский цвет.
type ColorRecord struct {
	ID       int64            `json:"id" yaml:"id"`
	Name     string           `json:"name" yaml:"name"`
	Formula  string           `json:"formula" yaml:"formula"`
	Category string           `json:"category,omitempty" yaml:"category,omitempty"`
	RGB      *colorspace.RGB  `json:"rgb,omitempty" yaml:"rgb,omitempty"`
	HEX      string           `json:"hex,omitempty" yaml:"hex,omitempty"`
	CMYK     *colorspace.CMYK `json:"cmyk,omitempty" yaml:"cmyk,omitempty"`
	HSL      *colorspace.HSL  `json:"hsl,omitempty" yaml:"hsl,omitempty"`
}

// Value возвращает цветовые поля записи как colorspace.Value.
func (r ColorRecord) Value() colorspace.Value {
	return colorspace.Value{RGB: r.RGB, HEX: r.HEX, CMYK: r.CMYK, HSL: r.HSL}
}

// DuplicateGroup — записи с одинаковой сигнатурой пропорций.
type DuplicateGroup struct {
	Signature string        `json:"signature"`
	Records   []ColorRecord `json:"records"`
}

// RatioItem — одна пара из сигнатуры.
type RatioItem struct {
	Name  string  `json:"name"`
	Ratio float64 `json:"ratio"`
}

// RatioBreakdown — разобранная для показа сигнатура.
type RatioBreakdown struct {
	Items []RatioItem `json:"items"`
}

// MatchResult — кандидат поиска и его расстояние до цели.
type MatchResult struct {
	Record ColorRecord `json:"record"`
	DeltaE float64     `json:"delta_e"`
}
