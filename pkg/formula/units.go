package formula

import (
	"math"
	"strings"
)

// Family — каноническое семейство единиц.
type Family string

const (
	FamilyMass   Family = "mass"   // база: грамм
	FamilyVolume Family = "volume" // база: миллилитр
	FamilyDrop   Family = "drop"   // база: грамм (через DropToGram)
)

// Множители пересчёта в базовую единицу семейства.
//
// Таблица унаследована от калькулятора суммарного веса и является
// политикой, а не физикой: DropToGram — грубое приближение веса капли.
const (
	GramsPerKilogram   = 1000.0
	GramsPerMilligram  = 0.001
	MillilitersPerLitr = 1000.0
	DropToGram         = 0.05
)

// Unit описывает распознанную единицу.
type Unit struct {
	Family Family
	Base   string  // базовая единица семейства
	Factor float64 // amount * Factor = количество в базовой единице
}

// units — таблица распознаваемых единиц. ASCII-ключи в нижнем регистре.
var units = map[string]Unit{
	"g":  {Family: FamilyMass, Base: "g", Factor: 1},
	"克":  {Family: FamilyMass, Base: "g", Factor: 1},
	"kg": {Family: FamilyMass, Base: "g", Factor: GramsPerKilogram},
	"千克": {Family: FamilyMass, Base: "g", Factor: GramsPerKilogram},
	"mg": {Family: FamilyMass, Base: "g", Factor: GramsPerMilligram},
	"毫克": {Family: FamilyMass, Base: "g", Factor: GramsPerMilligram},

	"ml": {Family: FamilyVolume, Base: "ml", Factor: 1},
	"毫升": {Family: FamilyVolume, Base: "ml", Factor: 1},
	"l":  {Family: FamilyVolume, Base: "ml", Factor: MillilitersPerLitr},
	"升":  {Family: FamilyVolume, Base: "ml", Factor: MillilitersPerLitr},

	"滴": {Family: FamilyDrop, Base: "g", Factor: DropToGram},
}

// LookupUnit возвращает описание единицы. ASCII-единицы регистронезависимы.
func LookupUnit(unit string) (Unit, bool) {
	u, ok := units[strings.ToLower(unit)]
	return u, ok
}

// ToBase переводит количество позиции в базовую единицу её семейства.
func ToBase(e Entry) (float64, Family, bool) {
	u, ok := LookupUnit(e.Unit)
	if !ok {
		return 0, "", false
	}
	return e.Amount * u.Factor, u.Family, true
}

// Total — суммарное количество рецептуры.
type Total struct {
	Amount float64
	Unit   string
	Family Family
}

// TotalAmount суммирует позиции в базовой единице.
//
// Работает только если все единицы распознаны и принадлежат одному семейству,
// количества положительны.
func TotalAmount(entries []Entry) (Total, bool) {
	if len(entries) == 0 {
		return Total{}, false
	}

	var total Total
	for i, e := range entries {
		if !(e.Amount > 0) {
			return Total{}, false
		}
		u, ok := LookupUnit(e.Unit)
		if !ok {
			return Total{}, false
		}
		if i == 0 {
			total.Family = u.Family
			total.Unit = u.Base
		} else if u.Family != total.Family {
			return Total{}, false
		}
		total.Amount += e.Amount * u.Factor
	}

	total.Amount = roundTo(total.Amount, 4)
	return total, true
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func nanAmount() float64 {
	return math.NaN()
}
