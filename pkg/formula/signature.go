package formula

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Разделители сигнатуры "name:ratio|name:ratio".
const (
	PairSeparator  = "|"
	RatioSeparator = ":"
	RatioPrecision = 4
)

// collators — корневая (language.Und) сортировка Unicode. Collator не
// потокобезопасен, поэтому держим пул.
var collators = sync.Pool{
	New: func() any { return collate.New(language.Und) },
}

// CompareNames — единый компаратор имён пигментов для всех сигнатур.
//
// Сначала корневая сортировка Unicode (латиница и CJK упорядочены
// стабильно), при равенстве — побайтовое сравнение.
func CompareNames(a, b string) int {
	col := collators.Get().(*collate.Collator)
	c := col.CompareString(a, b)
	collators.Put(col)
	if c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

type ratioPair struct {
	name  string
	ratio float64
}

// BuildSignature строит каноническую сигнатуру пропорций.
//
// Возвращает ok == false (сигнатура не определена), если позиций нет,
// есть нераспознанная единица, единицы из разных семейств или
// неположительное количество.
func BuildSignature(entries []Entry) (string, bool) {
	if len(entries) == 0 {
		return "", false
	}

	amounts := make([]float64, len(entries))
	var family Family
	minAmount := 0.0

	for i, e := range entries {
		if !(e.Amount > 0) {
			return "", false
		}
		base, fam, ok := ToBase(e)
		if !ok {
			return "", false
		}
		if i == 0 {
			family = fam
		} else if fam != family {
			return "", false
		}
		amounts[i] = base
		if i == 0 || base < minAmount {
			minAmount = base
		}
	}

	if !(minAmount > 0) {
		return "", false
	}

	pairs := make([]ratioPair, len(entries))
	for i, e := range entries {
		pairs[i] = ratioPair{name: e.Name, ratio: roundTo(amounts[i]/minAmount, RatioPrecision)}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		if c := CompareNames(pairs[i].name, pairs[j].name); c != 0 {
			return c < 0
		}
		return pairs[i].ratio < pairs[j].ratio
	})

	var sb strings.Builder
	for i, p := range pairs {
		if i > 0 {
			sb.WriteString(PairSeparator)
		}
		sb.WriteString(p.name)
		sb.WriteString(RatioSeparator)
		sb.WriteString(strconv.FormatFloat(p.ratio, 'f', RatioPrecision, 64))
	}

	return sb.String(), true
}

// Signature — Tokenize + BuildSignature.
func Signature(text string) (string, bool) {
	return BuildSignature(Tokenize(text))
}
