// Package formula разбирает текстовые рецептуры красок и строит по ним
// канонические сигнатуры пропорций.
//
// Рецептура — строка вида "钛白 15g 天蓝 3g": имена пигментов чередуются
// с количествами. Разбор никогда не падает: исторические данные вводились
// вручную, поэтому всё, что не укладывается в пары (имя, количество),
// молча отбрасывается.
package formula

import (
	"regexp"
	"strconv"
	"strings"
)

// quantityRe — токен количества: цифры/точка и единица из латиницы или CJK.
// Грамматика намеренно не расширяется: старые записи должны разбираться так же.
var quantityRe = regexp.MustCompile(`^([0-9.]+)([A-Za-z\x{4e00}-\x{9fff}]+)$`)

// Entry — одна позиция рецептуры.
type Entry struct {
	Name   string  `json:"name" yaml:"name"`
	Amount float64 `json:"amount" yaml:"amount"`
	Unit   string  `json:"unit" yaml:"unit"`
}

// IsQuantityToken сообщает, является ли токен количеством ("15g", "3滴").
//
// Единственный предикат для токенизатора и каскадного переименования:
// переименование не должно трогать токены количества.
func IsQuantityToken(token string) bool {
	return quantityRe.MatchString(token)
}

// SplitQuantity разбивает токен количества на число и единицу.
//
// ok == false если токен не является количеством или число не парсится
// (например "1.2.3g").
func SplitQuantity(token string) (amount float64, unit string, ok bool) {
	m := quantityRe.FindStringSubmatch(token)
	if m == nil {
		return 0, "", false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", false
	}
	return v, m[2], true
}

// Fields делит рецептуру по пробельным последовательностям.
func Fields(text string) []string {
	return strings.Fields(text)
}

// Tokenize разбирает рецептуру в упорядоченный список позиций.
//
// Идём парами: если текущий токен — имя, а следующий — количество,
// выдаём позицию и сдвигаемся на 2, иначе отбрасываем токен-сироту.
// Пустая строка даёт пустой (не nil) срез.
func Tokenize(text string) []Entry {
	tokens := Fields(text)
	entries := make([]Entry, 0, len(tokens)/2)

	for i := 0; i < len(tokens); {
		if i+1 < len(tokens) && !IsQuantityToken(tokens[i]) {
			if amount, unit, ok := splitForEntry(tokens[i+1]); ok {
				entries = append(entries, Entry{Name: tokens[i], Amount: amount, Unit: unit})
				i += 2
				continue
			}
		}
		i++
	}

	return entries
}

// splitForEntry как SplitQuantity, но токен с неразбираемым числом
// всё равно считается количеством: позиция сохраняется с NaN, чтобы
// сигнатура по такой рецептуре не строилась.
func splitForEntry(token string) (float64, string, bool) {
	m := quantityRe.FindStringSubmatch(token)
	if m == nil {
		return 0, "", false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nanAmount(), m[2], true
	}
	return v, m[2], true
}
