package palette

import (
	"strconv"
	"strings"

	"github.com/ilkoid/paintmix/pkg/formula"
	"github.com/ilkoid/paintmix/pkg/utils"
)

// GroupByRatioSignature раскладывает записи по сигнатурам пропорций.
//
// Записи без сигнатуры (пустая, битая рецептура, разные семейства единиц)
// пропускаются. Каждая запись попадает не более чем в одну группу; внутри
// группы сохраняется входной порядок.
func GroupByRatioSignature(records []ColorRecord) map[string][]ColorRecord {
	groups := make(map[string][]ColorRecord)
	for _, r := range records {
		sig, ok := formula.Signature(r.Formula)
		if !ok {
			continue
		}
		groups[sig] = append(groups[sig], r)
	}
	return groups
}

// FindDuplicates возвращает только группы из двух и более записей.
//
// Порядок групп — по первому появлению сигнатуры во входном срезе,
// поэтому экран проверки дубликатов стабилен между вызовами.
func FindDuplicates(records []ColorRecord) []DuplicateGroup {
	groups := make(map[string][]ColorRecord)
	var order []string

	for _, r := range records {
		sig, ok := formula.Signature(r.Formula)
		if !ok {
			continue
		}
		if _, exists := groups[sig]; !exists {
			order = append(order, sig)
		}
		groups[sig] = append(groups[sig], r)
	}

	result := make([]DuplicateGroup, 0)
	for _, sig := range order {
		if len(groups[sig]) > 1 {
			result = append(result, DuplicateGroup{Signature: sig, Records: groups[sig]})
		}
	}

	utils.Debug("duplicate scan finished", "records", len(records), "signatures", len(groups), "duplicate_groups", len(result))
	return result
}

// ParseRatio разбирает сигнатуру обратно в пары для показа.
//
// Делим по "|", затем по последнему ":" — имя может содержать двоеточие.
// Пары с неразбираемым числом пропускаются.
func ParseRatio(signature string) RatioBreakdown {
	breakdown := RatioBreakdown{Items: []RatioItem{}}
	if signature == "" {
		return breakdown
	}

	for _, pair := range strings.Split(signature, formula.PairSeparator) {
		idx := strings.LastIndex(pair, formula.RatioSeparator)
		if idx <= 0 {
			continue
		}
		ratio, err := strconv.ParseFloat(pair[idx+1:], 64)
		if err != nil {
			continue
		}
		breakdown.Items = append(breakdown.Items, RatioItem{Name: pair[:idx], Ratio: ratio})
	}

	return breakdown
}
