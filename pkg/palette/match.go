package palette

import (
	"fmt"
	"sort"

	"github.com/ilkoid/paintmix/pkg/colorspace"
	"github.com/ilkoid/paintmix/pkg/utils"
)

// DefaultLimit — сколько кандидатов возвращает поиск по умолчанию.
const DefaultLimit = 10

// MatcherOptions — настройки поиска ближайших цветов.
type MatcherOptions struct {
	Limit     int               // лимит по умолчанию, <= 0 — DefaultLimit
	Metric    colorspace.Metric // пусто — CIE76
	Fallbacks map[string]string // категория -> HEX, nil — DefaultCategoryFallbacks
}

// Matcher ищет ближайшие по DeltaE цвета в снимке.
//
// Состояния между вызовами не держит: пул передаётся в каждый вызов.
type Matcher struct {
	limit     int
	metric    colorspace.Metric
	fallbacks map[string]string
}

// NewMatcher создаёт Matcher с дефолтами для незаполненных полей.
func NewMatcher(opts MatcherOptions) *Matcher {
	m := &Matcher{
		limit:     opts.Limit,
		metric:    opts.Metric,
		fallbacks: opts.Fallbacks,
	}
	if m.limit <= 0 {
		m.limit = DefaultLimit
	}
	if m.metric == "" {
		m.metric = colorspace.MetricCIE76
	}
	if m.fallbacks == nil {
		m.fallbacks = DefaultCategoryFallbacks
	}
	return m
}

// FindNearest — поиск с настройками по умолчанию (CIE76, стандартные
// цвета категорий).
func FindNearest(target colorspace.Value, pool []ColorRecord, limit int) ([]MatchResult, error) {
	return NewMatcher(MatcherOptions{}).FindNearest(target, pool, limit)
}

// FindNearest возвращает до limit записей, отсортированных по возрастанию DeltaE.
//
// limit <= 0 — лимит матчера. Ошибка возвращается только для некорректной
// цели; битые записи пула пропускаются. При равных DeltaE сохраняется
// порядок пула.
func (m *Matcher) FindNearest(target colorspace.Value, pool []ColorRecord, limit int) ([]MatchResult, error) {
	if limit <= 0 {
		limit = m.limit
	}

	targetLab, err := target.ToLab()
	if err != nil {
		return nil, fmt.Errorf("resolve target color: %w", err)
	}

	results := make([]MatchResult, 0, len(pool))
	skipped := 0

	for _, r := range pool {
		rgb, ok, err := ResolveRGB(r, m.fallbacks)
		if err != nil {
			utils.Debug("match: skip record with invalid color", "id", r.ID, "name", r.Name, "error", err)
			skipped++
			continue
		}
		if !ok {
			skipped++
			continue
		}

		lab, err := colorspace.RGBToLab(rgb)
		if err != nil {
			utils.Debug("match: skip record", "id", r.ID, "error", err)
			skipped++
			continue
		}

		results = append(results, MatchResult{Record: r, DeltaE: m.metric.Distance(targetLab, lab)})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DeltaE < results[j].DeltaE
	})

	if len(results) > limit {
		results = results[:limit]
	}

	utils.Debug("match finished", "pool", len(pool), "skipped", skipped, "returned", len(results))
	return results, nil
}
