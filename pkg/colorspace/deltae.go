package colorspace

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Metric — способ считать перцептивное расстояние между двумя LAB.
type Metric string

const (
	// MetricCIE76 — евклидово расстояние в LAB. По умолчанию.
	MetricCIE76 Metric = "cie76"
	// MetricCIEDE2000 — CIEDE2000 из go-colorful.
	MetricCIEDE2000 Metric = "ciede2000"
)

// ParseMetric разбирает имя метрики из конфига. Пустая строка — CIE76.
func ParseMetric(name string) (Metric, error) {
	switch Metric(strings.ToLower(strings.TrimSpace(name))) {
	case "", MetricCIE76:
		return MetricCIE76, nil
	case MetricCIEDE2000:
		return MetricCIEDE2000, nil
	default:
		return "", fmt.Errorf("unknown color metric %q", name)
	}
}

// Distance считает расстояние выбранной метрикой.
func (m Metric) Distance(a, b Lab) float64 {
	if m == MetricCIEDE2000 {
		ca := colorful.Lab(a.L/100, a.A/100, a.B/100)
		cb := colorful.Lab(b.L/100, b.A/100, b.B/100)
		return ca.DistanceCIEDE2000(cb) * 100
	}
	return DeltaE(a, b)
}

// DeltaE — CIE76: sqrt(dL^2 + da^2 + db^2).
func DeltaE(a, b Lab) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// DeltaERGB — DeltaE между двумя RGB-цветами.
func DeltaERGB(a, b RGB) (float64, error) {
	la, err := RGBToLab(a)
	if err != nil {
		return 0, err
	}
	lb, err := RGBToLab(b)
	if err != nil {
		return 0, err
	}
	return DeltaE(la, lb), nil
}
