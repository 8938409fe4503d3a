package palette

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ilkoid/paintmix/pkg/colorspace"
)

// snapshotFile — формат YAML-снимка палитры:
//
//	colors:
//	  - id: 1
//	    name: 天空
//	    formula: 钛白 15g 天蓝 3g
//	    category: 蓝色系
//	    color: "#87CEEB"        # любая нотация colorspace.Parse
type snapshotFile struct {
	Colors []snapshotColor `yaml:"colors"`
}

type snapshotColor struct {
	ColorRecord `yaml:",inline"`
	Color       string `yaml:"color"`
}

// LoadSnapshot разбирает YAML-снимок палитры.
//
// Поле color разбирается colorspace.Parse и заполняет соответствующее
// представление, если оно не задано явно.
func LoadSnapshot(data []byte) ([]ColorRecord, error) {
	var file snapshotFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot yaml: %w", err)
	}

	records := make([]ColorRecord, 0, len(file.Colors))
	for i, c := range file.Colors {
		rec := c.ColorRecord
		rec.Formula = strings.TrimSpace(rec.Formula)

		if notation := strings.TrimSpace(c.Color); notation != "" {
			v, err := colorspace.Parse(notation)
			if err != nil {
				return nil, fmt.Errorf("snapshot entry %d (%s): %w", i, rec.Name, err)
			}
			mergeValue(&rec, v)
		}

		records = append(records, rec)
	}

	return records, nil
}

// mergeValue заполняет пустые цветовые поля записи.
func mergeValue(rec *ColorRecord, v colorspace.Value) {
	if rec.RGB == nil {
		rec.RGB = v.RGB
	}
	if rec.HEX == "" {
		rec.HEX = v.HEX
	}
	if rec.CMYK == nil {
		rec.CMYK = v.CMYK
	}
	if rec.HSL == nil {
		rec.HSL = v.HSL
	}
}
