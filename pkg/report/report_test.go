package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ilkoid/paintmix/pkg/colorspace"
	"github.com/ilkoid/paintmix/pkg/palette"
	"github.com/ilkoid/paintmix/pkg/s3storage"
)

func TestRenderer_Duplicates(t *testing.T) {
	r := NewRenderer(DefaultStyles, 80, nil)

	out := r.Duplicates([]palette.DuplicateGroup{{
		Signature: "天蓝:1.0000|钛白:5.0000",
		Records: []palette.ColorRecord{
			{ID: 1, Name: "天空", Formula: "钛白 15g 天蓝 3g", HEX: "#87CEEB"},
			{ID: 2, Formula: "钛白 5g 天蓝 1g"},
		},
	}})

	assert.Contains(t, out, "1 groups")
	assert.Contains(t, out, "天蓝 × 1 : 钛白 × 5")
	assert.Contains(t, out, "天空")
	assert.Contains(t, out, "#2")
	assert.Contains(t, out, "钛白 5g 天蓝 1g")

	assert.Contains(t, r.Duplicates(nil), "No duplicate formulas")
}

func TestRenderer_Matches(t *testing.T) {
	r := NewRenderer(DefaultStyles, 0, nil)

	out := r.Matches(colorspace.RGB{R: 255}, []palette.MatchResult{
		{Record: palette.ColorRecord{ID: 7, Name: "大红", Formula: "大红 1g"}, DeltaE: 2.5},
	})
	assert.Contains(t, out, "#FF0000")
	assert.Contains(t, out, "ΔE   2.50")
	assert.Contains(t, out, "大红")

	assert.Contains(t, r.Matches(colorspace.RGB{}, nil), "No colors")
}

func TestRenderer_Renamed(t *testing.T) {
	r := NewRenderer(DefaultStyles, 80, nil)
	assert.Contains(t, r.Renamed("天蓝", "湖蓝", 2), "in 2 formulas")
	assert.Contains(t, r.Renamed("天蓝", "湖蓝", 0), "No formulas reference")
}

func TestRenderer_Snapshots(t *testing.T) {
	r := NewRenderer(DefaultStyles, 0, nil)

	out := r.Snapshots([]s3storage.StoredObject{{Key: "palettes/a.yaml", Size: 2048}})
	assert.Contains(t, out, "Palette snapshots: 1")
	assert.Contains(t, out, "2.00 KB")
	assert.Contains(t, out, "palettes/a.yaml")

	assert.Contains(t, r.Snapshots(nil), "No palette snapshots")
}

func TestFormatRatio(t *testing.T) {
	assert.Equal(t, "5", formatRatio(5))
	assert.Equal(t, "2.5", formatRatio(2.5))
	assert.Equal(t, "1.3333", formatRatio(1.3333))
}
