package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ilkoid/paintmix/pkg/colorspace"
	"github.com/ilkoid/paintmix/pkg/palette"
	"github.com/ilkoid/paintmix/pkg/report"
	"github.com/ilkoid/paintmix/pkg/s3storage"
)

// printer выводит результаты команд в человекочитаемом или JSON формате.
type printer struct {
	w        io.Writer
	renderer *report.Renderer
	json     bool
}

func newPrinter(w io.Writer, r *report.Renderer, jsonOut bool) *printer {
	return &printer{w: w, renderer: r, json: jsonOut}
}

func (p *printer) Imported(n int) error {
	if p.json {
		return p.writeJSON(struct {
			Imported int `json:"imported"`
		}{n})
	}
	_, err := fmt.Fprintf(p.w, "Imported %d colors\n", n)
	return err
}

func (p *printer) Snapshots(objects []s3storage.StoredObject) error {
	if p.json {
		type snapshot struct {
			Key          string    `json:"key"`
			Size         int64     `json:"size"`
			LastModified time.Time `json:"last_modified"`
		}
		out := make([]snapshot, 0, len(objects))
		for _, o := range objects {
			out = append(out, snapshot{o.Key, o.Size, o.LastModified})
		}
		return p.writeJSON(out)
	}
	_, err := io.WriteString(p.w, p.renderer.Snapshots(objects))
	return err
}

func (p *printer) Duplicates(groups []palette.DuplicateGroup) error {
	if p.json {
		type group struct {
			palette.DuplicateGroup
			Ratio palette.RatioBreakdown `json:"ratio"`
		}
		out := make([]group, 0, len(groups))
		for _, g := range groups {
			out = append(out, group{DuplicateGroup: g, Ratio: palette.ParseRatio(g.Signature)})
		}
		return p.writeJSON(out)
	}
	_, err := io.WriteString(p.w, p.renderer.Duplicates(groups))
	return err
}

func (p *printer) Matches(target colorspace.RGB, results []palette.MatchResult) error {
	if p.json {
		hex, _ := colorspace.RGBToHex(target)
		return p.writeJSON(struct {
			Target  colorspace.RGB        `json:"target"`
			HEX     string                `json:"target_hex"`
			Results []palette.MatchResult `json:"results"`
		}{target, hex, results})
	}
	_, err := io.WriteString(p.w, p.renderer.Matches(target, results))
	return err
}

func (p *printer) Renamed(oldName, newName string, rows int) error {
	if p.json {
		return p.writeJSON(struct {
			From    string `json:"from"`
			To      string `json:"to"`
			Updated int    `json:"updated"`
		}{oldName, newName, rows})
	}
	_, err := io.WriteString(p.w, p.renderer.Renamed(oldName, newName, rows))
	return err
}

func (p *printer) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	_, err = fmt.Fprintln(p.w, string(data))
	return err
}
