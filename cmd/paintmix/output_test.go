package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilkoid/paintmix/pkg/app"
	"github.com/ilkoid/paintmix/pkg/config"
)

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "paintmix.db")
	return cfg
}

func TestCommands_ImportAndDuplicatesJSON(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	require.NoError(t, run(ctx, commands["import"], []string{"-file", "testdata/palette.yaml"}, true, cfg))

	var buf bytes.Buffer
	cmd := commands["duplicates"]
	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	exec := cmd.setup(fs)
	require.NoError(t, fs.Parse(nil))

	comps, err := app.Initialize(ctx, cfg)
	require.NoError(t, err)
	defer comps.Close()

	require.NoError(t, exec(ctx, comps, newPrinter(&buf, comps.Renderer, true)))

	var groups []struct {
		Signature string `json:"signature"`
		Ratio     struct {
			Items []struct {
				Name  string  `json:"name"`
				Ratio float64 `json:"ratio"`
			} `json:"items"`
		} `json:"ratio"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, "天蓝:1.0000|钛白:5.0000", groups[0].Signature)
	assert.Equal(t, 5.0, groups[0].Ratio.Items[1].Ratio)
}

func TestCommands_ArgumentErrors(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	assert.ErrorContains(t, run(ctx, commands["import"], nil, false, cfg), "-file or -s3")
	assert.ErrorContains(t, run(ctx, commands["match"], nil, false, cfg), "-color or -image")
	assert.ErrorContains(t, run(ctx, commands["match"], []string{"-color", "red"}, false, cfg), "match")
	assert.ErrorContains(t, run(ctx, commands["rename"], []string{"-to", "x"}, false, cfg), "-from")
	assert.ErrorContains(t, run(ctx, commands["snapshots"], nil, false, cfg), "not configured")
	assert.NoError(t, run(ctx, commands["rename"], []string{"-h"}, false, cfg))
}

func TestPrinter_Human(t *testing.T) {
	cfg := testConfig(t)
	comps, err := app.Initialize(context.Background(), cfg)
	require.NoError(t, err)
	defer comps.Close()

	var buf bytes.Buffer
	p := newPrinter(&buf, comps.Renderer, false)
	require.NoError(t, p.Imported(3))
	assert.Equal(t, "Imported 3 colors\n", buf.String())
}
