package s3storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	objects []StoredObject
	files   map[string][]byte
	listErr error
}

func (f *fakeClient) ListFiles(ctx context.Context, prefix string) ([]StoredObject, error) {
	return f.objects, f.listErr
}

func (f *fakeClient) DownloadFile(ctx context.Context, key string) ([]byte, error) {
	data, ok := f.files[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return data, nil
}

func TestIsSnapshotKey(t *testing.T) {
	assert.True(t, IsSnapshotKey("palettes/2024.yaml"))
	assert.True(t, IsSnapshotKey("palettes/old.YML"))
	assert.False(t, IsSnapshotKey("palettes/swatch.jpg"))
	assert.False(t, IsSnapshotKey("palettes/"))
}

func TestListSnapshots(t *testing.T) {
	c := &fakeClient{objects: []StoredObject{
		{Key: "palettes/a.yaml", Size: 10},
		{Key: "palettes/swatch.png"},
		{Key: "palettes/b.yml"},
	}}

	got, err := ListSnapshots(context.Background(), c, "palettes")
	require.NoError(t, err)
	assert.Equal(t, []StoredObject{{Key: "palettes/a.yaml", Size: 10}, {Key: "palettes/b.yml"}}, got)
	assert.Len(t, c.objects, 3, "listing must not be modified")

	c.listErr = errors.New("access denied")
	_, err = ListSnapshots(context.Background(), c, "palettes")
	assert.ErrorContains(t, err, "access denied")
}

func TestLoadPalette(t *testing.T) {
	c := &fakeClient{
		objects: []StoredObject{
			{Key: "palettes/a.yaml"},
			{Key: "palettes/swatch.png"},
			{Key: "palettes/b.yml"},
		},
		files: map[string][]byte{
			"palettes/a.yaml": []byte("colors:\n  - id: 1\n    formula: 钛白 15g 天蓝 3g\n    color: \"#87CEEB\"\n"),
			"palettes/b.yml":  []byte("colors:\n  - id: 2\n    formula: 钛白 5g 天蓝 1g\n"),
		},
	}

	records, err := LoadPalette(context.Background(), c, "palettes")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(1), records[0].ID)
	assert.Equal(t, "#87CEEB", records[0].HEX)
	assert.Equal(t, int64(2), records[1].ID)
}

func TestLoadPalette_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := LoadPalette(ctx, &fakeClient{listErr: errors.New("access denied")}, "p")
	assert.ErrorContains(t, err, "access denied")

	_, err = LoadPalette(ctx, &fakeClient{objects: []StoredObject{{Key: "p/x.png"}}}, "p")
	assert.ErrorContains(t, err, "no snapshots")

	_, err = LoadPalette(ctx, &fakeClient{
		objects: []StoredObject{{Key: "p/bad.yaml"}},
		files:   map[string][]byte{"p/bad.yaml": []byte("colors:\n  - color: nope\n")},
	}, "p")
	assert.ErrorContains(t, err, "p/bad.yaml")

	_, err = LoadPalette(ctx, &fakeClient{objects: []StoredObject{{Key: "p/missing.yaml"}}}, "p")
	assert.ErrorContains(t, err, "no such key")
}
