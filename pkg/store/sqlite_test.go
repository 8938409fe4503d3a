package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilkoid/paintmix/pkg/colorspace"
	"github.com/ilkoid/paintmix/pkg/config"
	"github.com/ilkoid/paintmix/pkg/palette"
	"github.com/ilkoid/paintmix/pkg/rename"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), config.StorageConfig{
		DBPath: filepath.Join(t.TempDir(), "colors.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seed(t *testing.T, s *Store, formulas ...string) {
	t.Helper()
	recs := make([]palette.ColorRecord, 0, len(formulas))
	for _, f := range formulas {
		recs = append(recs, palette.ColorRecord{Name: f, Formula: f})
	}
	n, err := s.InsertColors(context.Background(), recs)
	require.NoError(t, err)
	require.Equal(t, len(formulas), n)
}

func storedFormulas(t *testing.T, s *Store) []string {
	t.Helper()
	recs, err := s.ListColors(context.Background())
	require.NoError(t, err)
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Formula
	}
	return out
}

func TestStore_InsertAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.InsertColor(ctx, palette.ColorRecord{
		Name:     "天空",
		Formula:  "钛白 15g 天蓝 3g",
		Category: "蓝色系",
		HEX:      "#87CEEB",
		RGB:      &colorspace.RGB{R: 135, G: 206, B: 235},
		CMYK:     &colorspace.CMYK{C: 43, M: 12, Y: 0, K: 8},
	})
	require.NoError(t, err)
	_, err = s.InsertColor(ctx, palette.ColorRecord{Name: "空", Category: "黑色系"})
	require.NoError(t, err)

	got, err := s.GetColor(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "天空", got.Name)
	assert.Equal(t, &colorspace.RGB{R: 135, G: 206, B: 235}, got.RGB)
	assert.Equal(t, 43.0, got.CMYK.C)
	assert.Nil(t, got.HSL)

	all, err := s.ListColors(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Nil(t, all[1].RGB)
	assert.Nil(t, all[1].CMYK)

	_, err = s.GetColor(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_RenameScenario(t *testing.T) {
	s := openTestStore(t)
	seed(t, s, "天蓝 3g", "钛白 15g 天蓝 3g", "深绿 1g")

	n, err := rename.NewEngine().RenameAcrossFormulas(context.Background(), s, "天蓝", "湖蓝")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"湖蓝 3g", "钛白 15g 湖蓝 3g", "深绿 1g"}, storedFormulas(t, s))
}

func TestStore_RenameRollsBackOnWriteFailure(t *testing.T) {
	s := openTestStore(t)
	seed(t, s, "天蓝 3g", "钛白 15g 天蓝 3g", "深绿 1g 天蓝 1g")

	// Вторая запись падает на UPDATE: первая должна откатиться.
	_, err := s.db.Exec(`CREATE TRIGGER fail_second BEFORE UPDATE ON colors
		WHEN NEW.id = 2 BEGIN SELECT RAISE(ABORT, 'disk full'); END`)
	require.NoError(t, err)

	n, err := rename.NewEngine().RenameAcrossFormulas(context.Background(), s, "天蓝", "湖蓝")
	require.Error(t, err)
	assert.Zero(t, n)

	var te *rename.TransactionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "update", te.Op)
	assert.Contains(t, err.Error(), "disk full")

	assert.Equal(t, []string{"天蓝 3g", "钛白 15g 天蓝 3g", "深绿 1g 天蓝 1g"}, storedFormulas(t, s))
}

func TestStore_RenamePigmentCatalogue(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seed(t, s, "天蓝 3g")

	require.NoError(t, s.AddPigment(ctx, "天蓝"))
	require.NoError(t, s.AddPigment(ctx, "钛白"))
	require.NoError(t, s.AddPigment(ctx, "天蓝"))
	assert.ErrorIs(t, s.AddPigment(ctx, "5g"), rename.ErrInvalidName)

	_, err := rename.NewEngine().RenameAcrossFormulas(ctx, s, "天蓝", "湖蓝")
	require.NoError(t, err)

	names, err := s.ListPigments(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"湖蓝", "钛白"}, names)

	// Слияние с уже существующим пигментом.
	_, err = rename.NewEngine().RenameAcrossFormulas(ctx, s, "湖蓝", "钛白")
	require.NoError(t, err)
	names, err = s.ListPigments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"钛白"}, names)
	assert.Equal(t, []string{"钛白 3g"}, storedFormulas(t, s))
}

func TestStore_WithinTxCommitAndRollback(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seed(t, s, "A 1g")

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(tx rename.Tx) error {
		require.NoError(t, tx.UpdateFormula(ctx, 1, "B 1g"))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"A 1g"}, storedFormulas(t, s))

	err = s.WithinTx(ctx, func(tx rename.Tx) error {
		return tx.UpdateFormula(ctx, 42, "B 1g")
	})
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.WithinTx(ctx, func(tx rename.Tx) error {
		return tx.UpdateFormula(ctx, 1, "C 1g")
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"C 1g"}, storedFormulas(t, s))
}

func TestStore_SnapshotFeedsDuplicateScan(t *testing.T) {
	s := openTestStore(t)
	seed(t, s, "钛白 15g 天蓝 3g", "钛白 5g 天蓝 1g", "深绿 1g")

	recs, err := s.ListColors(context.Background())
	require.NoError(t, err)

	groups := palette.FindDuplicates(recs)
	require.Len(t, groups, 1)
	assert.Equal(t, "天蓝:1.0000|钛白:5.0000", groups[0].Signature)
	assert.Len(t, groups[0].Records, 2)
}
