// Package store хранит пользовательские цвета и справочник пигментов в SQLite.
//
// Store отдаёт снимок записей для поиска дубликатов и подбора цвета и
// реализует rename.Transactor для каскадного переименования.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	_ "github.com/mattn/go-sqlite3" // драйвер "sqlite3"

	"github.com/ilkoid/paintmix/pkg/colorspace"
	"github.com/ilkoid/paintmix/pkg/config"
	"github.com/ilkoid/paintmix/pkg/palette"
	"github.com/ilkoid/paintmix/pkg/rename"
	"github.com/ilkoid/paintmix/pkg/utils"
)

// Store — SQLite хранилище.
type Store struct {
	db *sql.DB
}

// Проверка что Store реализует rename.Transactor
var _ rename.Transactor = (*Store)(nil)

// Open открывает (или создаёт) базу и применяет схему.
func Open(ctx context.Context, cfg config.StorageConfig) (*Store, error) {
	cfg = cfg.GetDefaults()

	q := url.Values{}
	q.Set("_busy_timeout", fmt.Sprintf("%d", cfg.BusyTimeout.Milliseconds()))
	q.Set("_foreign_keys", "on")
	dsn := fmt.Sprintf("file:%s?%s", cfg.DBPath, q.Encode())

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", cfg.DBPath, err)
	}
	// SQLite пишет одним соединением: так транзакции не упираются в SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect sqlite %s: %w", cfg.DBPath, err)
	}

	s := &Store{db: db}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	utils.Info("store opened", "path", cfg.DBPath)
	return s, nil
}

// Close закрывает базу.
func (s *Store) Close() error {
	if s.db == nil {
		return ErrClosed
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Migrate создаёт таблицы если их нет.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// InsertColor сохраняет запись и возвращает её id. Поле ID игнорируется.
func (s *Store) InsertColor(ctx context.Context, rec palette.ColorRecord) (int64, error) {
	return insertColor(ctx, s.db, rec)
}

// InsertColors сохраняет записи одной транзакцией.
func (s *Store) InsertColors(ctx context.Context, recs []palette.ColorRecord) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for i, rec := range recs {
		if _, err := insertColor(ctx, tx, rec); err != nil {
			return 0, fmt.Errorf("import record %d (%s): %w", i, rec.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return len(recs), nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertColor(ctx context.Context, db execer, rec palette.ColorRecord) (int64, error) {
	args := []any{rec.Name, rec.Formula, rec.Category, rec.HEX}
	args = append(args, rgbArgs(rec.RGB)...)
	args = append(args, cmykArgs(rec.CMYK)...)
	args = append(args, hslArgs(rec.HSL)...)

	res, err := db.ExecContext(ctx, `INSERT INTO colors
		(name, formula, category, hex, rgb_r, rgb_g, rgb_b, cmyk_c, cmyk_m, cmyk_y, cmyk_k, hsl_h, hsl_s, hsl_l)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		return 0, fmt.Errorf("insert color: %w", err)
	}
	return res.LastInsertId()
}

// GetColor возвращает запись по id.
func (s *Store) GetColor(ctx context.Context, id int64) (palette.ColorRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+colorColumns+` FROM colors WHERE id = ?`, id)
	rec, err := scanColor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return palette.ColorRecord{}, fmt.Errorf("%w: color %d", ErrNotFound, id)
	}
	return rec, err
}

// ListColors возвращает снимок всех записей в порядке id.
func (s *Store) ListColors(ctx context.Context) ([]palette.ColorRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+colorColumns+` FROM colors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list colors: %w", err)
	}
	defer rows.Close()

	var records []palette.ColorRecord
	for rows.Next() {
		rec, err := scanColor(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list colors: %w", err)
	}
	return records, nil
}

// AddPigment добавляет пигмент в справочник; повтор — no-op.
func (s *Store) AddPigment(ctx context.Context, name string) error {
	if err := rename.ValidateName(name); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO pigments (name) VALUES (?)`, name); err != nil {
		return fmt.Errorf("add pigment %s: %w", name, err)
	}
	return nil
}

// ListPigments возвращает справочник пигментов по алфавиту.
func (s *Store) ListPigments(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM pigments ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list pigments: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// WithinTx выполняет fn в транзакции: commit если fn вернула nil,
// иначе rollback. Паника внутри fn тоже откатывает транзакцию.
func (s *Store) WithinTx(ctx context.Context, fn func(tx rename.Tx) error) (err error) {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &rename.TransactionError{Op: "begin", Err: err}
	}

	defer func() {
		if p := recover(); p != nil {
			sqlTx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&formulaTx{tx: sqlTx}); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			utils.Error("rollback failed", "error", rbErr)
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return &rename.TransactionError{Op: "commit", Err: err}
	}
	return nil
}

// formulaTx — rename.Tx поверх *sql.Tx.
type formulaTx struct {
	tx *sql.Tx
}

func (t *formulaTx) ListFormulas(ctx context.Context) ([]rename.FormulaRow, error) {
	rows, err := t.tx.QueryContext(ctx, `SELECT id, formula FROM colors ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []rename.FormulaRow
	for rows.Next() {
		var r rename.FormulaRow
		if err := rows.Scan(&r.ID, &r.Formula); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (t *formulaTx) UpdateFormula(ctx context.Context, id int64, formula string) error {
	res, err := t.tx.ExecContext(ctx, `UPDATE colors SET formula = ? WHERE id = ?`, formula, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: color %d", ErrNotFound, id)
	}
	return nil
}

// RenamePigment переименовывает пигмент в справочнике. Если новое имя
// уже есть, старая запись сливается с ним.
func (t *formulaTx) RenamePigment(ctx context.Context, oldName, newName string) error {
	if _, err := t.tx.ExecContext(ctx,
		`DELETE FROM pigments WHERE name = ? AND EXISTS (SELECT 1 FROM pigments WHERE name = ?)`,
		oldName, newName); err != nil {
		return err
	}
	_, err := t.tx.ExecContext(ctx, `UPDATE pigments SET name = ? WHERE name = ?`, newName, oldName)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanColor(row scanner) (palette.ColorRecord, error) {
	var (
		rec           palette.ColorRecord
		r, g, b       sql.NullInt64
		c, m, y, k    sql.NullFloat64
		h, sat, light sql.NullFloat64
	)

	if err := row.Scan(&rec.ID, &rec.Name, &rec.Formula, &rec.Category, &rec.HEX,
		&r, &g, &b, &c, &m, &y, &k, &h, &sat, &light); err != nil {
		return palette.ColorRecord{}, err
	}

	if r.Valid && g.Valid && b.Valid {
		rec.RGB = &colorspace.RGB{R: int(r.Int64), G: int(g.Int64), B: int(b.Int64)}
	}
	if c.Valid && m.Valid && y.Valid && k.Valid {
		rec.CMYK = &colorspace.CMYK{C: c.Float64, M: m.Float64, Y: y.Float64, K: k.Float64}
	}
	if h.Valid && sat.Valid && light.Valid {
		rec.HSL = &colorspace.HSL{H: h.Float64, S: sat.Float64, L: light.Float64}
	}

	return rec, nil
}

func rgbArgs(c *colorspace.RGB) []any {
	if c == nil {
		return []any{nil, nil, nil}
	}
	return []any{c.R, c.G, c.B}
}

func cmykArgs(c *colorspace.CMYK) []any {
	if c == nil {
		return []any{nil, nil, nil, nil}
	}
	return []any{c.C, c.M, c.Y, c.K}
}

func hslArgs(c *colorspace.HSL) []any {
	if c == nil {
		return []any{nil, nil, nil}
	}
	return []any{c.H, c.S, c.L}
}
