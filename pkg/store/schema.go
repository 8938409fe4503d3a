package store

// schema — таблицы хранилища. Цветовые каналы хранятся в отдельных
// nullable-колонках: NULL означает что представление не задано.
const schema = `
CREATE TABLE IF NOT EXISTS colors (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	name     TEXT NOT NULL DEFAULT '',
	formula  TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	hex      TEXT NOT NULL DEFAULT '',
	rgb_r    INTEGER, rgb_g INTEGER, rgb_b INTEGER,
	cmyk_c   REAL, cmyk_m REAL, cmyk_y REAL, cmyk_k REAL,
	hsl_h    REAL, hsl_s REAL, hsl_l REAL
);

CREATE TABLE IF NOT EXISTS pigments (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);
`

const colorColumns = `id, name, formula, category, hex,
	rgb_r, rgb_g, rgb_b,
	cmyk_c, cmyk_m, cmyk_y, cmyk_k,
	hsl_h, hsl_s, hsl_l`
