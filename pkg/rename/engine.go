// Package rename каскадно переименовывает пигмент во всех сохранённых
// рецептурах одной транзакцией.
//
// Переименование либо применяется целиком, либо не применяется вовсе:
// любая ошибка чтения или записи откатывает транзакцию и возвращается
// вызывающему в виде *TransactionError.
package rename

import (
	"context"
	"fmt"
	"strings"

	"github.com/ilkoid/paintmix/pkg/formula"
	"github.com/ilkoid/paintmix/pkg/utils"
)

// FormulaRow — рецептура в хранилище.
type FormulaRow struct {
	ID      int64
	Formula string
}

// Tx — операции внутри транзакции, нужные движку.
type Tx interface {
	// ListFormulas читает все пары {id, formula}.
	ListFormulas(ctx context.Context) ([]FormulaRow, error)

	// UpdateFormula перезаписывает текст рецептуры.
	UpdateFormula(ctx context.Context, id int64, formula string) error
}

// PigmentRenamer — необязательное расширение Tx: если хранилище ведёт
// справочник пигментов, запись справочника переименовывается в той же
// транзакции.
type PigmentRenamer interface {
	RenamePigment(ctx context.Context, oldName, newName string) error
}

// Transactor открывает транзакцию: begin -> fn -> commit, rollback при
// ошибке fn. Граница транзакции принадлежит вызывающему.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}

// Engine — движок каскадного переименования. Состояния не держит.
type Engine struct{}

// NewEngine создаёт движок.
func NewEngine() *Engine {
	return &Engine{}
}

// RenameAcrossFormulas заменяет oldName на newName во всех рецептурах.
//
// Возвращает число изменённых строк. oldName == newName или пустой
// oldName — no-op с нулём. Токены количества не проверяются и не меняются.
func (e *Engine) RenameAcrossFormulas(ctx context.Context, db Transactor, oldName, newName string) (int, error) {
	if oldName == "" || oldName == newName {
		return 0, nil
	}
	if err := ValidateName(newName); err != nil {
		return 0, err
	}

	changed := 0
	err := db.WithinTx(ctx, func(tx Tx) error {
		rows, err := tx.ListFormulas(ctx)
		if err != nil {
			return txErr("list", err)
		}

		var updates []FormulaRow
		for _, row := range rows {
			if text, ok := RewriteFormula(row.Formula, oldName, newName); ok {
				updates = append(updates, FormulaRow{ID: row.ID, Formula: text})
			}
		}

		for _, u := range updates {
			if err := tx.UpdateFormula(ctx, u.ID, u.Formula); err != nil {
				return txErr("update", fmt.Errorf("formula %d: %w", u.ID, err))
			}
		}

		if pr, ok := tx.(PigmentRenamer); ok {
			if err := pr.RenamePigment(ctx, oldName, newName); err != nil {
				return txErr("rename_pigment", err)
			}
		}

		changed = len(updates)
		return nil
	})
	if err != nil {
		utils.Warn("pigment rename rolled back", "from", oldName, "to", newName, "error", err)
		return 0, txErr("commit", err)
	}

	utils.Info("pigment renamed", "from", oldName, "to", newName, "rows", changed)
	return changed, nil
}

// RewriteFormula заменяет токены-имена, точно равные oldName.
//
// Токены количества пропускаются без сравнения. Если замена была, текст
// собирается заново через одиночные пробелы; иначе возвращается
// исходный текст и false.
func RewriteFormula(text, oldName, newName string) (string, bool) {
	tokens := formula.Fields(text)
	replaced := false

	for i, tok := range tokens {
		if formula.IsQuantityToken(tok) {
			continue
		}
		if tok == oldName {
			tokens[i] = newName
			replaced = true
		}
	}

	if !replaced {
		return text, false
	}
	return strings.Join(tokens, " "), true
}

// ValidateName проверяет что имя можно безопасно вписать в рецептуру.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case len(formula.Fields(name)) != 1 || formula.Fields(name)[0] != name:
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidName, name)
	case formula.IsQuantityToken(name):
		return fmt.Errorf("%w: %q looks like a quantity", ErrInvalidName, name)
	}
	return nil
}
