package rename

import (
	"errors"
	"fmt"
)

// ErrInvalidName возвращается когда новое имя испортило бы разбор рецептур:
// пустое, с пробелами или похожее на количество ("5g").
var ErrInvalidName = errors.New("invalid pigment name")

// TransactionError — сбой хранилища во время переименования.
//
// Транзакция к этому моменту откачена: частичных изменений не видно.
type TransactionError struct {
	Op  string // "begin", "list", "update", "commit"
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("rename transaction failed at %s: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

func txErr(op string, err error) error {
	var te *TransactionError
	if errors.As(err, &te) {
		return err
	}
	return &TransactionError{Op: op, Err: err}
}
