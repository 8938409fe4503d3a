package colorspace

import (
	"errors"
	"fmt"
)

// ErrConversion — базовая ошибка конвертации цвета.
//
// Все ошибки пакета поддерживают errors.Is(err, ErrConversion).
var ErrConversion = errors.New("color conversion failed")

// ErrNoColor возвращается когда в Value не заполнено ни одно представление.
var ErrNoColor = errors.New("no color representation")

// ConversionError — ошибка конвертации с контекстом.
type ConversionError struct {
	Op     string // "hex_to_rgb", "cmyk_to_rgb" и т.д.
	Input  string // входное значение в текстовом виде
	Reason string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: invalid input %s: %s", e.Op, e.Input, e.Reason)
}

// Is проверяет что ошибка является ErrConversion.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

func conversionErr(op, input, reason string) error {
	return &ConversionError{Op: op, Input: input, Reason: reason}
}
