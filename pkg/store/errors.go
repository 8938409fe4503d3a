package store

import "errors"

// ErrNotFound возвращается когда строка с указанным id не существует.
var ErrNotFound = errors.New("entity not found")

// ErrClosed возвращается при обращении к закрытому хранилищу.
var ErrClosed = errors.New("store is closed")
