package repository

import "fmt"

// StorageError - ошибка постоянного хранилища инцидентов.
// Никогда не поднимается до клиента: вызывающая сторона деградирует
// к резервному in-memory хранилищу.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func newStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
