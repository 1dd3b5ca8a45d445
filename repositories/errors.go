// File: /repositories/errors.go
package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup by id or email matches no row.
var ErrNotFound = errors.New("record not found")

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
