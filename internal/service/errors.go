package service

import (
	"course_market_backend/internal/util"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// wrapDBError translates a data-access failure into the error taxonomy before
// it can reach a controller.
func wrapDBError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrNotFound
	}
	return fmt.Errorf("%w: %v", util.ErrPersistence, err)
}
