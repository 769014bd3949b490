package persistence

import (
	"errors"

	"github.com/menudash/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps GORM and driver errors to domain errors.
//
// Record-not-found becomes shared.ErrNotFound. Errors the dialect classifies
// as duplicate key, foreign key, check constraint or invalid data become a
// *shared.RequestError that keeps the original driver error (and message).
// Anything else is returned unchanged.
func translateError(db *gorm.DB, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	if _, ok := shared.AsRequestError(err); ok {
		return err
	}

	classified := err
	if translator, ok := db.Dialector.(gorm.ErrorTranslator); ok {
		classified = translator.Translate(err)
	}

	switch {
	case errors.Is(classified, gorm.ErrDuplicatedKey):
		return shared.NewRequestError(shared.RequestErrorDuplicatedKey, err)
	case errors.Is(classified, gorm.ErrForeignKeyViolated):
		return shared.NewRequestError(shared.RequestErrorForeignKey, err)
	case errors.Is(classified, gorm.ErrCheckConstraintViolated):
		return shared.NewRequestError(shared.RequestErrorCheckConstraint, err)
	case errors.Is(classified, gorm.ErrInvalidData), errors.Is(classified, gorm.ErrInvalidValue):
		return shared.NewRequestError(shared.RequestErrorInvalidData, err)
	}
	return err
}
