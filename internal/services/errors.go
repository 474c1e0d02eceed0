package services

import (
	"errors"

	apierrors "github.com/playhub/community-api/internal/errors"
	"gorm.io/gorm"
)

// storeError maps a repository failure onto the typed error taxonomy.
// A missing row becomes NOT_FOUND with notFoundMsg; anything else is an
// OPERATION_FAILED carrying the original error for logging.
func storeError(err error, notFoundMsg, failedMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierrors.NotFound(notFoundMsg)
	}
	return apierrors.OperationFailed(failedMsg, err)
}
