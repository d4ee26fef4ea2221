package stor

import (
	"errors"

	"github.com/alterego-vtt/alterego/pkg/aeerr"
	"github.com/alterego-vtt/alterego/pkg/config"
	"gorm.io/gorm"
)

const minTxRetry = 3

// WithTxRetry runs fn in a transaction, retrying failed transactions up to
// ALTEREGO_TX_RETRY times (never fewer than 3). Not-found errors are returned
// immediately since retrying can't change them.
func WithTxRetry(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error

	retryCount := config.GetIntKeyWithDefault(config.KeyTxRetry, minTxRetry)
	if retryCount < minTxRetry {
		retryCount = minTxRetry
	}

	for i := 0; i < retryCount; i++ {
		err = db.Transaction(fn)
		if err == nil || errors.Is(err, aeerr.ErrNotFound) {
			break
		}
	}

	return err
}
