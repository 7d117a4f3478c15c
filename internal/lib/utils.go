package lib

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Err returns formatted error in "op: err" template.
func Err(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// IsDatabaseError reports whether err carries an error raised by the postgres server.
func IsDatabaseError(err error) bool {
	var pgErr *pq.Error
	return errors.As(err, &pgErr)
}

// DatabaseErrorMessage returns the server message with its detail and hint, or err.Error()
// when err did not come from postgres.
func DatabaseErrorMessage(err error) string {
	var pgErr *pq.Error
	if !errors.As(err, &pgErr) {
		return err.Error()
	}

	msg := pgErr.Message
	if pgErr.Detail != "" {
		msg += " (" + pgErr.Detail + ")"
	}
	if pgErr.Hint != "" {
		msg += " hint: " + pgErr.Hint
	}
	return msg
}
