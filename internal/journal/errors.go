package journal

import (
	"errors"
	"fmt"

	sqlite "modernc.org/sqlite"
)

// Error kinds callers can match with errors.Is. The wrapped driver error
// stays in the chain, so the store's diagnostic (including the constraint
// name, which distinguishes CHECK from FOREIGN KEY) remains readable.
var (
	// ErrDuplicate: a UNIQUE constraint fired (username, email, or the
	// per-user sub-account name).
	ErrDuplicate = errors.New("duplicate")
	// ErrConstraint: a CHECK, FOREIGN KEY, or NOT NULL constraint fired.
	ErrConstraint = errors.New("constraint violated")
)

// SQLite extended result codes.
const (
	codeConstraintCheck      = 275
	codeConstraintForeignKey = 787
	codeConstraintNotNull    = 1299
	codeConstraintPrimaryKey = 1555
	codeConstraintUnique     = 2067
)

func classify(err error) error {
	if err == nil {
		return nil
	}
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return err
	}
	switch se.Code() {
	case codeConstraintUnique, codeConstraintPrimaryKey:
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	case codeConstraintCheck, codeConstraintForeignKey, codeConstraintNotNull:
		return fmt.Errorf("%w: %w", ErrConstraint, err)
	}
	return err
}
