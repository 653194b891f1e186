package sqlite

import (
	"errors"
	"fmt"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mesh-intelligence/parlor/pkg/types"
)

// translateConstraint maps a SQLite constraint failure onto the store's
// sentinel errors. Unique and primary key violations become onDuplicate;
// other constraint failures become ErrConstraint. Anything else is returned
// unchanged.
func translateConstraint(err error, onDuplicate error) error {
	if err == nil {
		return nil
	}
	var se *msqlite.Error
	if !errors.As(err, &se) {
		return err
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return fmt.Errorf("%w: %v", onDuplicate, err)
	}
	if se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		// Primary result code only; fall back to the message text.
		if strings.Contains(se.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %v", onDuplicate, err)
		}
		return fmt.Errorf("%w: %v", types.ErrConstraint, err)
	}
	return err
}
