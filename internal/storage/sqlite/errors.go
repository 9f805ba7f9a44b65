package sqlite

import (
	"errors"
	"regexp"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mcoot/matrixgame/internal/storage"
)

var (
	uniqueFailedPattern = regexp.MustCompile(`UNIQUE constraint failed: (\w+)\.(\w+)`)
	checkFailedPattern  = regexp.MustCompile(`CHECK constraint failed: (\w+)`)
)

// translateError converts sqlite constraint failures into
// *storage.ConstraintError and passes everything else through
func translateError(table string, err error) error {
	if err == nil {
		return nil
	}

	var se *sqlite.Error
	if !errors.As(err, &se) {
		return err
	}

	// Extended codes carry the constraint type in the high byte
	if se.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
		return err
	}

	msg := se.Error()
	if m := uniqueFailedPattern.FindStringSubmatch(msg); m != nil {
		ce := storage.NewUniqueError(m[1], m[2])
		ce.Err = err
		return ce
	}
	if m := checkFailedPattern.FindStringSubmatch(msg); m != nil {
		ce := storage.NewCheckError(table, m[1])
		ce.Err = err
		return ce
	}
	return err
}
