package helper

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// IsDuplicateKey mendeteksi pelanggaran unique constraint dari dua arah:
// gorm.ErrDuplicatedKey (TranslateError) atau SQLSTATE 23505 langsung dari pgx.
// Dipakai semua pola get-or-create: INSERT kalah race → re-fetch, bukan error.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}
