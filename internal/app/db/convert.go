package db

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// ErrInvalidID is returned by ParseUUID for strings that are not canonical UUIDs.
var ErrInvalidID = errors.New("invalid uuid")

// ParseUUID converts a canonical UUID string into its pgtype form.
func ParseUUID(s string) (pgtype.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil || len(s) != 36 {
		return pgtype.UUID{}, ErrInvalidID
	}
	return pgtype.UUID{Bytes: id, Valid: true}, nil
}

// UUIDString renders a pgtype.UUID; NULL renders as "".
func UUIDString(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	return uuid.UUID(id.Bytes).String()
}

// Text maps "" to SQL NULL.
func Text(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
