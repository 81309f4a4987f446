package backend

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error is a structured failure reported by the backend.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
	Status  int    `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "backend: <nil>"
	}
	var b strings.Builder
	b.WriteString("backend: ")
	b.WriteString(e.Message)
	if e.Code != "" {
		b.WriteString(" (code ")
		b.WriteString(e.Code)
		b.WriteString(")")
	}
	if e.Details != "" {
		b.WriteString(": ")
		b.WriteString(e.Details)
	}
	return b.String()
}

// ErrorKind groups backend failures by how callers react to them.
type ErrorKind int

// Error kinds.
const (
	KindNone ErrorKind = iota
	// KindSchemaMismatch means a referenced column or relation is missing.
	KindSchemaMismatch
	// KindOther covers access-control rejections and everything else.
	KindOther
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindSchemaMismatch:
		return "schema_mismatch"
	default:
		return "other"
	}
}

var schemaMessageMarkers = []string{"column", "does not exist", "invalid reference"}

var schemaCodes = map[string]struct{}{
	"42703":    {}, // undefined_column
	"42P01":    {}, // undefined_table
	"PGRST204": {}, // column missing from schema cache
}

// Classify decides whether err describes a schema mismatch. This is the only
// place that inspects backend error text.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	if _, ok := schemaCodes[Code(err)]; ok {
		return KindSchemaMismatch
	}
	msg := strings.ToLower(Message(err))
	for _, marker := range schemaMessageMarkers {
		if strings.Contains(msg, marker) {
			return KindSchemaMismatch
		}
	}
	return KindOther
}

// IsSchemaMismatch reports whether err is classified as KindSchemaMismatch.
func IsSchemaMismatch(err error) bool {
	return Classify(err) == KindSchemaMismatch
}

// Message extracts the human-readable message from a backend error.
func Message(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Message
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// Code extracts the backend error code, if any.
func Code(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Code
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
