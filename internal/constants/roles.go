package constants

import (
	"database/sql/driver"
	"fmt"
)

// JuntaRole mirrors the closed set of roles a vecino can hold in the junta.
type JuntaRole string

const (
	RoleVecino     JuntaRole = "vecino_registrado"
	RoleDirectiva  JuntaRole = "miembro_directiva"
	RolePresidente JuntaRole = "presidente_directiva"
	RoleSecretario JuntaRole = "secretario"
	RoleTesorero   JuntaRole = "tesorero"
)

// Stringer ­– convenient for fmt / logs
func (r JuntaRole) String() string { return string(r) }

// Valid reports whether r is one of the known junta roles.
func (r JuntaRole) Valid() bool {
	switch r {
	case RoleVecino, RoleDirectiva, RolePresidente, RoleSecretario, RoleTesorero:
		return true
	}
	return false
}

/* ---------- DB adapters so sqlx (or database/sql) scans/values cleanly ---------- */

// Scan implements the sql.Scanner interface
func (r *JuntaRole) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = JuntaRole(v)
	case []byte:
		*r = JuntaRole(v)
	default:
		return fmt.Errorf("JuntaRole: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r JuntaRole) Value() (driver.Value, error) { return string(r), nil }

// BoardTitles are the cargos a directiva member can hold.
var BoardTitles = []string{"Presidente/a", "Secretario/a", "Tesorero/a"}

// ValidBoardTitle reports whether title is a known cargo.
func ValidBoardTitle(title string) bool {
	for _, t := range BoardTitles {
		if t == title {
			return true
		}
	}
	return false
}
