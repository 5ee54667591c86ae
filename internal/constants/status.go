package constants

import (
	"database/sql/driver"
	"fmt"
)

// AssemblyStatus is the lifecycle state of an asamblea.
type AssemblyStatus string

const (
	AssemblyPlanned   AssemblyStatus = "planificada"
	AssemblyHeld      AssemblyStatus = "realizada"
	AssemblyCancelled AssemblyStatus = "cancelada"
	AssemblyPostponed AssemblyStatus = "pospuesta"
)

func (s AssemblyStatus) String() string { return string(s) }

func (s AssemblyStatus) Valid() bool {
	switch s {
	case AssemblyPlanned, AssemblyHeld, AssemblyCancelled, AssemblyPostponed:
		return true
	}
	return false
}

// Scan implements the sql.Scanner interface
func (s *AssemblyStatus) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = AssemblyStatus(v)
	case []byte:
		*s = AssemblyStatus(v)
	default:
		return fmt.Errorf("AssemblyStatus: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (s AssemblyStatus) Value() (driver.Value, error) { return string(s), nil }

// AssemblyTransitions holds the allowed status transitions. There is no
// time-based transition: a past asamblea stays planificada until updated.
var AssemblyTransitions = map[AssemblyStatus][]AssemblyStatus{
	AssemblyPlanned:   {AssemblyHeld, AssemblyCancelled, AssemblyPostponed},
	AssemblyPostponed: {AssemblyPlanned, AssemblyCancelled},
	AssemblyHeld:      {AssemblyCancelled},
}

// CanTransition reports whether an asamblea may move from one status to another.
func (s AssemblyStatus) CanTransition(to AssemblyStatus) bool {
	if s == to {
		return true
	}
	for _, allowed := range AssemblyTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// MinutesStatus is the lifecycle state of an acta.
type MinutesStatus string

const (
	MinutesDraft    MinutesStatus = "borrador"
	MinutesInReview MinutesStatus = "en_revision"
	MinutesApproved MinutesStatus = "aprobada"
	MinutesRejected MinutesStatus = "rechazada"
)

func (s MinutesStatus) String() string { return string(s) }

func (s MinutesStatus) Valid() bool {
	switch s {
	case MinutesDraft, MinutesInReview, MinutesApproved, MinutesRejected:
		return true
	}
	return false
}

// Scan implements the sql.Scanner interface
func (s *MinutesStatus) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = MinutesStatus(v)
	case []byte:
		*s = MinutesStatus(v)
	default:
		return fmt.Errorf("MinutesStatus: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (s MinutesStatus) Value() (driver.Value, error) { return string(s), nil }
