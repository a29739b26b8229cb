package domain

import "strings"

// Role describes what a user may do in the seminar workflow.
type Role int

const (
	// RoleUnspecified represents an invalid role value.
	RoleUnspecified Role = iota
	// RoleStudent indicates a presenting student.
	RoleStudent
	// RoleEvaluator indicates a rubric evaluator.
	RoleEvaluator
	// RoleCoordinator indicates the seminar coordinator.
	RoleCoordinator
)

// String returns the canonical text stored in the users table.
func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "Student"
	case RoleEvaluator:
		return "Evaluator"
	case RoleCoordinator:
		return "Coordinator"
	default:
		return ""
	}
}

// ParseRole maps stored or submitted text to a Role.
func ParseRole(value string) Role {
	switch strings.TrimSpace(value) {
	case "Student":
		return RoleStudent
	case "Evaluator":
		return RoleEvaluator
	case "Coordinator":
		return RoleCoordinator
	default:
		return RoleUnspecified
	}
}

// User is a provisioned seminar participant. Users are immutable once
// created by provisioning.
type User struct {
	ID   string
	Name string
	Role Role
}
