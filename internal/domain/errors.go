package domain

import (
	"fmt"
	"strings"
)

// ErrorKind discriminates the variants of Error. Callers match on Kind
// rather than on the concrete Go type, replacing the deep exception
// hierarchy of the system this engine was modeled on with a flat
// tagged sum type.
type ErrorKind int

const (
	// KindValidation reports an entity field violating a stated invariant.
	KindValidation ErrorKind = iota
	// KindBusinessRule reports a legal field value that would violate an
	// aggregate invariant given current state.
	KindBusinessRule
	// KindCircularDependency reports a cycle that survived recovery.
	KindCircularDependency
	// KindInvalidSequence reports nodes that could not be legally ordered.
	KindInvalidSequence
	// KindNotFound reports a missing referenced entity.
	KindNotFound
	// KindDuplicate reports an entity that already exists.
	KindDuplicate
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindBusinessRule:
		return "business_rule"
	case KindCircularDependency:
		return "circular_dependency"
	case KindInvalidSequence:
		return "invalid_sequence"
	case KindNotFound:
		return "not_found"
	case KindDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Error is the core's single error type: a discriminated union over
// ErrorKind. Each variant carries only the payload relevant to it; the
// zero values of the others are left unset.
type Error struct {
	Kind    ErrorKind
	Message string

	// KindValidation payload.
	Field string

	// KindBusinessRule payload.
	Rule string

	// KindCircularDependency / KindInvalidSequence payload.
	AffectedNodes []string

	// KindNotFound / KindDuplicate payload.
	EntityKind string
	EntityID   string
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is an *Error with the same Kind, allowing
// errors.Is(err, domain.NewValidationError(...)) style comparisons that
// only care about the variant.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// LogFields returns a flat key/value slice suitable for slog.Logger.Error,
// e.g. logger.Error("generation failed", err.LogFields()...).
func (e *Error) LogFields() []any {
	fields := []any{"kind", e.Kind.String(), "message", e.Message}
	if e.Field != "" {
		fields = append(fields, "field", e.Field)
	}
	if e.Rule != "" {
		fields = append(fields, "rule", e.Rule)
	}
	if len(e.AffectedNodes) > 0 {
		fields = append(fields, "affected_nodes", strings.Join(e.AffectedNodes, ","))
	}
	if e.EntityKind != "" {
		fields = append(fields, "entity_kind", e.EntityKind, "entity_id", e.EntityID)
	}
	return fields
}

// NewValidationError reports that field violates a stated invariant.
func NewValidationError(field, message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Field:   field,
		Message: fmt.Sprintf("validation failed for %q: %s", field, message),
	}
}

// NewBusinessRuleError reports an aggregate-invariant violation, optionally
// tagged with a rule identifier.
func NewBusinessRuleError(message, rule string) *Error {
	return &Error{
		Kind:    KindBusinessRule,
		Rule:    rule,
		Message: message,
	}
}

// NewCircularDependencyError reports a witness cycle, given as an ordered
// list of node identifiers.
func NewCircularDependencyError(cycle []string) *Error {
	return &Error{
		Kind:          KindCircularDependency,
		AffectedNodes: cycle,
		Message:       fmt.Sprintf("circular dependency detected: %s", strings.Join(cycle, " -> ")),
	}
}

// NewInvalidSequenceError reports that affected cannot be legally ordered.
func NewInvalidSequenceError(message string, affected []string) *Error {
	return &Error{
		Kind:          KindInvalidSequence,
		AffectedNodes: affected,
		Message:       message,
	}
}

// NewNotFoundError reports that no entityKind with identifier exists.
func NewNotFoundError(entityKind, identifier string) *Error {
	return &Error{
		Kind:       KindNotFound,
		EntityKind: entityKind,
		EntityID:   identifier,
		Message:    fmt.Sprintf("%s with identifier %q not found", entityKind, identifier),
	}
}

// NewDuplicateError reports that entityKind with identifier already exists.
func NewDuplicateError(entityKind, identifier string) *Error {
	return &Error{
		Kind:       KindDuplicate,
		EntityKind: entityKind,
		EntityID:   identifier,
		Message:    fmt.Sprintf("%s %q already exists", entityKind, identifier),
	}
}
