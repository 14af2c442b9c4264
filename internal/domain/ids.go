// Package domain implements the learning-path core's entities and value
// objects: Skill, Topic, RepositoryMetadata, Repository, LearningNode,
// LearningPath, and DependencyRelation, with the invariants each must
// maintain at construction and mutation.
package domain

import "github.com/google/uuid"

// ID is an opaque stable identifier for a mutable entity. Equality of
// entities is by ID, never by content; callers must not assume any
// structure (sortability, shortness, encoding) beyond string equality.
type ID string

// NewID generates a fresh opaque identifier.
func NewID() ID {
	return ID(uuid.New().String())
}

// Empty reports whether the id carries no value.
func (id ID) Empty() bool {
	return id == ""
}

func (id ID) String() string {
	return string(id)
}
