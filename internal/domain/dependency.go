package domain

// DependencyType classifies the semantic relationship a DependencyRelation
// expresses between two repositories.
type DependencyType string

const (
	DependencyPrerequisite DependencyType = "prerequisite"
	DependencyRecommended  DependencyType = "recommended"
	DependencyRelated      DependencyType = "related"
	DependencyAlternative  DependencyType = "alternative"
)

// Valid reports whether t belongs to the closed set of dependency types.
func (t DependencyType) Valid() bool {
	switch t {
	case DependencyPrerequisite, DependencyRecommended, DependencyRelated, DependencyAlternative:
		return true
	default:
		return false
	}
}

// DependencyStrength qualifies how firmly a relation should be honored
// during sorting and cycle recovery.
type DependencyStrength string

const (
	StrengthWeak     DependencyStrength = "weak"
	StrengthModerate DependencyStrength = "moderate"
	StrengthStrong   DependencyStrength = "strong"
	StrengthCritical DependencyStrength = "critical"
)

// Valid reports whether s belongs to the closed set of dependency strengths.
func (s DependencyStrength) Valid() bool {
	switch s {
	case StrengthWeak, StrengthModerate, StrengthStrong, StrengthCritical:
		return true
	default:
		return false
	}
}

// CreatedBy records whether a relation was inferred by the system or
// pinned by a user; user-created relations are never removed by
// automatic cycle resolution.
type CreatedBy string

const (
	CreatedBySystem CreatedBy = "system"
	CreatedByUser   CreatedBy = "user"
)

// DependencyRelation is a directed edge between two repositories,
// identified by the (Source, Target) pair rather than by a surrogate id:
// two relations with the same endpoints are the same relation.
type DependencyRelation struct {
	Source     ID
	Target     ID
	Type       DependencyType
	Strength   DependencyStrength
	CreatedBy  CreatedBy
	Confidence float64
	Reason     string
}

// NewDependencyRelation validates and constructs a DependencyRelation.
func NewDependencyRelation(source, target ID, depType DependencyType, strength DependencyStrength, createdBy CreatedBy, confidence float64, reason string) (DependencyRelation, error) {
	if source == target {
		return DependencyRelation{}, NewValidationError("target", "source and target must differ")
	}
	if !depType.Valid() {
		return DependencyRelation{}, NewValidationError("type", "must be a supported dependency type")
	}
	if !strength.Valid() {
		return DependencyRelation{}, NewValidationError("strength", "must be a supported dependency strength")
	}
	if createdBy != CreatedBySystem && createdBy != CreatedByUser {
		return DependencyRelation{}, NewValidationError("created_by", "must be system or user")
	}
	if confidence < 0 || confidence > 1 {
		return DependencyRelation{}, NewValidationError("confidence", "must be between 0 and 1")
	}
	return DependencyRelation{
		Source:     source,
		Target:     target,
		Type:       depType,
		Strength:   strength,
		CreatedBy:  createdBy,
		Confidence: confidence,
		Reason:     reason,
	}, nil
}

// Equal reports whether two relations share the same (Source, Target) pair.
func (d DependencyRelation) Equal(other DependencyRelation) bool {
	return d.Source == other.Source && d.Target == other.Target
}

// IsBlocking reports whether this relation must be honored as a hard
// ordering constraint: a prerequisite relation of strong or critical
// strength.
func (d DependencyRelation) IsBlocking() bool {
	return d.Type == DependencyPrerequisite && (d.Strength == StrengthStrong || d.Strength == StrengthCritical)
}

// CanBeIgnored reports whether this relation may be disregarded: it must
// not be user-created, and must not be a prerequisite of critical
// strength. The sorter's cycle recovery does not call it; it applies its
// own removability rule (isRemovable in package sort).
func (d DependencyRelation) CanBeIgnored() bool {
	if d.CreatedBy == CreatedByUser {
		return false
	}
	if d.Type == DependencyPrerequisite && d.Strength == StrengthCritical {
		return false
	}
	return true
}

// LearningImpactScore weighs how much this relation should influence
// ordering decisions: type weight times strength weight times confidence.
func (d DependencyRelation) LearningImpactScore() float64 {
	typeWeight := map[DependencyType]float64{
		DependencyPrerequisite: 1.0,
		DependencyRecommended:  0.7,
		DependencyRelated:      0.4,
		DependencyAlternative:  0.2,
	}[d.Type]
	strengthWeight := map[DependencyStrength]float64{
		StrengthWeak:     0.25,
		StrengthModerate: 0.5,
		StrengthStrong:   0.75,
		StrengthCritical: 1.0,
	}[d.Strength]
	return typeWeight * strengthWeight * d.Confidence
}
