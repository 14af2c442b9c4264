package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
)

// supportedLanguages is the closed set of primary languages a Repository
// may declare.
var supportedLanguages = map[string]bool{
	"python": true, "javascript": true, "typescript": true, "java": true,
	"c++": true, "c#": true, "c": true, "go": true, "rust": true,
	"kotlin": true, "swift": true, "php": true, "ruby": true, "scala": true,
	"r": true, "matlab": true, "shell": true, "dockerfile": true, "yaml": true,
	"json": true, "html": true, "css": true,
}

// languageSkillMapping restricts which skill types a primary skill may
// carry for the languages listed; languages absent from this map impose no
// restriction.
var languageSkillMapping = map[string]map[SkillType]bool{
	"python":     setOf(SkillBackend, SkillDataScience, SkillMachineLearning),
	"javascript": setOf(SkillFrontend, SkillBackend),
	"typescript": setOf(SkillFrontend, SkillBackend),
	"java":       setOf(SkillBackend, SkillMobile),
	"kotlin":     setOf(SkillBackend, SkillMobile),
	"swift":      setOf(SkillMobile),
	"go":         setOf(SkillBackend, SkillInfrastructure, SkillDevOps),
	"rust":       setOf(SkillBackend, SkillInfrastructure),
	"dockerfile": setOf(SkillDevOps, SkillInfrastructure),
}

// languageComplexity is the per-language base term of computeComplexity;
// languages absent from the table use the 2.0 default.
var languageComplexity = map[string]float64{
	"python": 2.0, "javascript": 2.5, "typescript": 3.0,
	"java": 3.5, "c++": 4.5, "c": 4.0, "rust": 4.8,
	"go": 3.2, "kotlin": 3.3, "swift": 3.1,
	"php": 2.8, "ruby": 2.6, "scala": 4.2,
}

const forbiddenNameChars = `<>:"/\|?*`

// Repository is the central aggregate describing a learnable codebase: its
// identity, metadata, and the skills and topics it teaches. ComplexityScore,
// LearningHoursEstimate, and ContentHash are derived values recomputed
// whenever the primary skill, secondary skills, topics, or metadata change;
// callers never set them directly.
type Repository struct {
	ID              ID
	Name            string
	Path            string
	PrimaryLanguage string
	Description     string
	Metadata        RepositoryMetadata
	PrimarySkill    *Skill
	SecondarySkills []Skill
	Topics          []Topic

	ComplexityScore       float64
	LearningHoursEstimate int
	ContentHash           string
}

// NewRepository validates and constructs a Repository. skills, if non-empty,
// assigns skills[0] as the primary skill (validated against PrimaryLanguage's
// compatibility set, when one exists) and the remainder as secondary skills.
func NewRepository(name, path, primaryLanguage, description string, metadata RepositoryMetadata, skills []Skill, topics []Topic) (*Repository, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "must not be empty")
	}
	if len(name) > 255 {
		return nil, NewValidationError("name", "must not exceed 255 characters")
	}
	if strings.ContainsAny(name, forbiddenNameChars) {
		return nil, NewValidationError("name", fmt.Sprintf("must not contain any of %s", forbiddenNameChars))
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return nil, NewValidationError("path", "must not be empty")
	}

	if !supportedLanguages[strings.ToLower(primaryLanguage)] {
		return nil, NewValidationError("primary_language", fmt.Sprintf("%q is not a supported language", primaryLanguage))
	}

	seenTopic := map[string]bool{}
	for _, t := range topics {
		if seenTopic[t.Name] {
			return nil, NewValidationError("topics", fmt.Sprintf("duplicate topic %q", t.Name))
		}
		seenTopic[t.Name] = true
	}

	r := &Repository{
		ID:              NewID(),
		Name:            name,
		Path:            path,
		PrimaryLanguage: primaryLanguage,
		Description:     description,
		Metadata:        metadata,
		Topics:          append([]Topic(nil), topics...),
	}

	if len(skills) == 0 {
		r.recalculate()
		return r, nil
	}

	if err := r.SetPrimarySkill(skills[0]); err != nil {
		return nil, err
	}
	for _, s := range skills[1:] {
		if err := r.AddSecondarySkill(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// SetPrimarySkill assigns skill as the repository's primary skill. It fails
// with KindBusinessRule if PrimaryLanguage has a compatibility set and
// skill's type is not in it.
func (r *Repository) SetPrimarySkill(skill Skill) error {
	if compatible, ok := languageSkillMapping[strings.ToLower(r.PrimaryLanguage)]; ok {
		if !compatible[skill.Type] {
			return NewBusinessRuleError(fmt.Sprintf("skill type %q is not compatible with language %q", skill.Type, r.PrimaryLanguage), "skill_language_compatibility")
		}
	}
	r.PrimarySkill = &skill
	r.recalculate()
	return nil
}

// AddSecondarySkill adds skill to the repository's secondary skills. It
// fails with KindBusinessRule if skill equals the current primary skill;
// adding a skill already present among the secondary skills is a no-op.
func (r *Repository) AddSecondarySkill(skill Skill) error {
	if r.PrimarySkill != nil && skill.Equal(*r.PrimarySkill) {
		return NewBusinessRuleError("secondary skill cannot equal the primary skill", "no_duplicate_primary_secondary")
	}
	for _, s := range r.SecondarySkills {
		if s.Equal(skill) {
			return nil
		}
	}
	r.SecondarySkills = append(r.SecondarySkills, skill)
	r.recalculate()
	return nil
}

// AddTopic adds topic to the repository, recomputing derived fields.
// Adding a topic already present is a no-op.
func (r *Repository) AddTopic(topic Topic) {
	for _, t := range r.Topics {
		if t.Equal(topic) {
			return
		}
	}
	r.Topics = append(r.Topics, topic)
	r.recalculate()
}

// recalculate recomputes ComplexityScore, LearningHoursEstimate, and
// ContentHash from the repository's current skills, topics, and metadata.
// It must run after every mutation of skills, topics, or metadata.
func (r *Repository) recalculate() {
	r.ComplexityScore = r.computeComplexity()
	r.LearningHoursEstimate = r.computeLearningHours()
	r.ContentHash = r.computeContentHash()
}

// computeComplexity derives a 0-10 complexity score from the primary
// language, primary and secondary skill difficulty, topic complexity, and
// metadata-driven size/dependency terms.
func (r *Repository) computeComplexity() float64 {
	score := 1.0

	if c, ok := languageComplexity[strings.ToLower(r.PrimaryLanguage)]; ok {
		score += c
	} else {
		score += 2.0
	}

	if r.PrimarySkill != nil {
		score += float64(r.PrimarySkill.LearningDifficulty()) * 0.3
	}
	for _, s := range r.SecondarySkills {
		score += float64(s.LearningDifficulty()) * 0.1
	}

	var topicComplexity float64
	for _, t := range r.Topics {
		topicComplexity += t.LearningComplexity()
	}
	score += math.Min(topicComplexity*0.2, 2.0)

	switch {
	case r.Metadata.LinesOfCode > 10_000:
		score += 1.5
	case r.Metadata.LinesOfCode > 5_000:
		score += 1.0
	case r.Metadata.LinesOfCode > 1_000:
		score += 0.5
	}

	switch {
	case r.Metadata.FileCount > 100:
		score += 1.0
	case r.Metadata.FileCount > 50:
		score += 0.5
	}

	score += math.Min(float64(r.Metadata.DependencyCount())*0.1, 1.5)

	return math.Min(score, 10.0)
}

// computeLearningHours estimates total learning hours from the complexity
// score, primary/secondary skill hours, topic hours, and a codebase-size
// multiplier, capping the result at 200.
func (r *Repository) computeLearningHours() int {
	const baseHours = 20.0

	hours := baseHours + r.ComplexityScore*8

	if r.PrimarySkill != nil {
		hours += float64(r.PrimarySkill.EstimateLearningHours())
	}
	for _, s := range r.SecondarySkills {
		hours += float64(s.EstimateLearningHours()) * 0.3
	}

	for _, t := range r.Topics {
		hours += t.LearningComplexity() * 5
	}

	sizeMultiplier := 1.0
	switch {
	case r.Metadata.LinesOfCode > 10_000:
		sizeMultiplier = 1.5
	case r.Metadata.LinesOfCode > 5_000:
		sizeMultiplier = 1.2
	}
	hours *= sizeMultiplier

	if hours > 200 {
		hours = 200
	}
	return int(hours)
}

// computeContentHash derives a stable fingerprint from the repository's
// name, primary language, line count, and topic count, used to detect
// whether a repository's teachable content has changed since analysis.
func (r *Repository) computeContentHash() string {
	s := fmt.Sprintf("%s:%s:%d:%d", r.Name, r.PrimaryLanguage, r.Metadata.LinesOfCode, len(r.Topics))
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// PrimarySkillValue returns the repository's primary skill, or the zero
// Skill when none has been assigned.
func (r *Repository) PrimarySkillValue() Skill {
	if r.PrimarySkill == nil {
		return Skill{}
	}
	return *r.PrimarySkill
}

// AllSkills returns the primary skill (if any) followed by the secondary
// skills.
func (r *Repository) AllSkills() []Skill {
	out := make([]Skill, 0, len(r.SecondarySkills)+1)
	if r.PrimarySkill != nil {
		out = append(out, *r.PrimarySkill)
	}
	return append(out, r.SecondarySkills...)
}

// NaturalLearningPriority computes the repository's default ordering key:
// the primary skill's level weight, plus its rounded-down complexity
// score, plus the total parent-topic depth across all topics. Lower
// values should be learned first.
func (r *Repository) NaturalLearningPriority() int {
	priority := r.PrimarySkillValue().Level.Weight()
	priority += int(r.ComplexityScore)
	for _, t := range r.Topics {
		priority += len(t.ParentTopics)
	}
	return priority
}

// HasSkillType reports whether the repository teaches any skill (primary
// or secondary) of type t.
func (r *Repository) HasSkillType(t SkillType) bool {
	for _, s := range r.AllSkills() {
		if s.Type == t {
			return true
		}
	}
	return false
}

// HasTopic reports whether the repository covers a topic with the given name.
func (r *Repository) HasTopic(name string) bool {
	for _, t := range r.Topics {
		if t.Name == name {
			return true
		}
	}
	return false
}

// SkillsOfType returns every skill (primary or secondary) the repository
// teaches of type t.
func (r *Repository) SkillsOfType(t SkillType) []Skill {
	var out []Skill
	for _, s := range r.AllSkills() {
		if s.Type == t {
			out = append(out, s)
		}
	}
	return out
}

// CanBePrerequisiteFor reports whether r can precede other in a learning
// sequence, based on skill progression between their primary skills.
func (r *Repository) CanBePrerequisiteFor(other *Repository) bool {
	if other == nil || r.PrimarySkill == nil || other.PrimarySkill == nil {
		return false
	}
	return r.PrimarySkill.CanBePrerequisiteFor(*other.PrimarySkill)
}
