package domain

// SkillType enumerates the skill domains a repository can teach.
type SkillType string

const (
	SkillFrontend         SkillType = "frontend"
	SkillBackend          SkillType = "backend"
	SkillDataScience      SkillType = "data_science"
	SkillInfrastructure   SkillType = "infrastructure"
	SkillMobile           SkillType = "mobile"
	SkillDevOps           SkillType = "devops"
	SkillMachineLearning  SkillType = "machine_learning"
	SkillSecurity         SkillType = "security"
)

// Valid reports whether t belongs to the closed set of skill types.
func (t SkillType) Valid() bool {
	_, ok := skillCompatibility[t]
	return ok
}

// skillCompatibility lists, for each skill type, the types it is
// considered a compatible predecessor for during learning progression.
var skillCompatibility = map[SkillType]map[SkillType]bool{
	SkillFrontend:        setOf(SkillBackend, SkillMobile),
	SkillBackend:         setOf(SkillFrontend, SkillDataScience, SkillDevOps, SkillSecurity),
	SkillDataScience:     setOf(SkillBackend, SkillMachineLearning),
	SkillInfrastructure:  setOf(SkillDevOps, SkillBackend, SkillSecurity),
	SkillMobile:          setOf(SkillFrontend, SkillBackend),
	SkillDevOps:          setOf(SkillInfrastructure, SkillBackend, SkillSecurity),
	SkillMachineLearning: setOf(SkillDataScience, SkillBackend),
	SkillSecurity:        setOf(SkillBackend, SkillInfrastructure, SkillDevOps),
}

func setOf(types ...SkillType) map[SkillType]bool {
	s := make(map[SkillType]bool, len(types))
	for _, t := range types {
		s[t] = true
	}
	return s
}

// CompatibleTypes returns the skill types t is a compatible predecessor for.
func (t SkillType) CompatibleTypes() map[SkillType]bool {
	return skillCompatibility[t]
}

// CompatibleWith reports whether t is a compatible predecessor of other.
func (t SkillType) CompatibleWith(other SkillType) bool {
	return skillCompatibility[t][other]
}

// SkillLevel enumerates the ordered proficiency levels within a skill type.
type SkillLevel string

const (
	LevelBasic        SkillLevel = "basic"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
	LevelExpert       SkillLevel = "expert"
)

var levelOrder = map[SkillLevel]int{
	LevelBasic:        0,
	LevelIntermediate: 1,
	LevelAdvanced:     2,
	LevelExpert:       3,
}

// Valid reports whether l belongs to the closed set of skill levels.
func (l SkillLevel) Valid() bool {
	_, ok := levelOrder[l]
	return ok
}

// Less reports whether l is strictly below other in the ordering
// basic < intermediate < advanced < expert.
func (l SkillLevel) Less(other SkillLevel) bool {
	return levelOrder[l] < levelOrder[other]
}

// LessOrEqual reports whether l is at or below other in the ordering.
func (l SkillLevel) LessOrEqual(other SkillLevel) bool {
	return levelOrder[l] <= levelOrder[other]
}

// levelWeight is the natural-learning-priority weight per §4.1.
var levelWeight = map[SkillLevel]int{
	LevelBasic:        1,
	LevelIntermediate: 3,
	LevelAdvanced:     5,
	LevelExpert:       7,
}

// Weight returns the priority weight used by the natural learning priority
// formula (Repository.NaturalLearningPriority).
func (l SkillLevel) Weight() int {
	return levelWeight[l]
}

var baseDifficulty = map[SkillLevel]float64{
	LevelBasic:        2,
	LevelIntermediate: 4,
	LevelAdvanced:     7,
	LevelExpert:       9,
}

var difficultyTypeMultiplier = map[SkillType]float64{
	SkillFrontend:        1.0,
	SkillBackend:         1.2,
	SkillDataScience:     1.4,
	SkillInfrastructure:  1.3,
	SkillMobile:          1.1,
	SkillDevOps:          1.5,
	SkillMachineLearning: 1.6,
	SkillSecurity:        1.4,
}

var baseLearningHours = map[SkillLevel]int{
	LevelBasic:        20,
	LevelIntermediate: 40,
	LevelAdvanced:     80,
	LevelExpert:       120,
}

var hoursTypeFactor = map[SkillType]float64{
	SkillFrontend:        0.8,
	SkillBackend:         1.0,
	SkillDataScience:     1.3,
	SkillInfrastructure:  1.2,
	SkillMobile:          0.9,
	SkillDevOps:          1.4,
	SkillMachineLearning: 1.5,
	SkillSecurity:        1.3,
}

// Skill is an immutable value object pairing a skill type with a
// proficiency level.
type Skill struct {
	Type  SkillType
	Level SkillLevel
}

// NewSkill validates and constructs a Skill value.
func NewSkill(t SkillType, level SkillLevel) (Skill, error) {
	if !t.Valid() {
		return Skill{}, NewValidationError("skill_type", "must be a supported skill type")
	}
	if !level.Valid() {
		return Skill{}, NewValidationError("skill_level", "must be a supported skill level")
	}
	return Skill{Type: t, Level: level}, nil
}

// Equal reports whether two skills have the same type and level.
func (s Skill) Equal(other Skill) bool {
	return s.Type == other.Type && s.Level == other.Level
}

// CanBePrerequisiteFor reports whether s can precede target in a learning
// sequence: same type requires s.Level <= target.Level; compatible types
// require s to be at least intermediate.
func (s Skill) CanBePrerequisiteFor(target Skill) bool {
	if s.Type == target.Type {
		return s.Level.LessOrEqual(target.Level)
	}
	if s.Type.CompatibleWith(target.Type) {
		return !s.Level.Less(LevelIntermediate)
	}
	return false
}

// LearningDifficulty computes the 1-10 difficulty score used by complexity
// and hours formulas.
func (s Skill) LearningDifficulty() int {
	d := baseDifficulty[s.Level] * difficultyTypeMultiplier[s.Type]
	v := int(d)
	if v > 10 {
		v = 10
	}
	return v
}

// EstimateLearningHours computes the skill-only hours contribution.
func (s Skill) EstimateLearningHours() int {
	return int(float64(baseLearningHours[s.Level]) * hoursTypeFactor[s.Type])
}

func (s Skill) String() string {
	return string(s.Type) + ":" + string(s.Level)
}
