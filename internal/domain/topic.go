package domain

import "strings"

// TopicCategory groups topics for the purpose of complexity weighting.
type TopicCategory string

const (
	CategoryLanguage      TopicCategory = "language"
	CategoryFramework     TopicCategory = "framework"
	CategoryTool          TopicCategory = "tool"
	CategoryConcept       TopicCategory = "concept"
	CategoryPattern       TopicCategory = "pattern"
	CategoryArchitecture  TopicCategory = "architecture"
)

var categoryWeight = map[TopicCategory]float64{
	CategoryLanguage:     1.0,
	CategoryFramework:    1.2,
	CategoryTool:         0.8,
	CategoryConcept:      1.3,
	CategoryPattern:      1.4,
	CategoryArchitecture: 1.6,
}

// Valid reports whether c belongs to the closed set of topic categories.
func (c TopicCategory) Valid() bool {
	_, ok := categoryWeight[c]
	return ok
}

// TopicDifficulty is a 1-5 self-reported difficulty rating.
type TopicDifficulty int

const (
	DifficultyTrivial TopicDifficulty = 1
	DifficultyEasy    TopicDifficulty = 2
	DifficultyMedium  TopicDifficulty = 3
	DifficultyHard    TopicDifficulty = 4
	DifficultyExpert  TopicDifficulty = 5
)

// Valid reports whether d is in the closed range [1,5].
func (d TopicDifficulty) Valid() bool {
	return d >= DifficultyTrivial && d <= DifficultyExpert
}

func (d TopicDifficulty) weight() float64 {
	return 0.6 + float64(d)*0.2
}

// Topic is a named unit of knowledge within a repository, optionally
// rooted under parent topics to express a concept hierarchy. Topic
// equality is by Name, not by identity: two Topic values with the same
// name denote the same topic everywhere in the graph.
type Topic struct {
	Name         string
	Category     TopicCategory
	Difficulty   TopicDifficulty
	ParentTopics []string
}

// NewTopic validates and constructs a Topic.
func NewTopic(name string, category TopicCategory, difficulty TopicDifficulty, parents []string) (Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Topic{}, NewValidationError("name", "must not be empty")
	}
	if !category.Valid() {
		return Topic{}, NewValidationError("category", "must be a supported topic category")
	}
	if !difficulty.Valid() {
		return Topic{}, NewValidationError("difficulty", "must be between 1 and 5")
	}
	for _, p := range parents {
		if strings.TrimSpace(p) == "" {
			return Topic{}, NewValidationError("parent_topics", "entries must not be empty")
		}
		if p == name {
			return Topic{}, NewValidationError("parent_topics", "a topic cannot be its own parent")
		}
	}
	cp := append([]string(nil), parents...)
	return Topic{Name: name, Category: category, Difficulty: difficulty, ParentTopics: cp}, nil
}

// Equal reports whether two topics share the same name.
func (t Topic) Equal(other Topic) bool {
	return t.Name == other.Name
}

// HasParent reports whether name is among t's parent topics.
func (t Topic) HasParent(name string) bool {
	for _, p := range t.ParentTopics {
		if p == name {
			return true
		}
	}
	return false
}

// LearningComplexity computes the topic's contribution to a repository's
// complexity score: a base of 1.0 scaled by parent-topic depth, category
// weight, and difficulty weight.
func (t Topic) LearningComplexity() float64 {
	depthFactor := 1.0 + 0.2*float64(len(t.ParentTopics))
	return 1.0 * depthFactor * categoryWeight[t.Category] * t.Difficulty.weight()
}
