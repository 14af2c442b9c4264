package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kiet-ta/learning-path-repo/internal/domain"
	"github.com/kiet-ta/learning-path-repo/internal/mcp"
)

// repositoryWriter is the write contract Add needs. Satisfied structurally
// by *store.RepositoryStore.
type repositoryWriter interface {
	Save(ctx context.Context, repo *domain.Repository) error
}

// skillParam mirrors domain.Skill over the wire.
type skillParam struct {
	Type  string `json:"type"`
	Level string `json:"level"`
}

// topicParam mirrors domain.Topic over the wire.
type topicParam struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Difficulty   int      `json:"difficulty"`
	ParentTopics []string `json:"parent_topics,omitempty"`
}

// addParams defines the input for repository_add.
type addParams struct {
	Name                 string         `json:"name"`
	Path                 string         `json:"path"`
	PrimaryLanguage      string         `json:"primary_language"`
	Description          string         `json:"description,omitempty"`
	LinesOfCode          int            `json:"lines_of_code,omitempty"`
	FileCount            int            `json:"file_count,omitempty"`
	Dependencies         []string       `json:"dependencies,omitempty"`
	HasTests             bool           `json:"has_tests,omitempty"`
	HasCI                bool           `json:"has_ci,omitempty"`
	HasDocumentation     bool           `json:"has_documentation,omitempty"`
	LanguageDistribution map[string]int `json:"language_distribution,omitempty"`
	Skills               []skillParam   `json:"skills,omitempty"`
	Topics               []topicParam   `json:"topics,omitempty"`
}

// Add registers a new repository in the store, computing its derived
// complexity, hours, and content hash on construction.
type Add struct {
	repos repositoryWriter
}

// NewAdd constructs the repository_add tool.
func NewAdd(repos repositoryWriter) *Add {
	return &Add{repos: repos}
}

func (t *Add) Name() string { return "repository_add" }

func (t *Add) Description() string {
	return "Add a repository to the stored set, optionally teaching a primary and secondary skills and covering one or more topics."
}

func (t *Add) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "path": {"type": "string"},
    "primary_language": {"type": "string"},
    "description": {"type": "string"},
    "lines_of_code": {"type": "integer", "minimum": 0},
    "file_count": {"type": "integer", "minimum": 0},
    "dependencies": {"type": "array", "items": {"type": "string"}},
    "has_tests": {"type": "boolean"},
    "has_ci": {"type": "boolean"},
    "has_documentation": {"type": "boolean"},
    "language_distribution": {"type": "object", "additionalProperties": {"type": "integer"}},
    "skills": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "type": {"type": "string", "enum": ["frontend", "backend", "data_science", "infrastructure", "mobile", "devops", "machine_learning", "security"]},
          "level": {"type": "string", "enum": ["basic", "intermediate", "advanced", "expert"]}
        },
        "required": ["type", "level"]
      }
    },
    "topics": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "category": {"type": "string", "enum": ["language", "framework", "tool", "concept", "pattern", "architecture"]},
          "difficulty": {"type": "integer", "minimum": 1, "maximum": 5},
          "parent_topics": {"type": "array", "items": {"type": "string"}}
        },
        "required": ["name", "category", "difficulty"]
      }
    }
  },
  "required": ["name", "path", "primary_language"]
}`)
}

func (t *Add) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p addParams
	if err := json.Unmarshal(params, &p); err != nil {
		return mcp.ErrorResult(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	meta, err := domain.NewRepositoryMetadata(p.LinesOfCode, p.FileCount, p.Dependencies, p.HasTests, p.HasCI, p.HasDocumentation, p.LanguageDistribution)
	if err != nil {
		return mcp.ErrorResult(err.Error()), nil
	}

	skills := make([]domain.Skill, 0, len(p.Skills))
	for _, sp := range p.Skills {
		s, err := domain.NewSkill(domain.SkillType(sp.Type), domain.SkillLevel(sp.Level))
		if err != nil {
			return mcp.ErrorResult(err.Error()), nil
		}
		skills = append(skills, s)
	}

	topics := make([]domain.Topic, 0, len(p.Topics))
	for _, tp := range p.Topics {
		topic, err := domain.NewTopic(tp.Name, domain.TopicCategory(tp.Category), domain.TopicDifficulty(tp.Difficulty), tp.ParentTopics)
		if err != nil {
			return mcp.ErrorResult(err.Error()), nil
		}
		topics = append(topics, topic)
	}

	repo, err := domain.NewRepository(p.Name, p.Path, p.PrimaryLanguage, p.Description, meta, skills, topics)
	if err != nil {
		return mcp.ErrorResult(err.Error()), nil
	}

	if err := t.repos.Save(ctx, repo); err != nil {
		return nil, fmt.Errorf("saving repository: %w", err)
	}

	return mcp.JSONResult(repo)
}
