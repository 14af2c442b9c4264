// Package path implements the path_generate and path_apply_override MCP
// tools, the only entry points into the generation pipeline exposed over
// the wire.
package path

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kiet-ta/learning-path-repo/internal/domain"
	"github.com/kiet-ta/learning-path-repo/internal/mcp"
	"github.com/kiet-ta/learning-path-repo/internal/pipeline"
)

// generateParams defines the input for path_generate.
type generateParams struct {
	LearnerID             string   `json:"learner_id"`
	Name                  string   `json:"name"`
	Description           string   `json:"description,omitempty"`
	TargetSkillTypes      []string `json:"target_skill_types,omitempty"`
	TargetSkillLevel      string   `json:"target_skill_level,omitempty"`
	MaxRepositories       *int     `json:"max_repositories,omitempty"`
	AllowParallelLearning bool     `json:"allow_parallel_learning,omitempty"`
	MaxParallelNodes      int      `json:"max_parallel_nodes,omitempty"`
	ExcludeRepositoryIDs  []string `json:"exclude_repository_ids,omitempty"`
}

// Generate runs C2-C5 against the stored repository set and persists the
// resulting path.
type Generate struct {
	generator *pipeline.Generator
	paths     pipeline.PathStore
}

// NewGenerate constructs the path_generate tool.
func NewGenerate(generator *pipeline.Generator, paths pipeline.PathStore) *Generate {
	return &Generate{generator: generator, paths: paths}
}

func (t *Generate) Name() string { return "path_generate" }

func (t *Generate) Description() string {
	return "Generate a learning path for a learner from the stored repository set, applying any previously recorded overrides, and persist it."
}

func (t *Generate) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "learner_id": {"type": "string", "description": "Opaque identifier for the learner this path is generated for"},
    "name": {"type": "string", "description": "Display name for the path, 1-255 characters"},
    "description": {"type": "string"},
    "target_skill_types": {
      "type": "array",
      "items": {"type": "string", "enum": ["frontend", "backend", "data_science", "infrastructure", "mobile", "devops", "machine_learning", "security"]},
      "description": "Restrict generation to repositories teaching any of these skill types"
    },
    "target_skill_level": {
      "type": "string",
      "enum": ["basic", "intermediate", "advanced", "expert"],
      "description": "Restrict generation to repositories teaching this skill level"
    },
    "max_repositories": {"type": "integer", "description": "Cap on the number of repositories included"},
    "allow_parallel_learning": {"type": "boolean"},
    "max_parallel_nodes": {"type": "integer", "description": "Default 3"},
    "exclude_repository_ids": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["learner_id", "name"]
}`)
}

func (t *Generate) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p generateParams
	if err := json.Unmarshal(params, &p); err != nil {
		return mcp.ErrorResult(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	req := pipeline.GenerateRequest{
		LearnerID:             p.LearnerID,
		Name:                  p.Name,
		Description:           p.Description,
		MaxRepositories:       p.MaxRepositories,
		AllowParallelLearning: p.AllowParallelLearning,
		MaxParallelNodes:      p.MaxParallelNodes,
	}
	for _, s := range p.TargetSkillTypes {
		req.TargetSkillTypes = append(req.TargetSkillTypes, domain.SkillType(s))
	}
	if p.TargetSkillLevel != "" {
		level := domain.SkillLevel(p.TargetSkillLevel)
		req.TargetSkillLevel = &level
	}
	for _, id := range p.ExcludeRepositoryIDs {
		req.ExcludeRepositoryIDs = append(req.ExcludeRepositoryIDs, domain.ID(id))
	}

	result, err := t.generator.Generate(ctx, req)
	if err != nil {
		if domainErr, ok := err.(*domain.Error); ok {
			return mcp.ErrorResult(domainErr.Error()), nil
		}
		return nil, fmt.Errorf("generating path: %w", err)
	}

	saved, err := t.paths.Save(ctx, result)
	if err != nil {
		return nil, fmt.Errorf("persisting path: %w", err)
	}

	return mcp.JSONResult(saved)
}
