// Package repository implements the repository_list and repository_add MCP
// tools over the stored repository set.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kiet-ta/learning-path-repo/internal/domain"
	"github.com/kiet-ta/learning-path-repo/internal/mcp"
)

// repositoryReader is the read contract List needs. Satisfied structurally
// by *store.RepositoryStore.
type repositoryReader interface {
	GetAll(ctx context.Context) ([]domain.Repository, error)
}

// listParams defines the input for repository_list.
type listParams struct {
	SkillType string `json:"skill_type,omitempty"`
}

// List returns every stored repository, optionally filtered by skill type.
type List struct {
	repos repositoryReader
}

// NewList constructs the repository_list tool.
func NewList(repos repositoryReader) *List {
	return &List{repos: repos}
}

func (t *List) Name() string { return "repository_list" }

func (t *List) Description() string {
	return "List stored repositories, optionally filtered to those teaching a given skill type."
}

func (t *List) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "skill_type": {
      "type": "string",
      "enum": ["frontend", "backend", "data_science", "infrastructure", "mobile", "devops", "machine_learning", "security"]
    }
  }
}`)
}

func (t *List) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p listParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return mcp.ErrorResult(fmt.Sprintf("invalid parameters: %v", err)), nil
		}
	}

	all, err := t.repos.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing repositories: %w", err)
	}

	out := make([]domain.Repository, 0, len(all))
	for _, r := range all {
		if p.SkillType != "" && !r.HasSkillType(domain.SkillType(p.SkillType)) {
			continue
		}
		out = append(out, r)
	}

	return mcp.JSONResult(map[string]any{
		"repositories": out,
		"count":        len(out),
	})
}
