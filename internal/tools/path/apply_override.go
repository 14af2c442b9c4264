package path

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kiet-ta/learning-path-repo/internal/domain"
	"github.com/kiet-ta/learning-path-repo/internal/mcp"
	"github.com/kiet-ta/learning-path-repo/internal/milestone"
	"github.com/kiet-ta/learning-path-repo/internal/override"
)

// overrideRecorder is the persistence contract ApplyOverride needs. It is
// satisfied structurally by *store.OverrideStore.
type overrideRecorder interface {
	Record(learnerID string, instr override.Instruction, now time.Time)
}

// applyOverrideParams defines the input for path_apply_override.
type applyOverrideParams struct {
	LearnerID    string `json:"learner_id"`
	Kind         string `json:"kind"`
	RepositoryID string `json:"repository_id"`
	TargetIndex  int    `json:"target_index,omitempty"`
	Phase        string `json:"phase,omitempty"`
	Text         string `json:"text,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

// ApplyOverride records a learner override instruction to be applied on the
// next path_generate call.
type ApplyOverride struct {
	overrides overrideRecorder
	now       func() time.Time
}

// NewApplyOverride constructs the path_apply_override tool.
func NewApplyOverride(overrides overrideRecorder) *ApplyOverride {
	return &ApplyOverride{overrides: overrides, now: time.Now}
}

func (t *ApplyOverride) Name() string { return "path_apply_override" }

func (t *ApplyOverride) Description() string {
	return "Record a learner override (skip, reorder, force_phase, or note) to be applied the next time a path is generated for that learner."
}

func (t *ApplyOverride) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "learner_id": {"type": "string"},
    "kind": {"type": "string", "enum": ["skip", "reorder", "force_phase", "note"]},
    "repository_id": {"type": "string"},
    "target_index": {"type": "integer", "description": "Used by the reorder kind"},
    "phase": {"type": "string", "enum": ["foundations", "core_skills", "advanced_systems", "specialized_topics"], "description": "Used by the force_phase kind"},
    "text": {"type": "string", "description": "Used by the note kind"},
    "reason": {"type": "string", "description": "Optional; defaults to \"learner override\""}
  },
  "required": ["learner_id", "kind", "repository_id"]
}`)
}

func (t *ApplyOverride) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p applyOverrideParams
	if err := json.Unmarshal(params, &p); err != nil {
		return mcp.ErrorResult(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if p.LearnerID == "" {
		return mcp.ErrorResult("learner_id is required"), nil
	}
	if p.RepositoryID == "" {
		return mcp.ErrorResult("repository_id is required"), nil
	}

	kind := override.Kind(p.Kind)
	switch kind {
	case override.KindSkip, override.KindReorder, override.KindForcePhase, override.KindNote:
	default:
		return mcp.ErrorResult(fmt.Sprintf("unknown override kind %q", p.Kind)), nil
	}

	instr := override.Instruction{
		Kind:         kind,
		RepositoryID: domain.ID(p.RepositoryID),
		TargetIndex:  p.TargetIndex,
		Phase:        milestone.Phase(p.Phase),
		Text:         p.Text,
		Reason:       p.Reason,
	}
	t.overrides.Record(p.LearnerID, instr, t.now())

	return mcp.JSONResult(map[string]any{
		"message":       "override recorded, will apply on next path_generate",
		"learner_id":    p.LearnerID,
		"kind":          kind,
		"repository_id": p.RepositoryID,
	})
}
