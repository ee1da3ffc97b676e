package genai

import (
	"encoding/json"
	"strings"
)

// DecodeKitDraft parses the model's response text into a fully-typed
// KitDraft.
//
// The response format is schema-pinned at request time, so a conforming
// model cannot produce a structurally invalid document — but the decode is
// still strict: it either yields a complete draft or a GenerationError.
// Nothing downstream ever handles a partial kit. The only optional field in
// the whole contract is an instruction's tip.
func DecodeKitDraft(text string) (*KitDraft, error) {
	var draft KitDraft
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &draft); err != nil {
		return nil, failf(err, "model returned malformed JSON")
	}

	if draft.ProjectName == "" {
		return nil, failf(nil, "model response missing projectName")
	}
	if draft.Description == "" {
		return nil, failf(nil, "model response missing description")
	}
	if !draft.SkillLevel.Valid() {
		return nil, failf(nil, "model returned unknown skill level %q", string(draft.SkillLevel))
	}
	if draft.EstimatedTime == "" {
		return nil, failf(nil, "model response missing estimatedTime")
	}

	for i, m := range draft.Materials {
		if m.Name == "" || m.Quantity == "" || m.EstimatedPrice == "" || m.BuyLink == "" {
			return nil, failf(nil, "material %d is missing a required field", i+1)
		}
	}

	for i, tool := range draft.Tools {
		if tool.Name == "" {
			return nil, failf(nil, "tool %d is missing its name", i+1)
		}
	}

	// Step numbers must be a contiguous 1-based sequence matching slice
	// order — the invariant every consumer of Instructions relies on.
	for i, ins := range draft.Instructions {
		if ins.Step != i+1 {
			return nil, failf(nil, "instruction steps are not a contiguous 1-based sequence (position %d has step %d)", i+1, ins.Step)
		}
		if ins.Description == "" {
			return nil, failf(nil, "instruction %d is missing its description", i+1)
		}
		if ins.VisualDescription == "" {
			return nil, failf(nil, "instruction %d is missing its visual description", i+1)
		}
	}

	return &draft, nil
}
