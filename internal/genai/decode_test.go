package genai

import (
	"errors"
	"testing"

	"github.com/sakif/kitcraft/internal/model"
)

const validKitJSON = `{
	"projectName": "Cozy Cedar Birdhouse",
	"description": "A weatherproof birdhouse for small garden birds.",
	"skillLevel": "Beginner",
	"estimatedTime": "3-4 hours",
	"materials": [
		{"name": "Cedar plank", "quantity": "2", "estimatedPrice": "₹450", "buyLink": "https://www.amazon.in/s?k=cedar+plank"}
	],
	"tools": [{"name": "Hand saw"}],
	"instructions": [
		{"step": 1, "description": "Cut the plank to size.", "visualDescription": "Plank on a workbench."},
		{"step": 2, "description": "Assemble the walls.", "visualDescription": "Four panels forming a box.", "tip": "Pre-drill to avoid splitting."}
	]
}`

func TestDecodeKitDraft_Valid(t *testing.T) {
	draft, err := DecodeKitDraft(validKitJSON)
	if err != nil {
		t.Fatalf("DecodeKitDraft() error = %v", err)
	}

	if draft.ProjectName != "Cozy Cedar Birdhouse" {
		t.Errorf("ProjectName = %q", draft.ProjectName)
	}
	if draft.SkillLevel != model.SkillBeginner {
		t.Errorf("SkillLevel = %q", draft.SkillLevel)
	}
	if len(draft.Materials) != 1 || draft.Materials[0].EstimatedPrice != "₹450" {
		t.Errorf("Materials = %+v", draft.Materials)
	}
	if len(draft.Instructions) != 2 {
		t.Fatalf("len(Instructions) = %d, want 2", len(draft.Instructions))
	}
	if draft.Instructions[0].Tip != "" {
		t.Error("Instructions[0].Tip should be empty — tip is optional")
	}
	if draft.Instructions[1].Tip == "" {
		t.Error("Instructions[1].Tip lost in decode")
	}
}

func TestDecodeKitDraft_TrimsSurroundingWhitespace(t *testing.T) {
	if _, err := DecodeKitDraft("\n  " + validKitJSON + "\n"); err != nil {
		t.Errorf("DecodeKitDraft() with surrounding whitespace error = %v", err)
	}
}

func TestDecodeKitDraft_Rejections(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"malformed JSON", `{"projectName": "x",`},
		{"prose instead of JSON", "Sure! Here is your kit: ..."},
		{"missing project name", `{"description":"d","skillLevel":"Beginner","estimatedTime":"1h"}`},
		{"missing description", `{"projectName":"p","skillLevel":"Beginner","estimatedTime":"1h"}`},
		{"unknown skill level", `{"projectName":"p","description":"d","skillLevel":"Expert","estimatedTime":"1h"}`},
		{"missing estimated time", `{"projectName":"p","description":"d","skillLevel":"Beginner"}`},
		{
			"material missing price",
			`{"projectName":"p","description":"d","skillLevel":"Beginner","estimatedTime":"1h",
			  "materials":[{"name":"Plank","quantity":"1","estimatedPrice":"","buyLink":"https://www.amazon.in/s?k=plank"}]}`,
		},
		{
			"unnamed tool",
			`{"projectName":"p","description":"d","skillLevel":"Beginner","estimatedTime":"1h",
			  "tools":[{"name":""}]}`,
		},
		{
			"steps start at zero",
			`{"projectName":"p","description":"d","skillLevel":"Beginner","estimatedTime":"1h",
			  "instructions":[{"step":0,"description":"x","visualDescription":"y"}]}`,
		},
		{
			"steps skip a number",
			`{"projectName":"p","description":"d","skillLevel":"Beginner","estimatedTime":"1h",
			  "instructions":[
			    {"step":1,"description":"a","visualDescription":"va"},
			    {"step":3,"description":"b","visualDescription":"vb"}]}`,
		},
		{
			"instruction missing visual description",
			`{"projectName":"p","description":"d","skillLevel":"Beginner","estimatedTime":"1h",
			  "instructions":[{"step":1,"description":"x","visualDescription":""}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeKitDraft(tt.text)
			if err == nil {
				t.Fatal("DecodeKitDraft() should have rejected the response")
			}
			var genErr *GenerationError
			if !errors.As(err, &genErr) {
				t.Errorf("error type = %T, want *GenerationError", err)
			}
		})
	}
}

func TestValidateRequest(t *testing.T) {
	valid := KitRequest{Prompt: "a birdhouse", SkillLevel: model.SkillBeginner}
	if err := ValidateRequest(valid); err != nil {
		t.Errorf("ValidateRequest(valid) error = %v", err)
	}

	imageOnly := KitRequest{
		SkillLevel: model.SkillAdvanced,
		Image:      &ImageInput{Data: "aGVsbG8=", MIMEType: "image/png"},
	}
	if err := ValidateRequest(imageOnly); err != nil {
		t.Errorf("ValidateRequest(image only) error = %v", err)
	}

	tests := []struct {
		name string
		req  KitRequest
	}{
		{"no prompt or image", KitRequest{SkillLevel: model.SkillBeginner}},
		{"bad skill level", KitRequest{Prompt: "x", SkillLevel: "Guru"}},
		{"image without data", KitRequest{Prompt: "x", SkillLevel: model.SkillBeginner, Image: &ImageInput{MIMEType: "image/png"}}},
		{"image without mime type", KitRequest{Prompt: "x", SkillLevel: model.SkillBeginner, Image: &ImageInput{Data: "aGVsbG8="}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateRequest(tt.req); err == nil {
				t.Error("ValidateRequest() should have failed")
			}
		})
	}
}

func TestGenerationError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &GenerationError{Message: "generation request failed", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should see the wrapped cause")
	}
	if err.Error() == "" {
		t.Error("Error() should describe the failure")
	}

	bare := &GenerationError{Message: "model returned no choices"}
	if bare.Error() != "genai: model returned no choices" {
		t.Errorf("Error() = %q", bare.Error())
	}
}
