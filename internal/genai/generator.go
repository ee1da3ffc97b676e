// Package genai defines the AI kit-generation contract.
//
// The generator is the one heavy external operation in the system: it turns a
// user's idea (text, optionally anchored by a photo) into a fully structured
// project kit via a schema-constrained model call. This package owns the
// request/response shapes, the prompt text, and the strict decode of the
// model's JSON — everything except the actual transport, which lives in the
// openai subpackage behind the Generator interface.
//
// Services depend on the Generator interface, never on a concrete client, so
// tests substitute a fake and never touch the network.
package genai

import (
	"context"
	"fmt"

	"github.com/sakif/kitcraft/internal/model"
)

// ImageInput carries an uploaded reference photo: raw bytes as base64 plus
// the MIME type the client reported.
type ImageInput struct {
	Data     string `json:"data"`
	MIMEType string `json:"mimeType"`
}

// KitRequest is one generation request.
//
// Prompt may be empty only when Image is present — the caller enforces
// "text or image required" and the generator re-checks it.
type KitRequest struct {
	Prompt     string
	SkillLevel model.SkillLevel
	Image      *ImageInput
}

// KitDraft is the model's output: every ProjectKit field the generator is
// responsible for. The service layer adds the ID, owner, originating prompt,
// and timestamp when persisting.
type KitDraft struct {
	ProjectName   string              `json:"projectName"`
	Description   string              `json:"description"`
	SkillLevel    model.SkillLevel    `json:"skillLevel"`
	EstimatedTime string              `json:"estimatedTime"`
	Materials     []model.Material    `json:"materials"`
	Tools         []model.Tool        `json:"tools"`
	Instructions  []model.Instruction `json:"instructions"`
}

// Generator produces a kit draft from a request.
//
// Implementations must normalize every failure — transport, model refusal,
// non-JSON output, schema violation — into a *GenerationError. No retry is
// attempted and no timeout is enforced beyond the client's own; once
// submitted, the caller waits for success or failure.
type Generator interface {
	Generate(ctx context.Context, req KitRequest) (*KitDraft, error)
}

// GenerationError is the single failure kind surfaced by a Generator.
// Message is human-readable and safe to show inline to the user.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("genai: %s: %v", e.Message, e.Err)
	}
	return "genai: " + e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// failf builds a GenerationError wrapping err (err may be nil).
func failf(err error, format string, args ...any) *GenerationError {
	return &GenerationError{
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// ValidateRequest checks the caller-side input constraints shared by all
// Generator implementations.
func ValidateRequest(req KitRequest) error {
	if req.Prompt == "" && req.Image == nil {
		return failf(nil, "a prompt or an image is required")
	}
	if !req.SkillLevel.Valid() {
		return failf(nil, "unknown skill level %q", string(req.SkillLevel))
	}
	if req.Image != nil && (req.Image.Data == "" || req.Image.MIMEType == "") {
		return failf(nil, "image input requires both data and MIME type")
	}
	return nil
}
