// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other
// languages, but without inheritance. Go favours composition over inheritance.
package model

import "time"

// SkillLevel constrains the complexity of a generated project.
// The generator rejects any value outside these three.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
)

// Valid reports whether s is one of the three known skill levels.
func (s SkillLevel) Valid() bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return true
	}
	return false
}

// Material is one purchasable item in a kit's shopping list.
// Quantity and EstimatedPrice are free text as produced by the generator
// (e.g. "2x4x8 piece", "₹500-₹700"). BuyLink is a marketplace search URL.
//
// Materials are value records: adding a kit's materials to the cart copies
// them, it never references the kit.
type Material struct {
	Name           string `json:"name"`
	Quantity       string `json:"quantity"`
	EstimatedPrice string `json:"estimatedPrice"`
	BuyLink        string `json:"buyLink"`
}

// Tool is a single required tool, by name.
type Tool struct {
	Name string `json:"name"`
}

// Instruction is one build step. Step numbers within a kit form a contiguous
// 1-based sequence matching slice order. VisualDescription is a short phrase
// describing what the project looks like after the step; Tip is optional.
type Instruction struct {
	Step              int    `json:"step"`
	Description       string `json:"description"`
	VisualDescription string `json:"visualDescription"`
	Tip               string `json:"tip,omitempty"`
}

// ProjectKit is the structured DIY project record produced per user request.
//
// Prompt preserves the user's originating idea text. Kits are immutable after
// creation — there are no update or delete operations — and each belongs to
// exactly one user.
type ProjectKit struct {
	ID            string        `json:"id"`
	UserID        string        `json:"-"`
	ProjectName   string        `json:"projectName"`
	Description   string        `json:"description"`
	Prompt        string        `json:"prompt"`
	SkillLevel    SkillLevel    `json:"skillLevel"`
	EstimatedTime string        `json:"estimatedTime"`
	Materials     []Material    `json:"materials"`
	Tools         []Tool        `json:"tools"`
	Instructions  []Instruction `json:"instructions"`
	CreatedAt     time.Time     `json:"createdAt"`
}
