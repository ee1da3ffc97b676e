package openai

import "github.com/sashabaranov/go-openai/jsonschema"

// kitSchema is the mandatory response schema sent with every generation
// request. It is the contract boundary: the model must return exactly this
// object shape, and genai.DecodeKitDraft treats anything else as a failure.
//
// The descriptions are prompt material — they steer the model's field
// content (price format, search links, visual-description phrasing) just as
// much as the system instruction does.
var kitSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"projectName": {
			Type:        jsonschema.String,
			Description: "A creative and descriptive name for the DIY project.",
		},
		"description": {
			Type:        jsonschema.String,
			Description: "A brief, engaging one-paragraph description of the final project.",
		},
		"skillLevel": {
			Type:        jsonschema.String,
			Enum:        []string{"Beginner", "Intermediate", "Advanced"},
			Description: "The skill level required for this project.",
		},
		"estimatedTime": {
			Type:        jsonschema.String,
			Description: `An estimation of how long the project will take to complete (e.g., "2-3 hours").`,
		},
		"materials": {
			Type:        jsonschema.Array,
			Description: "A list of materials needed for the project.",
			Items: &jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"name": {
						Type:        jsonschema.String,
						Description: "Name of the material.",
					},
					"quantity": {
						Type:        jsonschema.String,
						Description: `Quantity of the material needed (e.g., "1 meter", "2x4x8 piece").`,
					},
					"estimatedPrice": {
						Type:        jsonschema.String,
						Description: `An estimated price range for the material in Indian Rupees (INR), e.g., "₹500-₹700".`,
					},
					"buyLink": {
						Type:        jsonschema.String,
						Description: "A valid Amazon.in search URL for the material.",
					},
				},
				Required: []string{"name", "quantity", "estimatedPrice", "buyLink"},
			},
		},
		"tools": {
			Type:        jsonschema.Array,
			Description: "A list of tools required for the project.",
			Items: &jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"name": {
						Type:        jsonschema.String,
						Description: "Name of the tool.",
					},
				},
				Required: []string{"name"},
			},
		},
		"instructions": {
			Type:        jsonschema.Array,
			Description: "A list of step-by-step instructions.",
			Items: &jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"step": {
						Type:        jsonschema.Integer,
						Description: "The step number.",
					},
					"description": {
						Type:        jsonschema.String,
						Description: "A clear, concise description of the action to be taken in this step.",
					},
					"visualDescription": {
						Type:        jsonschema.String,
						Description: "A short, evocative description of what the project should look like at the end of this step. This will be used as a placeholder for an image.",
					},
					"tip": {
						Type:        jsonschema.String,
						Description: "An optional helpful tip for this step.",
					},
				},
				Required: []string{"step", "description", "visualDescription"},
			},
		},
	},
	Required: []string{"projectName", "description", "skillLevel", "estimatedTime", "materials", "tools", "instructions"},
}
