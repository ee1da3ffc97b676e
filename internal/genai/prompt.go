package genai

import (
	"fmt"
	"strings"

	"github.com/sakif/kitcraft/internal/model"
)

// The fixed business rules embedded in every generation request, verbatim
// from the product contract: INR price estimates and Amazon.in search links
// for every material, and a visual-description phrase for every step.
const systemInstructionTemplate = `You are an expert DIY project generator for an audience in India. Your task is to create a complete DIY kit plan based on a user's idea and their specified skill level.
The plan must be detailed, well-structured, and easy to follow.
The user's requested skill level is %s. Ensure the project complexity, tools, and instructions are appropriate for this level.
For every single material listed, you MUST provide an estimated price in Indian Rupees (INR), for example "₹500-₹700", and generate a valid Amazon.in search URL for that item. This is a critical requirement.
Provide a complete JSON output that conforms to the provided schema. Do not include any markdown formatting or introductory text.
For 'visualDescription', create a short, evocative phrase that describes what a photo or diagram of that step would show. For example: "A close-up shot of the dovetailed corner joint, perfectly flush."
Be creative and practical. The project should be something a person can realistically build.`

const imageInstructionSuffix = `
The user has provided an image. The primary goal is to generate a DIY plan to build the object shown in the image. The text prompt should be used as additional context or for clarification.`

// SystemInstruction builds the system message for a generation request.
// When an image accompanies the request, the instruction declares the image
// the primary specification and the text supplemental.
func SystemInstruction(level model.SkillLevel, hasImage bool) string {
	s := fmt.Sprintf(systemInstructionTemplate, string(level))
	if hasImage {
		s += imageInstructionSuffix
	}
	return s
}

// UserText builds the user-facing content text for a generation request.
func UserText(prompt string, hasImage bool) string {
	if hasImage {
		return fmt.Sprintf("Generate a DIY project kit for the object in the image. Additional context: %q", prompt)
	}
	return fmt.Sprintf("Generate a DIY project kit for the following idea: %q", prompt)
}

// ImageDataURL renders an ImageInput as an inline data URL, the form
// OpenAI-compatible chat APIs accept for request-embedded images.
func ImageDataURL(img ImageInput) string {
	// Tolerate callers that already pass a data URL.
	if strings.HasPrefix(img.Data, "data:") {
		return img.Data
	}
	return fmt.Sprintf("data:%s;base64,%s", img.MIMEType, img.Data)
}
