package summarize

import (
	"fmt"

	"ewintr.nl/vidsum/model"
)

// GenerationRequest is a complete, backend-agnostic generation call. Derived
// deterministically from metadata and style, never from backend state.
type GenerationRequest struct {
	Prompt          string
	Temperature     float32
	TopP            float32
	TopK            int32
	MaxOutputTokens int32
}

const promptTemplate = `You are an expert at summarizing YouTube video content. Your task is to create a high-quality summary of the following video transcript.

%s%s
%s

Format the summary in Markdown with appropriate headings, bullet points, and emphasis where needed.

Here is the transcript:

%s

Summary:`

// BuildRequest assembles the generation request. Total function: unknown
// style values map to their defaults, it never fails.
func BuildRequest(md VideoMetadata, summaryType model.SummaryType, summaryLength model.SummaryLength) GenerationRequest {
	titleSection := ""
	if md.Title != "" {
		titleSection = fmt.Sprintf("Title: %s\n\n", md.Title)
	}

	prompt := fmt.Sprintf(promptTemplate,
		titleSection,
		typeInstruction(summaryType),
		lengthInstruction(summaryLength),
		md.Transcript,
	)

	return GenerationRequest{
		Prompt:          prompt,
		Temperature:     0.7,
		TopP:            0.95,
		TopK:            40,
		MaxOutputTokens: 8192,
	}
}

func typeInstruction(summaryType model.SummaryType) string {
	switch summaryType {
	case model.TypeDetailed:
		return "Provide a detailed summary covering all significant points, arguments, and examples."
	case model.TypeKeyPoint:
		return "Extract and list the key points and takeaways in a structured format."
	default:
		return "Create a brief overview of the main points and conclusions."
	}
}

func lengthInstruction(summaryLength model.SummaryLength) string {
	switch summaryLength {
	case model.LengthShort:
		return "Keep the summary concise, around 100-150 words."
	case model.LengthLong:
		return "Create a comprehensive summary, around 400-600 words."
	default:
		return "Provide a moderate-length summary, around 200-300 words."
	}
}
