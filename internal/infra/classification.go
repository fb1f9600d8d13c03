package infra

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"interview-agent/internal/domain"
)

// ClassificationSystemPrompt is the system role sent to every completion
// provider.
const ClassificationSystemPrompt = "You are an expert legal assistant specializing in asylum cases. " +
	"Analyze responses carefully for completeness and credibility."

// classificationSchema is what a model completion must satisfy before we
// trust its shape. Anything else falls through to the pessimistic fallback.
const classificationSchema = `{
  "type": "object",
  "required": ["extracted_info", "adequately_answered", "concerns", "follow_up_needed", "confidence_level", "summary"],
  "properties": {
    "extracted_info": {"type": "string"},
    "adequately_answered": {"type": "boolean"},
    "concerns": {"type": "array", "items": {"type": "string"}},
    "follow_up_needed": {"type": "boolean"},
    "suggested_follow_up": {"type": "string"},
    "confidence_level": {"type": "integer", "minimum": 1, "maximum": 10},
    "summary": {"type": "string"}
  }
}`

var classificationSchemaLoader = gojsonschema.NewStringLoader(classificationSchema)

// ClassificationPrompt builds the user prompt embedding the question context
// and the transcript.
func ClassificationPrompt(question domain.Question, transcript string) string {
	return fmt.Sprintf(`You are an AI assistant helping to process asylum interview responses.

Question Category: %s
Question Asked: %q
User Response: %q

Please analyze this response and provide:
1. Key information extracted
2. Whether the response adequately answers the question
3. Any red flags or concerns
4. Suggested follow-up questions if needed
5. Confidence level (1-10) in the response quality

Format your response as JSON with the following structure:
{
    "extracted_info": "main information from the response",
    "adequately_answered": true/false,
    "concerns": ["list of any concerns"],
    "follow_up_needed": true/false,
    "suggested_follow_up": "specific follow-up question if needed",
    "confidence_level": 1-10,
    "summary": "brief summary for case file"
}

Respond ONLY with valid JSON (no markdown, no backticks).`, question.Category, question.Prompt, transcript)
}

// DecodeClassification parses a model completion into a Classification.
// Markdown fences are stripped first, then the document is validated against
// the schema before unmarshaling so a malformed reply never produces a
// half-filled judgment.
func DecodeClassification(raw string) (domain.Classification, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	result, err := gojsonschema.Validate(classificationSchemaLoader, gojsonschema.NewStringLoader(text))
	if err != nil {
		return domain.Classification{}, fmt.Errorf("validating classification JSON: %w", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		return domain.Classification{}, fmt.Errorf("classification JSON rejected by schema: %s", strings.Join(details, "; "))
	}

	var cls domain.Classification
	if err := json.Unmarshal([]byte(text), &cls); err != nil {
		return domain.Classification{}, fmt.Errorf("parsing classification JSON: %w", err)
	}
	return cls, nil
}
