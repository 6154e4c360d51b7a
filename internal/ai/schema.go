package ai

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"google.golang.org/genai"
)

var (
	chatSchema     = GenerateSchema[chatPayload]()
	analysisSchema = GenerateSchema[analysisPayload]()
)

// GenerateSchema reflects T into a JSON schema that satisfies OpenAI's
// strict structured-output rules: every property required, no extras.
func GenerateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	b, err := reflector.Reflect(v).MarshalJSON()
	if err != nil {
		panic(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}
	delete(m, "$schema")
	delete(m, "$id")
	strictify(m)
	return m
}

func strictify(schema map[string]any) {
	if t, ok := schema["type"].(string); ok && t == "object" {
		schema["additionalProperties"] = false
		if props, ok := schema["properties"].(map[string]any); ok {
			required := make([]string, 0, len(props))
			for name := range props {
				required = append(required, name)
			}
			if len(required) > 0 {
				schema["required"] = required
			}
		}
	}
	if props, ok := schema["properties"].(map[string]any); ok {
		for _, p := range props {
			if pm, ok := p.(map[string]any); ok {
				strictify(pm)
			}
		}
	}
	if items, ok := schema["items"].(map[string]any); ok {
		strictify(items)
	}
}

func schemaFor(f Format) map[string]any {
	if f == FormatAnalysis {
		return analysisSchema
	}
	return chatSchema
}

// genaiSchemaFor is the Gemini SDK equivalent of schemaFor.
func genaiSchemaFor(f Format) *genai.Schema {
	if f == FormatAnalysis {
		return &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"sentimentScore": {Type: genai.TypeNumber},
				"emotions":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"response":       {Type: genai.TypeString},
			},
			Required: []string{"sentimentScore", "emotions", "response"},
		}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"mood": {Type: genai.TypeString, Enum: []string{"happy", "sad", "anxious", "calm", "neutral"}},
			"text": {Type: genai.TypeString},
		},
		Required: []string{"mood", "text"},
	}
}
