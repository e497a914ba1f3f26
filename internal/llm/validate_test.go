package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func answerSchema() *Schema {
	return &Schema{
		Name:        "test-answer",
		Description: "a graded answer",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"verdict": map[string]any{
					"type": "string",
					"enum": []string{"correct", "incorrect"},
				},
				"score": map[string]any{
					"type":    "integer",
					"minimum": 0,
					"maximum": 100,
				},
			},
			"required":             []string{"verdict", "score"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse_NoSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything goes`)); err != nil {
		t.Errorf("nil schema should skip validation, got %v", err)
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"verdict": "correct", "score": 90}`)
	if err := validateResponse(answerSchema(), raw); err != nil {
		t.Errorf("validateResponse: %v", err)
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	err := validateResponse(answerSchema(), json.RawMessage(`{"verdict":`))
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestValidateResponse_SchemaViolations(t *testing.T) {
	cases := []string{
		`{"verdict": "maybe", "score": 50}`,      // enum violation
		`{"verdict": "correct"}`,                 // missing required
		`{"verdict": "correct", "score": "90"}`,  // wrong type
		`{"verdict": "correct", "score": 101}`,   // out of range
		`{"verdict": "correct", "score": 50, "extra": 1}`, // additional property
	}
	for _, raw := range cases {
		err := validateResponse(answerSchema(), json.RawMessage(raw))
		var invalid *ErrInvalidResponse
		if !errors.As(err, &invalid) {
			t.Errorf("validateResponse(%s) = %v, want ErrInvalidResponse", raw, err)
		}
	}
}

func TestValidateResponse_CachesCompiledSchema(t *testing.T) {
	schema := answerSchema()
	raw := json.RawMessage(`{"verdict": "correct", "score": 90}`)

	if err := validateResponse(schema, raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := schemaCache.Load(schema.Name); !ok {
		t.Error("compiled schema not cached")
	}
	// Second pass hits the cache.
	if err := validateResponse(schema, raw); err != nil {
		t.Fatal(err)
	}
}
