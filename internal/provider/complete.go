package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const jsonInstruction = "\n\nIMPORTANT: You must respond with ONLY valid JSON that matches this exact schema:\n%s\n\nDo not include any explanatory text, markdown formatting, or code blocks. Return only raw JSON."

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func schemaValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Complete runs req through c and decodes the result into T. T must be a
// struct; its `validate` tags act as the schema check, so they should
// mirror req.Schema.Document.
func Complete[T any](ctx context.Context, c StructuredCompleter, req Request) (T, error) {
	var out T

	raw, err := c.CompleteJSON(ctx, req)
	if err != nil {
		return out, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return out, &SchemaValidationError{Issues: []Issue{{
				Path:    typeErr.Field,
				Message: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
			}}}
		}
		return out, &InvalidResponseJSONError{Msg: "decode structured output", Preview: Preview(string(raw), 200), Err: err}
	}

	if err := schemaValidator().StructCtx(ctx, out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return out, &SchemaValidationError{Issues: toIssues(verrs)}
		}
		return out, fmt.Errorf("provider: validate output: %w", err)
	}

	return out, nil
}

func toIssues(verrs validator.ValidationErrors) []Issue {
	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		path := fe.Namespace()
		// Drop the root type name.
		if i := strings.IndexByte(path, '.'); i >= 0 {
			path = path[i+1:]
		}
		issues = append(issues, Issue{Path: path, Message: describeTag(fe)})
	}
	return issues
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "min":
		return "must have at least " + fe.Param() + " item(s) or characters"
	case "max":
		return "must have at most " + fe.Param() + " item(s) or characters"
	default:
		return "failed " + fe.Tag()
	}
}

// AugmentSystemPrompt returns a copy of messages whose leading system
// message instructs the model to answer with raw JSON matching schema.
// Transcripts without a leading system message are returned unchanged.
func AugmentSystemPrompt(messages []Message, schema Schema) ([]Message, error) {
	out := make([]Message, len(messages))
	copy(out, messages)

	if len(out) == 0 || out[0].Role != RoleSystem {
		return out, nil
	}

	doc, err := json.MarshalIndent(schema.Document, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("provider: render schema %s: %w", schema.Name, err)
	}

	out[0].Content += fmt.Sprintf(jsonInstruction, doc)
	return out, nil
}
