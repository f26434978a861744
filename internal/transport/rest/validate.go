package rest

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" {
			name, _, _ = strings.Cut(f.Tag.Get("query"), ",")
		}
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkStruct validates s against its `validate` tags and returns field
// messages keyed by wire path ("flashcards.0.source").
func checkStruct(s any) map[string][]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string][]string{"body": {err.Error()}}
	}

	out := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		path := fieldPath(fe.Namespace())
		out[path] = append(out[path], fieldMessage(fe))
	}
	return out
}

// fieldPath turns "createFlashcardsRequest.flashcards[0].source" into
// "flashcards.0.source".
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	}
	ns = strings.ReplaceAll(ns, "[", ".")
	return strings.ReplaceAll(ns, "]", "")
}

var fieldMessages = map[string]string{
	"flashcards.required":    "At least one flashcard is required",
	"flashcards.min":         "At least one flashcard is required",
	"flashcards.max":         "Cannot create more than 100 flashcards at once",
	"source.required":        "Source must be one of: manual, ai-full, ai-edited",
	"source.oneof":           "Source must be one of: manual, ai-full, ai-edited",
	"flashcard_ids.required": "At least one flashcard ID is required",
	"flashcard_ids.min":      "At least one flashcard ID is required",
	"flashcard_ids.max":      "Cannot delete more than 100 flashcards at once",
}

func fieldMessage(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gt":
		return "must be a positive integer"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}
