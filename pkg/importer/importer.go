// Package importer turns user-supplied JSON into a normalized resume document.
package importer

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/nikogura/resume-builder/pkg/resume"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

// Error is an import failure that can be shown to the user as is.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() (msg string) {
	msg = e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() (cause error) {
	cause = e.Cause
	return cause
}

// envelopeField wraps documents exported by some older versions.
const envelopeField = "data"

const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["personal"],
  "properties": {
    "personal": {"type": ["object", "string", "null"]}
  }
}`

//nolint:gochecknoglobals // Compiled once
var loadSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(documentSchema))
})

// FromJSON parses and imports raw JSON bytes.
func FromJSON(data []byte) (doc *resume.Data, err error) {
	if !gjson.ValidBytes(data) {
		err = &Error{Message: "file is not valid JSON"}
		return doc, err
	}

	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		err = &Error{Message: "resume must be a JSON object"}
		return doc, err
	}

	if !parsed.Get("personal").Exists() {
		if inner := parsed.Get(envelopeField); inner.IsObject() {
			parsed = inner
		}
	}

	var obj map[string]any
	err = json.Unmarshal([]byte(parsed.Raw), &obj)
	if err != nil {
		err = &Error{Message: "file is not valid JSON", Cause: err}
		return doc, err
	}

	doc, err = FromObject(obj)
	return doc, err
}

// FromObject imports an already decoded JSON object. It fails when the object
// has no personal field; otherwise the result is normalized.
func FromObject(obj map[string]any) (doc *resume.Data, err error) {
	if obj == nil {
		err = &Error{Message: "resume must be a JSON object"}
		return doc, err
	}

	if _, ok := obj["personal"]; !ok {
		if inner, isObject := obj[envelopeField].(map[string]any); isObject {
			obj = inner
		}
	}

	err = validate(obj)
	if err != nil {
		return doc, err
	}

	doc = resume.Normalize(obj)
	return doc, err
}

func validate(obj map[string]any) (err error) {
	schema, err := loadSchema()
	if err != nil {
		err = errors.Wrap(err, "failed to compile import schema")
		return err
	}

	var result *gojsonschema.Result
	result, err = schema.Validate(gojsonschema.NewGoLoader(obj))
	if err != nil {
		err = &Error{Message: "could not validate resume", Cause: err}
		return err
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		err = &Error{Message: "not a resume file", Cause: errors.New(strings.Join(problems, "; "))}
		return err
	}

	return err
}
