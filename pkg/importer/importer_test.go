package importer

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nikogura/resume-builder/pkg/resume"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantName string
	}{
		{name: "minimal", input: `{"personal":{"fullName":"Jane Doe"}}`, wantName: "Jane Doe"},
		{name: "legacy personal", input: `{"personal":{"name":"Jane Doe"},"skills":["Go"]}`, wantName: "Jane Doe"},
		{name: "enveloped", input: `{"version":2,"data":{"personal":{"fullName":"Jane Doe"}}}`, wantName: "Jane Doe"},
		{name: "null personal", input: `{"personal":null}`, wantName: ""},
		{name: "missing personal", input: `{"experience":[]}`, wantErr: true},
		{name: "envelope without personal", input: `{"data":{"experience":[]}}`, wantErr: true},
		{name: "numeric personal", input: `{"personal":42}`, wantErr: true},
		{name: "array", input: `[{"personal":{}}]`, wantErr: true},
		{name: "not json", input: `{"personal":`, wantErr: true},
		{name: "empty", input: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := FromJSON([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, doc)
				var importErr *Error
				assert.True(t, errors.As(err, &importErr), "expected *Error, got %T", err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, doc)
			assert.Equal(t, tt.wantName, doc.Personal.FullName)
			assert.NotNil(t, doc.CustomSections)
		})
	}
}

func TestFromObjectRoundTrip(t *testing.T) {
	inputs := map[string]*resume.Data{
		"sample": resume.Sample(),
		"empty":  resume.Empty(),
	}

	withCustom := resume.Sample()
	custom := resume.NewCustomSection("Volunteering")
	custom.Items = []string{"a", "b"}
	withCustom.CustomSections = append(withCustom.CustomSections, custom)
	inputs["custom"] = withCustom

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			normalized := resume.Normalize(input)

			raw, err := json.Marshal(normalized)
			require.NoError(t, err)
			var obj map[string]any
			require.NoError(t, json.Unmarshal(raw, &obj))

			imported, err := FromObject(obj)
			require.NoError(t, err)
			if diff := cmp.Diff(normalized, imported); diff != "" {
				t.Errorf("import changed the document (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromObjectNil(t *testing.T) {
	_, err := FromObject(nil)
	var importErr *Error
	require.True(t, errors.As(err, &importErr))
	assert.NotEmpty(t, importErr.Message)
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Message: "not a resume file", Cause: errors.New("personal is required")}
	assert.Equal(t, "not a resume file: personal is required", err.Error())
	assert.Equal(t, "not a resume file", (&Error{Message: "not a resume file"}).Error())
}
