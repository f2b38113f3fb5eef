package resume

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messyInputs() (inputs map[string]any) {
	inputs = map[string]any{
		"nil":        nil,
		"not object": []any{"a", "b"},
		"empty map":  map[string]any{},
		"wrong types": map[string]any{
			"personal":       "Jane",
			"experience":     "not a list",
			"skills":         42.0,
			"customSections": map[string]any{"x": 1},
		},
		"legacy shapes": map[string]any{
			"personal": map[string]any{
				"name":   "Jane Doe",
				"extras": map[string]any{"Pronouns": "she/her", "Citizenship": "NZ"},
			},
			"skills": []any{"Go", "Rust", 7.0},
			"experience": []any{
				map[string]any{"company": "Acme", "highlights": "Did X\nDid Y\n\n"},
			},
			"customSections": []any{
				map[string]any{"title": "Volunteering", "mode": "bogus", "items": "one\ntwo"},
			},
		},
		"duplicate ids": map[string]any{
			"personal": map[string]any{"fullName": "Jane"},
			"experience": []any{
				map[string]any{"id": "dup", "company": "A"},
				map[string]any{"id": "dup", "company": "B"},
			},
			"projects": []any{
				map[string]any{"id": "dup", "name": "P"},
				map[string]any{"id": "  ", "name": "Q"},
			},
			"customSections": []any{
				map[string]any{
					"id":     "dup",
					"mode":   "fields",
					"fields": []any{map[string]any{"id": "dup", "label": "L", "value": "V"}},
				},
			},
		},
		"sample": Sample(),
	}
	return inputs
}

func TestNormalizeIdempotent(t *testing.T) {
	for name, input := range messyInputs() {
		t.Run(name, func(t *testing.T) {
			once := Normalize(input)
			twice := Normalize(once)
			if diff := cmp.Diff(once, twice); diff != "" {
				t.Errorf("second normalization changed the document (-once +twice):\n%s", diff)
			}
		})
	}
}

func TestNormalizeIDsUnique(t *testing.T) {
	for name, input := range messyInputs() {
		t.Run(name, func(t *testing.T) {
			data := Normalize(input)
			seen := map[string]bool{}
			for _, id := range collectIDs(data) {
				assert.NotEmpty(t, id)
				assert.False(t, seen[id], "duplicate id %q", id)
				seen[id] = true
			}
		})
	}
}

func TestNormalizeJSONRoundTrip(t *testing.T) {
	for name, input := range messyInputs() {
		t.Run(name, func(t *testing.T) {
			normalized := Normalize(input)

			raw, err := json.Marshal(normalized)
			require.NoError(t, err)

			var parsed map[string]any
			require.NoError(t, json.Unmarshal(raw, &parsed))

			if diff := cmp.Diff(normalized, Normalize(parsed)); diff != "" {
				t.Errorf("round trip changed the document (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeCoercesWrongTypes(t *testing.T) {
	data := Normalize(messyInputs()["wrong types"])

	assert.Equal(t, "", data.Personal.FullName)
	assert.NotNil(t, data.Experience)
	assert.Empty(t, data.Experience)
	assert.NotNil(t, data.Skills)
	assert.Empty(t, data.Skills)
	assert.NotNil(t, data.CustomSections)
	assert.NotNil(t, data.Personal.Extras)
}

func TestNormalizeLegacyShapes(t *testing.T) {
	data := Normalize(messyInputs()["legacy shapes"])

	assert.Equal(t, "Jane Doe", data.Personal.FullName)
	require.Len(t, data.Personal.Extras, 2)
	assert.Equal(t, "Citizenship", data.Personal.Extras[0].Label)
	assert.Equal(t, "she/her", data.Personal.Extras[1].Value)

	require.Len(t, data.Skills, 2)
	assert.Equal(t, "Go", data.Skills[0].Name)
	assert.Equal(t, "Rust", data.Skills[1].Name)

	require.Len(t, data.Experience, 1)
	assert.Equal(t, []string{"Did X", "Did Y"}, data.Experience[0].Highlights)

	require.Len(t, data.CustomSections, 1)
	section := data.CustomSections[0]
	assert.Equal(t, ModeList, section.Mode)
	assert.Equal(t, []string{"one", "two"}, section.Items)
	assert.NotNil(t, section.Fields)
}

func TestNormalizeDuplicateIDsKeepFirst(t *testing.T) {
	data := Normalize(messyInputs()["duplicate ids"])

	assert.Equal(t, "dup", data.Experience[0].ID)
	assert.NotEqual(t, "dup", data.Experience[1].ID)
	assert.NotEqual(t, "dup", data.Projects[0].ID)
	assert.NotEqual(t, "  ", data.Projects[1].ID)
	assert.Equal(t, ModeFields, data.CustomSections[0].Mode)
}

func TestNormalizeCloneDoesNotAlias(t *testing.T) {
	original := Sample()
	copied := Normalize(original)

	copied.Experience[0].Highlights[0] = "changed"
	copied.Personal.Extras[0].Value = "changed"
	copied.Skills[0].Keywords[0] = "changed"

	assert.NotEqual(t, "changed", original.Experience[0].Highlights[0])
	assert.NotEqual(t, "changed", original.Personal.Extras[0].Value)
	assert.NotEqual(t, "changed", original.Skills[0].Keywords[0])
}

func TestNormalizeInPlace(t *testing.T) {
	draft := &Data{Experience: []ExperienceItem{{Company: "Acme"}}}

	out := Normalize(draft, WithClone(false))

	assert.Same(t, draft, out)
	assert.NotEmpty(t, draft.Experience[0].ID)
	assert.NotNil(t, draft.Experience[0].Highlights)
	assert.NotNil(t, draft.Projects)
}

func TestNormalizeBytes(t *testing.T) {
	data := Normalize([]byte(`{"personal":{"fullName":"Jane"},"languages":[{"name":"French"}]}`))
	assert.Equal(t, "Jane", data.Personal.FullName)
	require.Len(t, data.Languages, 1)

	broken := Normalize([]byte(`{not json`))
	assert.NotNil(t, broken.Experience)
}

func TestRepairNil(t *testing.T) {
	assert.NotPanics(t, func() { Repair(nil) })
}

func collectIDs(d *Data) (ids []string) {
	for _, e := range d.Personal.Extras {
		ids = append(ids, e.ID)
	}
	for _, i := range d.Experience {
		ids = append(ids, i.ID)
	}
	for _, i := range d.Projects {
		ids = append(ids, i.ID)
	}
	for _, i := range d.Education {
		ids = append(ids, i.ID)
	}
	for _, i := range d.Skills {
		ids = append(ids, i.ID)
	}
	for _, i := range d.Languages {
		ids = append(ids, i.ID)
	}
	for _, i := range d.Interests {
		ids = append(ids, i.ID)
	}
	for _, i := range d.Awards {
		ids = append(ids, i.ID)
	}
	for _, i := range d.Socials {
		ids = append(ids, i.ID)
	}
	for _, c := range d.CustomSections {
		ids = append(ids, c.ID)
		for _, f := range c.Fields {
			ids = append(ids, f.ID)
		}
	}
	return ids
}
