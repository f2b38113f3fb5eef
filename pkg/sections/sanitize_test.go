package sections

import (
	"testing"

	"github.com/nikogura/resume-builder/pkg/resume"
	"github.com/stretchr/testify/assert"
)

func docWithCustom(ids ...string) (doc *resume.Data) {
	doc = resume.Empty()
	for _, id := range ids {
		doc.CustomSections = append(doc.CustomSections, resume.CustomSection{ID: id, Title: id})
	}
	resume.Repair(doc)
	return doc
}

func TestSanitizeRemovesExactlyStaleKeys(t *testing.T) {
	doc := docWithCustom("a", "b")

	tests := []struct {
		name  string
		order []string
		want  []string
	}{
		{
			name:  "stale custom key in the middle",
			order: []string{"experience", "custom:zzz", "custom:a", "skills"},
			want:  []string{"experience", "custom:a", "skills"},
		},
		{
			name:  "all valid",
			order: []string{"custom:b", "awards", "custom:a"},
			want:  []string{"custom:b", "awards", "custom:a"},
		},
		{
			name:  "stale at the end",
			order: []string{"summary", "custom:gone"},
			want:  []string{"summary"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.order, doc, false))
		})
	}
}

func TestSanitizeEmptyFallsBack(t *testing.T) {
	doc := docWithCustom("a")
	doc.Skills = append(doc.Skills, resume.SkillItem{ID: "s1", Name: "Go", Keywords: []string{}})

	assert.Equal(t, []string{"skills", "custom:a"}, Sanitize([]string{"custom:gone"}, doc, false))
	assert.Equal(t, []string{}, Sanitize([]string{"custom:gone"}, doc, true))
}

func TestDeriveFollowsRegistryOrder(t *testing.T) {
	doc := docWithCustom("x", "y")
	doc.Awards = append(doc.Awards, resume.AwardItem{ID: "a1"})
	doc.Experience = append(doc.Experience, resume.ExperienceItem{ID: "e1", Highlights: []string{}})
	doc.Personal.Summary = "hi"

	assert.Equal(t, []string{"summary", "experience", "awards", "custom:x", "custom:y"}, Derive(doc))
	assert.Equal(t, []string{}, Derive(nil))
}

func TestCanonical(t *testing.T) {
	doc := docWithCustom("x", "y")

	got := Canonical([]string{"custom:y", "skills", "custom:x", "summary", "custom:gone"}, doc)
	assert.Equal(t, []string{"summary", "skills", "custom:x", "custom:y"}, got)
}
