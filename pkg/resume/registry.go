package resume

import (
	"strings"
)

// Standard section keys.
const (
	SectionSummary    = "summary"
	SectionExperience = "experience"
	SectionProjects   = "projects"
	SectionEducation  = "education"
	SectionSkills     = "skills"
	SectionLanguages  = "languages"
	SectionInterests  = "interests"
	SectionAwards     = "awards"
	SectionSocials    = "socials"

	// SectionPersonal is the header block. It is always rendered and never part of the active order.
	SectionPersonal = "personal"

	// CustomKeyPrefix prefixes the active-section key of a custom section.
	CustomKeyPrefix = "custom:"
)

// Section describes a standard section.
type Section struct {
	Key string
	// Title is the English heading used when no translation is available.
	Title      string
	createItem func() Item
	count      func(*Data) int
	appendItem func(*Data, Item) bool
	removeItem func(*Data, string) bool
}

// CreateItem returns a blank item with a fresh id, or nil for sections without items.
func (s Section) CreateItem() (item Item) {
	if s.createItem == nil {
		return item
	}
	item = s.createItem()
	return item
}

// HasItems reports whether the section is backed by an item list.
func (s Section) HasItems() (ok bool) {
	ok = s.createItem != nil
	return ok
}

// Count returns how many entries the section holds in d. The summary counts as one
// entry when it is not blank.
func (s Section) Count(d *Data) (n int) {
	if d == nil {
		return n
	}
	n = s.count(d)
	return n
}

//nolint:gochecknoglobals // Static section registry
var registry = []Section{
	{
		Key:   SectionSummary,
		Title: "Summary",
		count: func(d *Data) int {
			if strings.TrimSpace(d.Personal.Summary) != "" {
				return 1
			}
			return 0
		},
	},
	{
		Key:   SectionExperience,
		Title: "Work Experience",
		createItem: func() Item {
			return ExperienceItem{ID: NewID(), Highlights: []string{}}
		},
		count: func(d *Data) int { return len(d.Experience) },
		appendItem: func(d *Data, item Item) bool {
			v, ok := item.(ExperienceItem)
			if ok {
				d.Experience = append(d.Experience, v)
			}
			return ok
		},
		removeItem: func(d *Data, id string) bool {
			n := len(d.Experience)
			d.Experience = removeByID(d.Experience, id)
			return len(d.Experience) != n
		},
	},
	{
		Key:   SectionProjects,
		Title: "Projects",
		createItem: func() Item {
			return ProjectItem{ID: NewID(), Highlights: []string{}}
		},
		count: func(d *Data) int { return len(d.Projects) },
		appendItem: func(d *Data, item Item) bool {
			v, ok := item.(ProjectItem)
			if ok {
				d.Projects = append(d.Projects, v)
			}
			return ok
		},
		removeItem: func(d *Data, id string) bool {
			n := len(d.Projects)
			d.Projects = removeByID(d.Projects, id)
			return len(d.Projects) != n
		},
	},
	{
		Key:   SectionEducation,
		Title: "Education",
		createItem: func() Item {
			return EducationItem{ID: NewID(), Highlights: []string{}}
		},
		count: func(d *Data) int { return len(d.Education) },
		appendItem: func(d *Data, item Item) bool {
			v, ok := item.(EducationItem)
			if ok {
				d.Education = append(d.Education, v)
			}
			return ok
		},
		removeItem: func(d *Data, id string) bool {
			n := len(d.Education)
			d.Education = removeByID(d.Education, id)
			return len(d.Education) != n
		},
	},
	{
		Key:   SectionSkills,
		Title: "Skills",
		createItem: func() Item {
			return SkillItem{ID: NewID(), Keywords: []string{}}
		},
		count: func(d *Data) int { return len(d.Skills) },
		appendItem: func(d *Data, item Item) bool {
			v, ok := item.(SkillItem)
			if ok {
				d.Skills = append(d.Skills, v)
			}
			return ok
		},
		removeItem: func(d *Data, id string) bool {
			n := len(d.Skills)
			d.Skills = removeByID(d.Skills, id)
			return len(d.Skills) != n
		},
	},
	{
		Key:   SectionLanguages,
		Title: "Languages",
		createItem: func() Item {
			return LanguageItem{ID: NewID()}
		},
		count: func(d *Data) int { return len(d.Languages) },
		appendItem: func(d *Data, item Item) bool {
			v, ok := item.(LanguageItem)
			if ok {
				d.Languages = append(d.Languages, v)
			}
			return ok
		},
		removeItem: func(d *Data, id string) bool {
			n := len(d.Languages)
			d.Languages = removeByID(d.Languages, id)
			return len(d.Languages) != n
		},
	},
	{
		Key:   SectionInterests,
		Title: "Interests",
		createItem: func() Item {
			return InterestItem{ID: NewID(), Keywords: []string{}}
		},
		count: func(d *Data) int { return len(d.Interests) },
		appendItem: func(d *Data, item Item) bool {
			v, ok := item.(InterestItem)
			if ok {
				d.Interests = append(d.Interests, v)
			}
			return ok
		},
		removeItem: func(d *Data, id string) bool {
			n := len(d.Interests)
			d.Interests = removeByID(d.Interests, id)
			return len(d.Interests) != n
		},
	},
	{
		Key:   SectionAwards,
		Title: "Awards",
		createItem: func() Item {
			return AwardItem{ID: NewID()}
		},
		count: func(d *Data) int { return len(d.Awards) },
		appendItem: func(d *Data, item Item) bool {
			v, ok := item.(AwardItem)
			if ok {
				d.Awards = append(d.Awards, v)
			}
			return ok
		},
		removeItem: func(d *Data, id string) bool {
			n := len(d.Awards)
			d.Awards = removeByID(d.Awards, id)
			return len(d.Awards) != n
		},
	},
	{
		Key:   SectionSocials,
		Title: "Social Profiles",
		createItem: func() Item {
			return SocialItem{ID: NewID()}
		},
		count: func(d *Data) int { return len(d.Socials) },
		appendItem: func(d *Data, item Item) bool {
			v, ok := item.(SocialItem)
			if ok {
				d.Socials = append(d.Socials, v)
			}
			return ok
		},
		removeItem: func(d *Data, id string) bool {
			n := len(d.Socials)
			d.Socials = removeByID(d.Socials, id)
			return len(d.Socials) != n
		},
	},
}

// Lookup returns the standard section registered under key.
func Lookup(key string) (section Section, ok bool) {
	for _, s := range registry {
		if s.Key == key {
			section = s
			ok = true
			return section, ok
		}
	}
	return section, ok
}

// IsStandard reports whether key names a standard section.
func IsStandard(key string) (ok bool) {
	_, ok = Lookup(key)
	return ok
}

// StandardKeys returns the standard section keys in canonical order.
func StandardKeys() (keys []string) {
	keys = make([]string, len(registry))
	for i, s := range registry {
		keys[i] = s.Key
	}
	return keys
}

// CustomKey returns the active-section key for a custom section id.
func CustomKey(id string) (key string) {
	key = CustomKeyPrefix + id
	return key
}

// ParseCustomKey extracts the custom section id from an active-section key.
func ParseCustomKey(key string) (id string, ok bool) {
	id, ok = strings.CutPrefix(key, CustomKeyPrefix)
	if id == "" {
		ok = false
	}
	return id, ok
}

// AddItem appends a blank item to the section and returns it. It returns nil for
// unknown keys and sections without items.
func AddItem(d *Data, key string) (item Item) {
	section, ok := Lookup(key)
	if !ok || !section.HasItems() || d == nil {
		return item
	}
	item = section.CreateItem()
	section.appendItem(d, item)
	return item
}

// RemoveItem deletes the item with the given id from the section.
func RemoveItem(d *Data, key, id string) (removed bool) {
	section, ok := Lookup(key)
	if !ok || !section.HasItems() || d == nil {
		return removed
	}
	removed = section.removeItem(d, id)
	return removed
}

func removeByID[T Item](items []T, id string) (out []T) {
	out = make([]T, 0, len(items))
	for _, item := range items {
		if item.ItemID() != id {
			out = append(out, item)
		}
	}
	return out
}
