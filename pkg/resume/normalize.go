package resume

import (
	"encoding/json"
	"sort"
	"strings"
)

// Options controls Normalize.
type Options struct {
	// Clone forces a deep, independent copy of the input. When false a *Data
	// input is repaired in place and returned.
	Clone bool
}

// Option mutates Options.
type Option func(*Options)

// WithClone sets whether Normalize must return a copy that shares nothing with its input.
func WithClone(clone bool) (opt Option) {
	opt = func(o *Options) {
		o.Clone = clone
	}
	return opt
}

// Normalize turns an arbitrary value claiming to be a resume into a document that
// satisfies every structural invariant. It never panics and never returns nil.
//
// Accepted inputs are *Data, Data, map[string]any (decoded JSON), []byte and
// json.RawMessage. Anything else yields an empty document.
func Normalize(raw any, opts ...Option) (data *Data) {
	options := Options{Clone: true}
	for _, opt := range opts {
		opt(&options)
	}

	switch v := raw.(type) {
	case *Data:
		if v == nil {
			data = Empty()
			return data
		}
		data = v
		if options.Clone {
			data = v.Clone()
		}
	case Data:
		data = v.Clone()
	case map[string]any:
		data = decode(v)
	case json.RawMessage:
		data = decodeBytes(v)
	case []byte:
		data = decodeBytes(v)
	default:
		data = &Data{}
	}

	Repair(data)
	return data
}

// Repair enforces the document invariants on a draft in place: every list is
// non-nil, every id is present and unique, and custom sections carry a valid mode.
func Repair(draft *Data) {
	if draft == nil {
		return
	}

	ids := idSet{}

	if draft.Personal.Extras == nil {
		draft.Personal.Extras = []PersonalExtra{}
	}
	for i := range draft.Personal.Extras {
		draft.Personal.Extras[i].ID = ids.claim(draft.Personal.Extras[i].ID)
	}

	if draft.Experience == nil {
		draft.Experience = []ExperienceItem{}
	}
	for i := range draft.Experience {
		item := &draft.Experience[i]
		item.ID = ids.claim(item.ID)
		item.Highlights = nonNil(item.Highlights)
	}

	if draft.Projects == nil {
		draft.Projects = []ProjectItem{}
	}
	for i := range draft.Projects {
		item := &draft.Projects[i]
		item.ID = ids.claim(item.ID)
		item.Highlights = nonNil(item.Highlights)
	}

	if draft.Education == nil {
		draft.Education = []EducationItem{}
	}
	for i := range draft.Education {
		item := &draft.Education[i]
		item.ID = ids.claim(item.ID)
		item.Highlights = nonNil(item.Highlights)
	}

	if draft.Skills == nil {
		draft.Skills = []SkillItem{}
	}
	for i := range draft.Skills {
		item := &draft.Skills[i]
		item.ID = ids.claim(item.ID)
		item.Keywords = nonNil(item.Keywords)
	}

	if draft.Languages == nil {
		draft.Languages = []LanguageItem{}
	}
	for i := range draft.Languages {
		draft.Languages[i].ID = ids.claim(draft.Languages[i].ID)
	}

	if draft.Interests == nil {
		draft.Interests = []InterestItem{}
	}
	for i := range draft.Interests {
		item := &draft.Interests[i]
		item.ID = ids.claim(item.ID)
		item.Keywords = nonNil(item.Keywords)
	}

	if draft.Awards == nil {
		draft.Awards = []AwardItem{}
	}
	for i := range draft.Awards {
		draft.Awards[i].ID = ids.claim(draft.Awards[i].ID)
	}

	if draft.Socials == nil {
		draft.Socials = []SocialItem{}
	}
	for i := range draft.Socials {
		draft.Socials[i].ID = ids.claim(draft.Socials[i].ID)
	}

	if draft.CustomSections == nil {
		draft.CustomSections = []CustomSection{}
	}
	for i := range draft.CustomSections {
		section := &draft.CustomSections[i]
		section.ID = ids.claim(section.ID)
		if !section.Mode.Valid() {
			section.Mode = ModeList
		}
		section.Items = nonNil(section.Items)
		if section.Fields == nil {
			section.Fields = []CustomField{}
		}
		for j := range section.Fields {
			section.Fields[j].ID = ids.claim(section.Fields[j].ID)
		}
	}
}

func nonNil(in []string) (out []string) {
	out = in
	if out == nil {
		out = []string{}
	}
	return out
}

func decodeBytes(raw []byte) (data *Data) {
	var parsed any
	err := json.Unmarshal(raw, &parsed)
	if err != nil {
		data = &Data{}
		return data
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		data = &Data{}
		return data
	}

	data = decode(obj)
	return data
}

// decode builds a document from loosely typed JSON, coercing wrong types to empty values.
func decode(obj map[string]any) (data *Data) {
	data = &Data{
		Personal: decodePersonal(obj["personal"]),
	}

	for _, entry := range asList(obj["experience"]) {
		m, ok := asRecord(entry, "company")
		if !ok {
			continue
		}
		data.Experience = append(data.Experience, ExperienceItem{
			ID:         asString(m["id"]),
			Company:    asString(m["company"]),
			Role:       asString(m["role"]),
			Location:   asString(m["location"]),
			StartDate:  asString(m["startDate"]),
			EndDate:    asString(m["endDate"]),
			Highlights: asStrings(m["highlights"]),
		})
	}

	for _, entry := range asList(obj["projects"]) {
		m, ok := asRecord(entry, "name")
		if !ok {
			continue
		}
		data.Projects = append(data.Projects, ProjectItem{
			ID:          asString(m["id"]),
			Name:        asString(m["name"]),
			Role:        asString(m["role"]),
			Link:        asString(m["link"]),
			StartDate:   asString(m["startDate"]),
			EndDate:     asString(m["endDate"]),
			Description: asString(m["description"]),
			Highlights:  asStrings(m["highlights"]),
		})
	}

	for _, entry := range asList(obj["education"]) {
		m, ok := asRecord(entry, "school")
		if !ok {
			continue
		}
		data.Education = append(data.Education, EducationItem{
			ID:         asString(m["id"]),
			School:     asString(m["school"]),
			Degree:     asString(m["degree"]),
			Field:      asString(m["field"]),
			StartDate:  asString(m["startDate"]),
			EndDate:    asString(m["endDate"]),
			Highlights: asStrings(m["highlights"]),
		})
	}

	for _, entry := range asList(obj["skills"]) {
		m, ok := asRecord(entry, "name")
		if !ok {
			continue
		}
		data.Skills = append(data.Skills, SkillItem{
			ID:       asString(m["id"]),
			Name:     asString(m["name"]),
			Level:    asString(m["level"]),
			Keywords: asStrings(m["keywords"]),
		})
	}

	for _, entry := range asList(obj["languages"]) {
		m, ok := asRecord(entry, "name")
		if !ok {
			continue
		}
		data.Languages = append(data.Languages, LanguageItem{
			ID:    asString(m["id"]),
			Name:  asString(m["name"]),
			Level: asString(m["level"]),
		})
	}

	for _, entry := range asList(obj["interests"]) {
		m, ok := asRecord(entry, "name")
		if !ok {
			continue
		}
		data.Interests = append(data.Interests, InterestItem{
			ID:       asString(m["id"]),
			Name:     asString(m["name"]),
			Keywords: asStrings(m["keywords"]),
		})
	}

	for _, entry := range asList(obj["awards"]) {
		m, ok := asRecord(entry, "title")
		if !ok {
			continue
		}
		data.Awards = append(data.Awards, AwardItem{
			ID:          asString(m["id"]),
			Title:       asString(m["title"]),
			Issuer:      asString(m["issuer"]),
			Date:        asString(m["date"]),
			Description: asString(m["description"]),
		})
	}

	for _, entry := range asList(obj["socials"]) {
		m, ok := asRecord(entry, "url")
		if !ok {
			continue
		}
		data.Socials = append(data.Socials, SocialItem{
			ID:       asString(m["id"]),
			Network:  asString(m["network"]),
			Username: asString(m["username"]),
			URL:      asString(m["url"]),
		})
	}

	for _, entry := range asList(obj["customSections"]) {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		data.CustomSections = append(data.CustomSections, CustomSection{
			ID:     asString(m["id"]),
			Title:  asString(m["title"]),
			Mode:   Mode(asString(m["mode"])),
			Items:  asStrings(m["items"]),
			Fields: decodeFields(m["fields"]),
			Text:   asString(m["text"]),
		})
	}

	return data
}

func decodePersonal(v any) (p Personal) {
	m, ok := v.(map[string]any)
	if !ok {
		return p
	}

	p = Personal{
		FullName: asString(m["fullName"]),
		Title:    asString(m["title"]),
		Email:    asString(m["email"]),
		Phone:    asString(m["phone"]),
		Location: asString(m["location"]),
		Website:  asString(m["website"]),
		Summary:  asString(m["summary"]),
	}

	// older documents stored the name under "name"
	if p.FullName == "" {
		p.FullName = asString(m["name"])
	}

	switch extras := m["extras"].(type) {
	case []any:
		for _, entry := range extras {
			em, isMap := entry.(map[string]any)
			if !isMap {
				continue
			}
			p.Extras = append(p.Extras, PersonalExtra{
				ID:    asString(em["id"]),
				Label: asString(em["label"]),
				Value: asString(em["value"]),
			})
		}
	case map[string]any:
		for _, label := range sortedKeys(extras) {
			p.Extras = append(p.Extras, PersonalExtra{
				Label: label,
				Value: asString(extras[label]),
			})
		}
	}

	return p
}

func decodeFields(v any) (fields []CustomField) {
	switch raw := v.(type) {
	case []any:
		for _, entry := range raw {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			fields = append(fields, CustomField{
				ID:    asString(m["id"]),
				Label: asString(m["label"]),
				Value: asString(m["value"]),
			})
		}
	case map[string]any:
		for _, label := range sortedKeys(raw) {
			fields = append(fields, CustomField{
				Label: label,
				Value: asString(raw[label]),
			})
		}
	}
	return fields
}

// asRecord accepts an object, or a bare string which becomes the record's primary field.
func asRecord(v any, primary string) (m map[string]any, ok bool) {
	switch entry := v.(type) {
	case map[string]any:
		m = entry
		ok = true
	case string:
		if strings.TrimSpace(entry) == "" {
			return m, ok
		}
		m = map[string]any{primary: entry}
		ok = true
	}
	return m, ok
}

func asList(v any) (list []any) {
	list, _ = v.([]any)
	return list
}

func asString(v any) (s string) {
	s, _ = v.(string)
	return s
}

// asStrings keeps the string elements of a list. A bare string is split on newlines.
func asStrings(v any) (out []string) {
	out = []string{}
	switch raw := v.(type) {
	case []any:
		for _, entry := range raw {
			if s, ok := entry.(string); ok {
				out = append(out, s)
			}
		}
	case []string:
		out = append(out, raw...)
	case string:
		out = SplitLines(raw)
	}
	return out
}

// SplitLines splits text into trimmed, non-empty lines.
func SplitLines(text string) (lines []string) {
	lines = []string{}
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func sortedKeys(m map[string]any) (keys []string) {
	keys = make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
