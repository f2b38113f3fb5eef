// Package locale translates the fixed strings used in exports.
//
// Lookups never surface a raw key: a missing translation falls back to the
// built-in English text, and an unknown key to a title-cased form of its last
// segment.
package locale

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Translator looks up the text for a key.
type Translator interface {
	Translate(key string) (text string, ok bool)
}

// Keys used by the exporters.
const (
	KeySeparator  = "export.separator"
	KeyDateRange  = "export.dateRange"
	KeyOpenParen  = "export.openParen"
	KeyCloseParen = "export.closeParen"
	KeyColon      = "export.colon"
	KeyPresent    = "export.present"
	KeyUntitled   = "export.untitled"
	KeyLevel      = "export.level"
	KeyKeywords   = "export.keywords"
	KeyListSep    = "export.listSeparator"
)

// SectionKey is the translation key of a section heading.
func SectionKey(section string) (key string) {
	key = "section." + section
	return key
}

//nolint:gochecknoglobals // Built-in strings
var english = map[string]string{
	"section.personal":   "Personal",
	"section.summary":    "Summary",
	"section.experience": "Work Experience",
	"section.projects":   "Projects",
	"section.education":  "Education",
	"section.skills":     "Skills",
	"section.languages":  "Languages",
	"section.interests":  "Interests",
	"section.awards":     "Awards",
	"section.socials":    "Social Profiles",
	KeySeparator:         " ｜ ",
	KeyDateRange:         " - ",
	KeyOpenParen:         " (",
	KeyCloseParen:        ")",
	KeyColon:             ": ",
	KeyPresent:           "Present",
	KeyUntitled:          "Custom Section",
	KeyLevel:             "Level",
	KeyKeywords:          "Keywords",
	KeyListSep:           ", ",
}

//nolint:gochecknoglobals // Built-in strings
var chinese = map[string]string{
	"section.personal":   "个人信息",
	"section.summary":    "个人简介",
	"section.experience": "工作经历",
	"section.projects":   "项目经历",
	"section.education":  "教育经历",
	"section.skills":     "专业技能",
	"section.languages":  "语言能力",
	"section.interests":  "兴趣爱好",
	"section.awards":     "荣誉奖项",
	"section.socials":    "社交账号",
	KeyColon:             "：",
	KeyOpenParen:         "（",
	KeyCloseParen:        "）",
	KeyPresent:           "至今",
	KeyUntitled:          "自定义模块",
	KeyLevel:             "水平",
	KeyKeywords:          "关键词",
	KeyListSep:           "、",
}

// Catalog maps a BCP-47 language tag to its translations.
type Catalog map[string]map[string]string

// Builtin returns the catalog that ships with the builder.
func Builtin() (catalog Catalog) {
	catalog = Catalog{
		"en": clone(english),
		"zh": clone(chinese),
	}
	return catalog
}

// LoadCatalog reads a catalog from a JSON file and merges it over the built-in one.
func LoadCatalog(path string) (catalog Catalog, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read locale catalog: %s", path)
		return catalog, err
	}

	var loaded Catalog
	err = json.Unmarshal(data, &loaded)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse locale catalog: %s", path)
		return catalog, err
	}

	catalog = Builtin()
	for tag, entries := range loaded {
		if _, parseErr := language.Parse(tag); parseErr != nil {
			err = errors.Wrapf(parseErr, "invalid language tag %q in %s", tag, path)
			return catalog, err
		}
		if catalog[tag] == nil {
			catalog[tag] = map[string]string{}
		}
		for key, text := range entries {
			catalog[tag][key] = text
		}
	}

	return catalog, err
}

// Table is a Translator over one language of a catalog.
type Table struct {
	Tag     language.Tag
	entries map[string]string
}

// Translate implements Translator.
func (t *Table) Translate(key string) (text string, ok bool) {
	if t == nil {
		return text, ok
	}
	text, ok = t.entries[key]
	return text, ok
}

// New picks the catalog language that best matches preferred, falling back to
// English.
func New(catalog Catalog, preferred string) (table *Table) {
	if len(catalog) == 0 {
		catalog = Builtin()
	}

	tags := []language.Tag{language.English}
	names := []string{"en"}
	for name := range catalog {
		tag, err := language.Parse(name)
		if err != nil || name == "en" {
			continue
		}
		tags = append(tags, tag)
		names = append(names, name)
	}

	desired, _, err := language.ParseAcceptLanguage(preferred)
	if err != nil || len(desired) == 0 {
		desired = []language.Tag{language.English}
	}

	_, idx, _ := language.NewMatcher(tags).Match(desired...)
	table = &Table{
		Tag:     tags[idx],
		entries: catalog[names[idx]],
	}
	return table
}

// English returns the built-in English translator.
func English() (table *Table) {
	table = &Table{Tag: language.English, entries: english}
	return table
}

// T translates key through tr, never returning the raw key.
func T(tr Translator, key string) (text string) {
	if tr != nil {
		if translated, ok := tr.Translate(key); ok && translated != "" && translated != key {
			text = translated
			return text
		}
	}
	if fallback, ok := english[key]; ok {
		text = fallback
		return text
	}
	text = humanize(key)
	return text
}

func humanize(key string) (text string) {
	last := key
	if idx := strings.LastIndex(key, "."); idx >= 0 {
		last = key[idx+1:]
	}
	last = strings.NewReplacer("-", " ", "_", " ").Replace(last)
	text = cases.Title(language.English).String(strings.TrimSpace(last))
	return text
}

func clone(in map[string]string) (out map[string]string) {
	out = make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
