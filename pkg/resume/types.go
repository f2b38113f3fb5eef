package resume

// Data represents a complete resume document.
type Data struct {
	Personal       Personal         `json:"personal" yaml:"personal"`
	Experience     []ExperienceItem `json:"experience" yaml:"experience"`
	Projects       []ProjectItem    `json:"projects" yaml:"projects"`
	Education      []EducationItem  `json:"education" yaml:"education"`
	Skills         []SkillItem      `json:"skills" yaml:"skills"`
	Languages      []LanguageItem   `json:"languages" yaml:"languages"`
	Interests      []InterestItem   `json:"interests" yaml:"interests"`
	Awards         []AwardItem      `json:"awards" yaml:"awards"`
	Socials        []SocialItem     `json:"socials" yaml:"socials"`
	CustomSections []CustomSection  `json:"customSections" yaml:"customSections"`
}

// Personal holds contact details and the summary paragraph.
type Personal struct {
	FullName string          `json:"fullName" yaml:"fullName"`
	Title    string          `json:"title" yaml:"title"`
	Email    string          `json:"email" yaml:"email"`
	Phone    string          `json:"phone" yaml:"phone"`
	Location string          `json:"location" yaml:"location"`
	Website  string          `json:"website" yaml:"website"`
	Summary  string          `json:"summary" yaml:"summary"`
	Extras   []PersonalExtra `json:"extras" yaml:"extras"`
}

// PersonalExtra is a user-defined label/value pair shown with contact details.
type PersonalExtra struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// ExperienceItem represents a single position.
type ExperienceItem struct {
	ID         string   `json:"id" yaml:"id"`
	Company    string   `json:"company" yaml:"company"`
	Role       string   `json:"role" yaml:"role"`
	Location   string   `json:"location" yaml:"location"`
	StartDate  string   `json:"startDate" yaml:"startDate"`
	EndDate    string   `json:"endDate" yaml:"endDate"`
	Highlights []string `json:"highlights" yaml:"highlights"`
}

// ProjectItem represents a project entry.
type ProjectItem struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Role        string   `json:"role" yaml:"role"`
	Link        string   `json:"link" yaml:"link"`
	StartDate   string   `json:"startDate" yaml:"startDate"`
	EndDate     string   `json:"endDate" yaml:"endDate"`
	Description string   `json:"description" yaml:"description"`
	Highlights  []string `json:"highlights" yaml:"highlights"`
}

// EducationItem represents a degree or course of study.
type EducationItem struct {
	ID         string   `json:"id" yaml:"id"`
	School     string   `json:"school" yaml:"school"`
	Degree     string   `json:"degree" yaml:"degree"`
	Field      string   `json:"field" yaml:"field"`
	StartDate  string   `json:"startDate" yaml:"startDate"`
	EndDate    string   `json:"endDate" yaml:"endDate"`
	Highlights []string `json:"highlights" yaml:"highlights"`
}

// SkillItem represents a skill group.
type SkillItem struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Level    string   `json:"level" yaml:"level"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// LanguageItem represents a spoken language.
type LanguageItem struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Level string `json:"level" yaml:"level"`
}

// InterestItem represents a personal interest.
type InterestItem struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// AwardItem represents an award or certification.
type AwardItem struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Issuer      string `json:"issuer" yaml:"issuer"`
	Date        string `json:"date" yaml:"date"`
	Description string `json:"description" yaml:"description"`
}

// SocialItem represents a profile link.
type SocialItem struct {
	ID       string `json:"id" yaml:"id"`
	Network  string `json:"network" yaml:"network"`
	Username string `json:"username" yaml:"username"`
	URL      string `json:"url" yaml:"url"`
}

// Mode selects which representation of a custom section is authoritative.
type Mode string

const (
	// ModeList renders items as a bulleted list.
	ModeList Mode = "list"
	// ModeFields renders label/value pairs.
	ModeFields Mode = "fields"
	// ModeText renders free text.
	ModeText Mode = "text"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() (ok bool) {
	ok = m == ModeList || m == ModeFields || m == ModeText
	return ok
}

// CustomSection is a user-defined section. Only the representation selected by
// Mode is authoritative; the other two are kept as caches.
type CustomSection struct {
	ID     string        `json:"id" yaml:"id"`
	Title  string        `json:"title" yaml:"title"`
	Mode   Mode          `json:"mode" yaml:"mode"`
	Items  []string      `json:"items" yaml:"items"`
	Fields []CustomField `json:"fields" yaml:"fields"`
	Text   string        `json:"text" yaml:"text"`
}

// CustomField is a label/value pair inside a fields-mode custom section.
type CustomField struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Item is implemented by every standard section item.
type Item interface {
	ItemID() string
}

// ItemID implements Item.
func (i ExperienceItem) ItemID() string { return i.ID }

// ItemID implements Item.
func (i ProjectItem) ItemID() string { return i.ID }

// ItemID implements Item.
func (i EducationItem) ItemID() string { return i.ID }

// ItemID implements Item.
func (i SkillItem) ItemID() string { return i.ID }

// ItemID implements Item.
func (i LanguageItem) ItemID() string { return i.ID }

// ItemID implements Item.
func (i InterestItem) ItemID() string { return i.ID }

// ItemID implements Item.
func (i AwardItem) ItemID() string { return i.ID }

// ItemID implements Item.
func (i SocialItem) ItemID() string { return i.ID }

// Empty returns a normalized document with every list empty.
func Empty() (data *Data) {
	data = &Data{}
	Repair(data)
	return data
}

// FindCustomSection returns the index of the custom section with the given id, or -1.
func (d *Data) FindCustomSection(id string) (idx int) {
	for i := range d.CustomSections {
		if d.CustomSections[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the document.
func (d *Data) Clone() (clone *Data) {
	if d == nil {
		clone = Empty()
		return clone
	}

	clone = &Data{
		Personal: d.Personal,
	}
	clone.Personal.Extras = append(make([]PersonalExtra, 0, len(d.Personal.Extras)), d.Personal.Extras...)

	clone.Experience = make([]ExperienceItem, len(d.Experience))
	for i, item := range d.Experience {
		item.Highlights = cloneStrings(item.Highlights)
		clone.Experience[i] = item
	}

	clone.Projects = make([]ProjectItem, len(d.Projects))
	for i, item := range d.Projects {
		item.Highlights = cloneStrings(item.Highlights)
		clone.Projects[i] = item
	}

	clone.Education = make([]EducationItem, len(d.Education))
	for i, item := range d.Education {
		item.Highlights = cloneStrings(item.Highlights)
		clone.Education[i] = item
	}

	clone.Skills = make([]SkillItem, len(d.Skills))
	for i, item := range d.Skills {
		item.Keywords = cloneStrings(item.Keywords)
		clone.Skills[i] = item
	}

	clone.Languages = append(make([]LanguageItem, 0, len(d.Languages)), d.Languages...)

	clone.Interests = make([]InterestItem, len(d.Interests))
	for i, item := range d.Interests {
		item.Keywords = cloneStrings(item.Keywords)
		clone.Interests[i] = item
	}

	clone.Awards = append(make([]AwardItem, 0, len(d.Awards)), d.Awards...)
	clone.Socials = append(make([]SocialItem, 0, len(d.Socials)), d.Socials...)

	clone.CustomSections = make([]CustomSection, len(d.CustomSections))
	for i, section := range d.CustomSections {
		section.Items = cloneStrings(section.Items)
		section.Fields = append(make([]CustomField, 0, len(section.Fields)), section.Fields...)
		clone.CustomSections[i] = section
	}

	return clone
}

func cloneStrings(in []string) (out []string) {
	out = make([]string, len(in))
	copy(out, in)
	return out
}
