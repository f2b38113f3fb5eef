package renderer

import (
	"strings"

	"github.com/nikogura/resume-builder/pkg/locale"
	"github.com/nikogura/resume-builder/pkg/resume"
)

// Markdown renders doc section by section, in the order of active and limited to
// it. The personal header is always rendered. Every heading and connector goes
// through tr, so the output never contains a raw translation key.
func Markdown(doc *resume.Data, active []string, tr locale.Translator) (out string) {
	doc = resume.Normalize(doc)
	w := &mdWriter{tr: tr}

	w.personal(doc.Personal)

	for _, key := range active {
		if id, ok := resume.ParseCustomKey(key); ok {
			idx := doc.FindCustomSection(id)
			if idx >= 0 {
				w.custom(doc.CustomSections[idx])
			}
			continue
		}

		switch key {
		case resume.SectionSummary:
			w.summary(doc.Personal.Summary)
		case resume.SectionExperience:
			w.experience(doc.Experience)
		case resume.SectionProjects:
			w.projects(doc.Projects)
		case resume.SectionEducation:
			w.education(doc.Education)
		case resume.SectionSkills:
			w.skills(doc.Skills)
		case resume.SectionLanguages:
			w.languages(doc.Languages)
		case resume.SectionInterests:
			w.interests(doc.Interests)
		case resume.SectionAwards:
			w.awards(doc.Awards)
		case resume.SectionSocials:
			w.socials(doc.Socials)
		}
	}

	out = strings.TrimRight(w.b.String(), "\n") + "\n"
	return out
}

type mdWriter struct {
	b  strings.Builder
	tr locale.Translator
}

func (w *mdWriter) t(key string) (text string) {
	text = locale.T(w.tr, key)
	return text
}

func (w *mdWriter) line(parts ...string) {
	for _, p := range parts {
		w.b.WriteString(p)
	}
	w.b.WriteString("\n")
}

func (w *mdWriter) blank() {
	w.b.WriteString("\n")
}

func (w *mdWriter) heading(section string) {
	w.line("## ", w.t(locale.SectionKey(section)))
	w.blank()
}

// join concatenates the non-blank parts with the translated separator.
func (w *mdWriter) join(parts ...string) (joined string) {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	joined = strings.Join(kept, w.t(locale.KeySeparator))
	return joined
}

// dates renders " (start - end)" with an open end shown as present.
func (w *mdWriter) dates(start, end string) (rendered string) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" && end == "" {
		return rendered
	}
	var span string
	switch {
	case start == "":
		span = end
	case end == "":
		span = start + w.t(locale.KeyDateRange) + w.t(locale.KeyPresent)
	default:
		span = start + w.t(locale.KeyDateRange) + end
	}
	rendered = w.parens(span)
	return rendered
}

func (w *mdWriter) parens(text string) (rendered string) {
	if strings.TrimSpace(text) == "" {
		return rendered
	}
	rendered = w.t(locale.KeyOpenParen) + text + w.t(locale.KeyCloseParen)
	return rendered
}

func (w *mdWriter) entry(header, dates string) {
	if header == "" && dates == "" {
		return
	}
	w.line("### ", header, dates)
}

func (w *mdWriter) paragraph(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	w.line(text)
	w.blank()
}

func (w *mdWriter) bullets(items []string) {
	wrote := false
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			w.line("- ", item)
			wrote = true
		}
	}
	if wrote {
		w.blank()
	}
}

func (w *mdWriter) labelled(label, value string) (rendered string) {
	label, value = strings.TrimSpace(label), strings.TrimSpace(value)
	switch {
	case label == "":
		rendered = value
	case value == "":
		rendered = "**" + label + "**"
	default:
		rendered = "**" + label + "**" + w.t(locale.KeyColon) + value
	}
	return rendered
}

func (w *mdWriter) personal(p resume.Personal) {
	if name := strings.TrimSpace(p.FullName); name != "" {
		w.line("# ", name)
		w.blank()
	}
	w.paragraph(p.Title)
	if contact := w.join(p.Email, p.Phone, p.Location, p.Website); contact != "" {
		w.paragraph(contact)
	}

	extras := make([]string, 0, len(p.Extras))
	for _, e := range p.Extras {
		if rendered := w.labelled(e.Label, e.Value); rendered != "" {
			extras = append(extras, rendered)
		}
	}
	w.bullets(extras)
}

func (w *mdWriter) summary(summary string) {
	if strings.TrimSpace(summary) == "" {
		return
	}
	w.heading(resume.SectionSummary)
	w.paragraph(summary)
}

func (w *mdWriter) experience(items []resume.ExperienceItem) {
	if len(items) == 0 {
		return
	}
	w.heading(resume.SectionExperience)
	for _, it := range items {
		w.entry(w.join(it.Company, it.Role), w.dates(it.StartDate, it.EndDate))
		if loc := strings.TrimSpace(it.Location); loc != "" {
			w.line(loc)
		}
		w.blank()
		w.bullets(it.Highlights)
	}
}

func (w *mdWriter) projects(items []resume.ProjectItem) {
	if len(items) == 0 {
		return
	}
	w.heading(resume.SectionProjects)
	for _, it := range items {
		w.entry(w.join(it.Name, it.Role), w.dates(it.StartDate, it.EndDate))
		if link := strings.TrimSpace(it.Link); link != "" {
			w.line("<", link, ">")
		}
		w.blank()
		w.paragraph(it.Description)
		w.bullets(it.Highlights)
	}
}

func (w *mdWriter) education(items []resume.EducationItem) {
	if len(items) == 0 {
		return
	}
	w.heading(resume.SectionEducation)
	for _, it := range items {
		w.entry(w.join(it.School, it.Degree, it.Field), w.dates(it.StartDate, it.EndDate))
		w.blank()
		w.bullets(it.Highlights)
	}
}

func (w *mdWriter) skills(items []resume.SkillItem) {
	if len(items) == 0 {
		return
	}
	w.heading(resume.SectionSkills)
	lines := make([]string, 0, len(items))
	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if name != "" {
			name = "**" + name + "**"
		}
		rendered := name + w.parens(it.Level)
		if keywords := w.keywords(it.Keywords); keywords != "" {
			if rendered != "" {
				rendered += w.t(locale.KeyColon)
			}
			rendered += keywords
		}
		lines = append(lines, rendered)
	}
	w.bullets(lines)
}

func (w *mdWriter) languages(items []resume.LanguageItem) {
	if len(items) == 0 {
		return
	}
	w.heading(resume.SectionLanguages)
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, strings.TrimSpace(it.Name)+w.parens(it.Level))
	}
	w.bullets(lines)
}

func (w *mdWriter) interests(items []resume.InterestItem) {
	if len(items) == 0 {
		return
	}
	w.heading(resume.SectionInterests)
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, w.labelled(it.Name, w.keywords(it.Keywords)))
	}
	w.bullets(lines)
}

func (w *mdWriter) awards(items []resume.AwardItem) {
	if len(items) == 0 {
		return
	}
	w.heading(resume.SectionAwards)
	for _, it := range items {
		w.entry(w.join(it.Title, it.Issuer), w.parens(strings.TrimSpace(it.Date)))
		w.blank()
		w.paragraph(it.Description)
	}
}

func (w *mdWriter) socials(items []resume.SocialItem) {
	if len(items) == 0 {
		return
	}
	w.heading(resume.SectionSocials)
	lines := make([]string, 0, len(items))
	for _, it := range items {
		target := strings.TrimSpace(it.URL)
		if user := strings.TrimSpace(it.Username); user != "" && target != "" {
			target = "[" + user + "](" + target + ")"
		} else if target == "" {
			target = user
		}
		lines = append(lines, w.labelled(it.Network, target))
	}
	w.bullets(lines)
}

func (w *mdWriter) custom(section resume.CustomSection) {
	title := strings.TrimSpace(section.Title)
	if title == "" {
		title = w.t(locale.KeyUntitled)
	}
	w.line("## ", title)
	w.blank()

	switch section.Mode {
	case resume.ModeFields:
		lines := make([]string, 0, len(section.Fields))
		for _, f := range section.Fields {
			lines = append(lines, w.labelled(f.Label, f.Value))
		}
		w.bullets(lines)
	case resume.ModeText:
		for _, para := range strings.Split(section.Text, "\n\n") {
			w.paragraph(para)
		}
	default:
		w.bullets(section.Items)
	}
}

// keywords joins the non-blank keywords with the locale's list separator.
func (w *mdWriter) keywords(keywords []string) (joined string) {
	kept := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			kept = append(kept, k)
		}
	}
	joined = strings.Join(kept, w.t(locale.KeyListSep))
	return joined
}
