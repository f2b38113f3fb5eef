package resume

import (
	"strings"
)

// DefaultCustomTitle is used when a custom section is created without a title.
const DefaultCustomTitle = "Custom Section"

// NewCustomSection returns a list-mode custom section with a fresh id.
func NewCustomSection(title string) (section CustomSection) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultCustomTitle
	}
	section = CustomSection{
		ID:     NewID(),
		Title:  title,
		Mode:   ModeList,
		Items:  []string{},
		Fields: []CustomField{},
	}
	return section
}

// SetMode switches the authoritative representation. The target representation is
// rebuilt from the current one when it has content, otherwise from whichever cache
// has data, so switching back and forth never loses what the user typed.
func (c *CustomSection) SetMode(target Mode) {
	if !target.Valid() {
		return
	}
	if !c.Mode.Valid() {
		c.Mode = ModeList
	}
	if c.Mode == target {
		return
	}

	source := c.Mode
	if !c.hasContent(source) {
		source = ""
		for _, candidate := range fallbackOrder(target) {
			if candidate != target && c.hasContent(candidate) {
				source = candidate
				break
			}
		}
	}

	if source != "" {
		lines := c.lines(source)
		switch target {
		case ModeList:
			c.Items = lines
		case ModeFields:
			c.Fields = fieldsFromLines(lines)
		case ModeText:
			c.Text = strings.Join(lines, "\n")
		}
	}

	c.Items = nonNil(c.Items)
	if c.Fields == nil {
		c.Fields = []CustomField{}
	}
	c.Mode = target
}

// Lines returns the content of the authoritative representation as display lines.
func (c *CustomSection) Lines() (lines []string) {
	mode := c.Mode
	if !mode.Valid() {
		mode = ModeList
	}
	lines = c.lines(mode)
	return lines
}

// fallbackOrder lists where to repopulate a target from when the current mode is empty.
func fallbackOrder(target Mode) (order []Mode) {
	switch target {
	case ModeList:
		order = []Mode{ModeText, ModeFields}
	case ModeFields:
		order = []Mode{ModeText, ModeList}
	default:
		order = []Mode{ModeFields, ModeList}
	}
	return order
}

func (c *CustomSection) hasContent(m Mode) (ok bool) {
	switch m {
	case ModeList:
		for _, item := range c.Items {
			if strings.TrimSpace(item) != "" {
				return true
			}
		}
	case ModeFields:
		for _, f := range c.Fields {
			if strings.TrimSpace(f.Label) != "" || strings.TrimSpace(f.Value) != "" {
				return true
			}
		}
	case ModeText:
		ok = strings.TrimSpace(c.Text) != ""
	}
	return ok
}

func (c *CustomSection) lines(m Mode) (lines []string) {
	lines = []string{}
	switch m {
	case ModeList:
		for _, item := range c.Items {
			item = strings.TrimSpace(item)
			if item != "" {
				lines = append(lines, item)
			}
		}
	case ModeFields:
		for _, f := range c.Fields {
			label := strings.TrimSpace(f.Label)
			value := strings.TrimSpace(f.Value)
			switch {
			case label != "" && value != "":
				lines = append(lines, label+": "+value)
			case label != "":
				lines = append(lines, label)
			case value != "":
				lines = append(lines, value)
			}
		}
	case ModeText:
		lines = SplitLines(c.Text)
	}
	return lines
}

func fieldsFromLines(lines []string) (fields []CustomField) {
	fields = make([]CustomField, 0, len(lines))
	for _, line := range lines {
		label, value, found := strings.Cut(line, ":")
		if !found {
			fields = append(fields, CustomField{ID: NewID(), Label: strings.TrimSpace(line)})
			continue
		}
		fields = append(fields, CustomField{
			ID:    NewID(),
			Label: strings.TrimSpace(label),
			Value: strings.TrimSpace(value),
		})
	}
	return fields
}
