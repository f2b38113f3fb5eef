// Package renderer exports a resume document as JSON, Markdown or YAML.
package renderer

import (
	"encoding/json"
	"strings"

	"github.com/nikogura/resume-builder/pkg/locale"
	"github.com/nikogura/resume-builder/pkg/resume"
	"github.com/pkg/errors"
	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"
)

// Format is an export format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatYAML     Format = "yaml"
)

// ParseFormat accepts a format name or a common file extension.
func ParseFormat(name string) (format Format, err error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "json":
		format = FormatJSON
	case "md", "markdown":
		format = FormatMarkdown
	case "yaml", "yml":
		format = FormatYAML
	default:
		err = errors.Errorf("unknown export format %q (use json, md or yaml)", name)
	}
	return format, err
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() (ext string) {
	ext = "." + string(f)
	return ext
}

//nolint:gochecknoglobals // Output style
var jsonStyle = &pretty.Options{Width: 80, Prefix: "", Indent: "  ", SortKeys: false}

// JSON returns the normalized document, pretty-printed.
func JSON(doc *resume.Data) (out []byte, err error) {
	var raw []byte
	raw, err = json.Marshal(resume.Normalize(doc))
	if err != nil {
		err = errors.Wrap(err, "failed to encode document")
		return out, err
	}
	out = pretty.PrettyOptions(raw, jsonStyle)
	return out, err
}

// YAML returns the normalized document as YAML.
func YAML(doc *resume.Data) (out []byte, err error) {
	out, err = yaml.Marshal(resume.Normalize(doc))
	if err != nil {
		err = errors.Wrap(err, "failed to encode document as yaml")
		return out, err
	}
	return out, err
}

// Export renders doc in the requested format. Only Markdown honours active.
func Export(doc *resume.Data, active []string, format Format, tr locale.Translator) (out []byte, err error) {
	switch format {
	case FormatJSON:
		out, err = JSON(doc)
	case FormatMarkdown:
		out = []byte(Markdown(doc, active, tr))
	case FormatYAML:
		out, err = YAML(doc)
	default:
		err = errors.Errorf("unknown export format %q", format)
	}
	return out, err
}
