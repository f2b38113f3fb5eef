// Package prefs holds the user's presentation preferences: colour theme, the
// selected template and any custom templates they have saved.
package prefs

import (
	"context"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nikogura/resume-builder/pkg/persist"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Theme is the colour scheme of the editor.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() (ok bool) {
	ok = t == ThemeLight || t == ThemeDark
	return ok
}

// Template is a named preview style.
type Template struct {
	ID     string `json:"id"`
	Name   string `json:"name" validate:"required"`
	Base   string `json:"base,omitempty"`
	Accent string `json:"accent,omitempty" validate:"omitempty,hexcolor"`
	Font   string `json:"font,omitempty"`
}

// DefaultTemplateID is selected when nothing else is.
const DefaultTemplateID = "classic"

// BuiltinTemplates lists the templates that ship with the builder.
func BuiltinTemplates() (templates []Template) {
	templates = []Template{
		{ID: "classic", Name: "Classic", Accent: "#1f2937", Font: "serif"},
		{ID: "modern", Name: "Modern", Accent: "#2563eb", Font: "sans-serif"},
		{ID: "compact", Name: "Compact", Accent: "#047857", Font: "sans-serif"},
	}
	return templates
}

func isBuiltin(id string) (ok bool) {
	ok = slices.ContainsFunc(BuiltinTemplates(), func(t Template) bool { return t.ID == id })
	return ok
}

// Store reads and writes preferences through a persist.Backend.
type Store struct {
	backend  persist.Backend
	validate *validator.Validate
	mu       sync.Mutex
	logger   *zap.Logger
}

// NewStore creates a preference store over backend.
func NewStore(backend persist.Backend, logger *zap.Logger) (s *Store) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s = &Store{
		backend:  backend,
		validate: validator.New(),
		logger:   logger.With(zap.String("module", "prefs")),
	}
	return s
}

// Theme returns the stored theme, or ThemeLight when none is stored or the stored
// value is unusable.
func (s *Store) Theme(ctx context.Context) (theme Theme) {
	var stored string
	found, err := persist.ReadJSON(ctx, s.backend, persist.ThemeKey, &stored)
	if err != nil {
		s.logger.Warn("ignoring stored theme", zap.Error(err))
	}
	theme = Theme(stored)
	if !found || !theme.Valid() {
		theme = ThemeLight
	}
	return theme
}

// SetTheme stores theme.
func (s *Store) SetTheme(ctx context.Context, theme Theme) (err error) {
	if !theme.Valid() {
		err = errors.Errorf("unknown theme %q (use light or dark)", theme)
		return err
	}
	err = persist.WriteJSON(ctx, s.backend, persist.ThemeKey, string(theme))
	return err
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *Store) ToggleTheme(ctx context.Context) (theme Theme, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	theme = ThemeDark
	if s.Theme(ctx) == ThemeDark {
		theme = ThemeLight
	}
	err = s.SetTheme(ctx, theme)
	return theme, err
}

// TemplateID returns the selected template. A selection that no longer exists
// falls back to DefaultTemplateID.
func (s *Store) TemplateID(ctx context.Context) (id string) {
	var stored string
	found, err := persist.ReadJSON(ctx, s.backend, persist.TemplateKey, &stored)
	if err != nil {
		s.logger.Warn("ignoring stored template", zap.Error(err))
	}
	if !found || stored == "" || !s.exists(ctx, stored) {
		id = DefaultTemplateID
		return id
	}
	id = stored
	return id
}

// SetTemplateID selects a builtin or custom template.
func (s *Store) SetTemplateID(ctx context.Context, id string) (err error) {
	if !s.exists(ctx, id) {
		err = errors.Errorf("unknown template %q", id)
		return err
	}
	err = persist.WriteJSON(ctx, s.backend, persist.TemplateKey, id)
	return err
}

// Templates lists builtin templates followed by custom ones.
func (s *Store) Templates(ctx context.Context) (templates []Template) {
	templates = append(BuiltinTemplates(), s.CustomTemplates(ctx)...)
	return templates
}

// CustomTemplates returns the saved custom templates, never nil.
func (s *Store) CustomTemplates(ctx context.Context) (templates []Template) {
	found, err := persist.ReadJSON(ctx, s.backend, persist.CustomTemplatesKey, &templates)
	if err != nil {
		s.logger.Warn("ignoring stored custom templates", zap.Error(err))
	}
	if !found || templates == nil {
		templates = []Template{}
	}
	return templates
}

// SaveCustomTemplate adds tpl, or replaces the custom template with the same id.
// A blank id is assigned.
func (s *Store) SaveCustomTemplate(ctx context.Context, tpl Template) (saved Template, err error) {
	err = s.validate.Struct(tpl)
	if err != nil {
		err = errors.Wrap(err, "invalid template")
		return saved, err
	}
	if tpl.Base != "" && !isBuiltin(tpl.Base) {
		err = errors.Errorf("unknown base template %q", tpl.Base)
		return saved, err
	}
	if isBuiltin(tpl.ID) {
		err = errors.Errorf("template id %q is reserved", tpl.ID)
		return saved, err
	}
	if tpl.ID == "" {
		tpl.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	templates := s.CustomTemplates(ctx)
	idx := slices.IndexFunc(templates, func(t Template) bool { return t.ID == tpl.ID })
	if idx >= 0 {
		templates[idx] = tpl
	} else {
		templates = append(templates, tpl)
	}

	err = persist.WriteJSON(ctx, s.backend, persist.CustomTemplatesKey, templates)
	if err != nil {
		return saved, err
	}
	saved = tpl
	return saved, err
}

// DeleteCustomTemplate removes a custom template. The stored list is removed
// entirely once empty, and a selection pointing at the deleted template reverts
// to the default.
func (s *Store) DeleteCustomTemplate(ctx context.Context, id string) (deleted bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	templates := s.CustomTemplates(ctx)
	remaining := slices.DeleteFunc(slices.Clone(templates), func(t Template) bool { return t.ID == id })
	if len(remaining) == len(templates) {
		return deleted, err
	}

	if len(remaining) == 0 {
		err = persist.Remove(ctx, s.backend, persist.CustomTemplatesKey)
	} else {
		err = persist.WriteJSON(ctx, s.backend, persist.CustomTemplatesKey, remaining)
	}
	if err != nil {
		return deleted, err
	}
	deleted = true

	var selected string
	found, _ := persist.ReadJSON(ctx, s.backend, persist.TemplateKey, &selected)
	if found && selected == id {
		err = persist.WriteJSON(ctx, s.backend, persist.TemplateKey, DefaultTemplateID)
	}
	return deleted, err
}

func (s *Store) exists(ctx context.Context, id string) (ok bool) {
	if isBuiltin(id) {
		ok = true
		return ok
	}
	ok = slices.ContainsFunc(s.CustomTemplates(ctx), func(t Template) bool { return t.ID == id })
	return ok
}
