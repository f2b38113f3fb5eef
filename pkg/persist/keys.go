package persist

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Key names one logical entry: the key it is written to and the key older
// versions wrote it to.
type Key struct {
	Current string
	Legacy  string
}

//nolint:gochecknoglobals // Storage layout
var (
	DocumentKey        = Key{Current: "resume-builder.document", Legacy: "resumeData"}
	SectionsKey        = Key{Current: "resume-builder.active-sections", Legacy: "activeSections"}
	ThemeKey           = Key{Current: "resume-builder.theme", Legacy: "theme"}
	TemplateKey        = Key{Current: "resume-builder.template", Legacy: "selectedTemplate"}
	CustomTemplatesKey = Key{Current: "resume-builder.custom-templates", Legacy: "customTemplates"}
)

// ErrCorrupt marks a stored value that is not valid JSON.
var ErrCorrupt = errors.New("corrupt stored value")

// Read returns the value of k, trying the current key before the legacy one.
func Read(ctx context.Context, b Backend, k Key) (value []byte, found bool, err error) {
	for _, key := range []string{k.Current, k.Legacy} {
		if key == "" {
			continue
		}
		value, err = b.Get(ctx, key)
		if errors.Is(err, ErrNotFound) {
			err = nil
			continue
		}
		if err != nil {
			return value, found, err
		}
		found = true
		return value, found, err
	}
	return value, found, err
}

// ReadJSON decodes the value of k into v. A stored value that is not valid JSON
// yields an error wrapping ErrCorrupt.
func ReadJSON(ctx context.Context, b Backend, k Key, v any) (found bool, err error) {
	var raw []byte
	raw, found, err = Read(ctx, b, k)
	if err != nil || !found {
		return found, err
	}

	if !gjson.ValidBytes(raw) {
		found = false
		err = errors.Wrapf(ErrCorrupt, "%s", k.Current)
		return found, err
	}

	err = json.Unmarshal(raw, v)
	if err != nil {
		found = false
		err = errors.Wrapf(ErrCorrupt, "%s: %s", k.Current, err)
		return found, err
	}
	return found, err
}

// WriteJSON encodes v and writes it to the current key of k.
func WriteJSON(ctx context.Context, b Backend, k Key, v any) (err error) {
	var data []byte
	data, err = json.Marshal(v)
	if err != nil {
		err = errors.Wrapf(err, "failed to encode %s", k.Current)
		return err
	}

	err = b.Set(ctx, k.Current, data)
	if err != nil {
		err = errors.Wrapf(err, "failed to store %s", k.Current)
		return err
	}
	return err
}

// Remove deletes k under both its keys, so a removed entry never reads back
// through its legacy alias.
func Remove(ctx context.Context, b Backend, k Key) (err error) {
	for _, key := range []string{k.Current, k.Legacy} {
		if key == "" {
			continue
		}
		err = b.Delete(ctx, key)
		if err != nil {
			err = errors.Wrapf(err, "failed to delete %s", key)
			return err
		}
	}
	return err
}
