package sections

import (
	"github.com/nikogura/resume-builder/pkg/resume"
)

// Known reports whether key names a standard section or a custom section present in doc.
func Known(key string, doc *resume.Data) (ok bool) {
	if resume.IsStandard(key) {
		ok = true
		return ok
	}
	id, isCustom := resume.ParseCustomKey(key)
	if !isCustom || doc == nil {
		return ok
	}
	ok = doc.FindCustomSection(id) >= 0
	return ok
}

// Sanitize drops keys that reference unknown sections or removed custom sections,
// and repeated keys. When nothing is left and allowEmpty is false, the order
// derived from the document is returned instead.
func Sanitize(order []string, doc *resume.Data, allowEmpty bool) (clean []string) {
	clean = make([]string, 0, len(order))
	seen := map[string]bool{}
	for _, key := range order {
		if seen[key] || !Known(key, doc) {
			continue
		}
		seen[key] = true
		clean = append(clean, key)
	}

	if len(clean) == 0 && !allowEmpty {
		clean = Derive(doc)
	}
	return clean
}

// Derive returns the default order for doc: every standard section holding at least
// one entry in registry order, followed by custom sections in document order.
func Derive(doc *resume.Data) (order []string) {
	order = []string{}
	if doc == nil {
		return order
	}

	for _, key := range resume.StandardKeys() {
		section, _ := resume.Lookup(key)
		if section.Count(doc) > 0 {
			order = append(order, key)
		}
	}
	for _, custom := range doc.CustomSections {
		order = append(order, resume.CustomKey(custom.ID))
	}
	return order
}

// Canonical sorts the keys of order into registry order, standard sections first and
// custom sections in document order. Unknown keys are dropped.
func Canonical(order []string, doc *resume.Data) (canonical []string) {
	present := map[string]bool{}
	for _, key := range Sanitize(order, doc, true) {
		present[key] = true
	}

	canonical = make([]string, 0, len(present))
	for _, key := range resume.StandardKeys() {
		if present[key] {
			canonical = append(canonical, key)
		}
	}
	if doc != nil {
		for _, custom := range doc.CustomSections {
			key := resume.CustomKey(custom.ID)
			if present[key] {
				canonical = append(canonical, key)
			}
		}
	}
	return canonical
}
