package resume

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a fresh unique identifier for items, extras, fields and custom sections.
func NewID() (id string) {
	id = uuid.NewString()
	return id
}

// idSet tracks ids already claimed while repairing one document.
type idSet map[string]struct{}

// claim returns id when it is non-blank and unseen, otherwise a fresh id.
func (s idSet) claim(id string) (claimed string) {
	claimed = id
	if strings.TrimSpace(claimed) != "" {
		if _, taken := s[claimed]; !taken {
			s[claimed] = struct{}{}
			return claimed
		}
	}

	for {
		claimed = NewID()
		if _, taken := s[claimed]; !taken {
			s[claimed] = struct{}{}
			return claimed
		}
	}
}
