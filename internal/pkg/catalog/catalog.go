package catalog

import (
	"errors"
	"strings"
)

// Kind is the closed set of content types the platform serves. Adding a kind
// means touching every exhaustive switch over it, which is the point: the
// compiler-visible enum replaces the stringly-typed model map the API grew up
// with.
type Kind string

const (
	KindCourse     Kind = "Course"
	KindPathway    Kind = "Pathway"
	KindQuizModule Kind = "QuizModule"
	KindEvent      Kind = "Event"
	KindPodcast    Kind = "Podcast"
)

var ErrUnknownKind = errors.New("unknown content type")

// All returns every known kind in a stable order.
func All() []Kind {
	return []Kind{KindCourse, KindPathway, KindQuizModule, KindEvent, KindPodcast}
}

// AllNames returns every known kind name in a stable order.
func AllNames() []string {
	kinds := All()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names
}

// Parse maps a client-supplied type name to a Kind. Mobile clients still send
// the legacy "Quiz" alias for quiz modules.
func Parse(name string) (Kind, error) {
	switch strings.TrimSpace(name) {
	case string(KindCourse):
		return KindCourse, nil
	case string(KindPathway):
		return KindPathway, nil
	case string(KindQuizModule), "Quiz":
		return KindQuizModule, nil
	case string(KindEvent):
		return KindEvent, nil
	case string(KindPodcast):
		return KindPodcast, nil
	default:
		return "", ErrUnknownKind
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindCourse, KindPathway, KindQuizModule, KindEvent, KindPodcast:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	return string(k)
}
