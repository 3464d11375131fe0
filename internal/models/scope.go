package models

import (
	"fmt"
	"strings"
)

// ScopeKind identifies the level of the judging hierarchy being certified
type ScopeKind string

const (
	ScopeJudgeContestant    ScopeKind = "JUDGE_CONTESTANT"
	ScopeContestantCategory ScopeKind = "CONTESTANT_CATEGORY"
	ScopeCategory           ScopeKind = "CATEGORY"
	ScopeContest            ScopeKind = "CONTEST"
	ScopeEvent              ScopeKind = "EVENT"
)

// ScopeKinds lists every kind from leaf to root.
var ScopeKinds = []ScopeKind{
	ScopeJudgeContestant,
	ScopeContestantCategory,
	ScopeCategory,
	ScopeContest,
	ScopeEvent,
}

// ParseScopeKind accepts a kind name in any case
func ParseScopeKind(s string) (ScopeKind, error) {
	k := ScopeKind(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range ScopeKinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown scope type %q", s)
}

// Depth is 0 for the leaf kind and grows towards the event.
func (k ScopeKind) Depth() int {
	for i, known := range ScopeKinds {
		if k == known {
			return i
		}
	}
	return -1
}

// ScopeRef identifies what is being certified. Only the ids relevant to
// Kind are required; the parent ids (contest, event) are filled in when
// the scope is resolved against storage.
type ScopeRef struct {
	Kind         ScopeKind `json:"kind"`
	EventID      string    `json:"event_id,omitempty"`
	ContestID    string    `json:"contest_id,omitempty"`
	CategoryID   string    `json:"category_id,omitempty"`
	ContestantID string    `json:"contestant_id,omitempty"`
	JudgeID      string    `json:"judge_id,omitempty"`
}

func JudgeContestantScope(judgeID, contestantID, categoryID string) ScopeRef {
	return ScopeRef{Kind: ScopeJudgeContestant, JudgeID: judgeID, ContestantID: contestantID, CategoryID: categoryID}
}

func ContestantCategoryScope(contestantID, categoryID string) ScopeRef {
	return ScopeRef{Kind: ScopeContestantCategory, ContestantID: contestantID, CategoryID: categoryID}
}

func CategoryScope(categoryID string) ScopeRef {
	return ScopeRef{Kind: ScopeCategory, CategoryID: categoryID}
}

func ContestScope(contestID string) ScopeRef {
	return ScopeRef{Kind: ScopeContest, ContestID: contestID}
}

func EventScope(eventID string) ScopeRef {
	return ScopeRef{Kind: ScopeEvent, EventID: eventID}
}

// ScopeFor builds a scope of the given kind from a single id. Only kinds
// addressed by one id are accepted.
func ScopeFor(kind ScopeKind, id string) (ScopeRef, error) {
	switch kind {
	case ScopeCategory:
		return CategoryScope(id), nil
	case ScopeContest:
		return ContestScope(id), nil
	case ScopeEvent:
		return EventScope(id), nil
	default:
		return ScopeRef{}, fmt.Errorf("scope type %s needs more than one id", kind)
	}
}

// Validate checks that the ids required by the kind are present.
func (s ScopeRef) Validate() error {
	var missing []string
	need := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}

	switch s.Kind {
	case ScopeJudgeContestant:
		need("judge_id", s.JudgeID)
		need("contestant_id", s.ContestantID)
		need("category_id", s.CategoryID)
	case ScopeContestantCategory:
		need("contestant_id", s.ContestantID)
		need("category_id", s.CategoryID)
	case ScopeCategory:
		need("category_id", s.CategoryID)
	case ScopeContest:
		need("contest_id", s.ContestID)
	case ScopeEvent:
		need("event_id", s.EventID)
	default:
		return fmt.Errorf("unknown scope type %q", s.Kind)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%s scope requires %s", s.Kind, strings.Join(missing, ", "))
	}
	return nil
}

// Key is the canonical identifier stored in certifications.scope_id.
// Together with Kind it uniquely identifies the scope.
func (s ScopeRef) Key() string {
	switch s.Kind {
	case ScopeJudgeContestant:
		return s.CategoryID + ":" + s.ContestantID + ":" + s.JudgeID
	case ScopeContestantCategory:
		return s.CategoryID + ":" + s.ContestantID
	case ScopeCategory:
		return s.CategoryID
	case ScopeContest:
		return s.ContestID
	case ScopeEvent:
		return s.EventID
	}
	return ""
}

func (s ScopeRef) String() string {
	return string(s.Kind) + ":" + s.Key()
}
