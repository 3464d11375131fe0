package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeKeyIsCanonical(t *testing.T) {
	tests := []struct {
		scope ScopeRef
		key   string
	}{
		{JudgeContestantScope("j1", "p1", "c1"), "c1:p1:j1"},
		{ContestantCategoryScope("p1", "c1"), "c1:p1"},
		{CategoryScope("c1"), "c1"},
		{ContestScope("k1"), "k1"},
		{EventScope("e1"), "e1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.key, tt.scope.Key(), tt.scope.Kind)
		assert.Equal(t, string(tt.scope.Kind)+":"+tt.key, tt.scope.String())
	}

	// parent ids filled in by resolution must not change the key
	resolved := CategoryScope("c1")
	resolved.ContestID = "k1"
	resolved.EventID = "e1"
	assert.Equal(t, "c1", resolved.Key())
}

func TestScopeValidate(t *testing.T) {
	require.NoError(t, JudgeContestantScope("j1", "p1", "c1").Validate())

	err := JudgeContestantScope("", "p1", " ").Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "judge_id")
	assert.Contains(t, err.Error(), "category_id")

	assert.Error(t, ContestScope("").Validate())
	assert.Error(t, ScopeRef{Kind: "GALAXY", CategoryID: "c1"}.Validate())
}

func TestParseScopeKind(t *testing.T) {
	k, err := ParseScopeKind("contest")
	require.NoError(t, err)
	assert.Equal(t, ScopeContest, k)

	_, err = ParseScopeKind("round")
	assert.Error(t, err)
}

func TestScopeDepthOrdering(t *testing.T) {
	for i := 1; i < len(ScopeKinds); i++ {
		assert.Greater(t, ScopeKinds[i].Depth(), ScopeKinds[i-1].Depth())
	}
	assert.Equal(t, -1, ScopeKind("nope").Depth())
}

func TestScopeFor(t *testing.T) {
	s, err := ScopeFor(ScopeEvent, "e1")
	require.NoError(t, err)
	assert.Equal(t, EventScope("e1"), s)

	_, err = ScopeFor(ScopeJudgeContestant, "x")
	assert.Error(t, err)
}
