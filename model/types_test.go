package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRanking_DocIDs(t *testing.T) {
	r := Ranking{{DocID: "a", Score: 2.0}, {DocID: "b", Score: 1.0}}
	assert.Equal(t, []string{"a", "b"}, r.DocIDs())
	assert.Empty(t, Ranking(nil).DocIDs())
}

func TestRanking_Truncate(t *testing.T) {
	r := Ranking{{DocID: "a"}, {DocID: "b"}, {DocID: "c"}}

	tests := []struct {
		name string
		k    int
		want int
	}{
		{name: "zero", k: 0, want: 0},
		{name: "negative", k: -1, want: 0},
		{name: "partial", k: 2, want: 2},
		{name: "exact", k: 3, want: 3},
		{name: "beyond", k: 10, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, r.Truncate(tt.k), tt.want)
		})
	}
}

func TestAnswer_CitedDocIDs(t *testing.T) {
	a := Answer{
		Claim: "claim",
		Citations: []Citation{
			{DocID: "doc1", Quote: "q1"},
			{DocID: "", Quote: "orphan quote"},
			{DocID: "doc2", Quote: "q2"},
			{DocID: "doc1", Quote: "q3"},
		},
	}
	assert.Equal(t, []string{"doc1", "doc2"}, a.CitedDocIDs())

	empty := Answer{}
	assert.Empty(t, empty.CitedDocIDs())
	assert.Equal(t, "", empty.Text())
}
