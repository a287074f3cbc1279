package labels

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelSet_Names(t *testing.T) {
	set := LabelSet{"wontfix": "ffffff", "bug": "d73a4a", "docs": "0075ca"}
	assert.Equal(t, []string{"bug", "docs", "wontfix"}, set.Names())
	assert.Empty(t, LabelSet{}.Names())
}

func TestLabelSet_Labels(t *testing.T) {
	set := LabelSet{"docs": "0075ca", "bug": "d73a4a"}
	assert.Equal(t, []Label{
		{Name: "bug", Color: "d73a4a"},
		{Name: "docs", Color: "0075ca"},
	}, set.Labels())
}

func TestLabelSet_Equal(t *testing.T) {
	a := LabelSet{"bug": "D73A4A"}
	assert.True(t, a.Equal(LabelSet{"bug": "d73a4a"}))
	assert.False(t, a.Equal(LabelSet{"bug": "000000"}))
	assert.False(t, a.Equal(LabelSet{"feature": "d73a4a"}))
	assert.False(t, a.Equal(LabelSet{}))
}

func TestLabelSet_Clone(t *testing.T) {
	original := LabelSet{"bug": "d73a4a"}
	clone := original.Clone()
	clone["docs"] = "0075ca"

	assert.Len(t, original, 1)
	assert.Len(t, clone, 2)
}

func TestValidColor(t *testing.T) {
	assert.True(t, ValidColor("ff0000"))
	assert.True(t, ValidColor("ABCdef"))
	assert.False(t, ValidColor("#ff0000"))
	assert.False(t, ValidColor("fff"))
	assert.False(t, ValidColor("gg0000"))
	assert.False(t, ValidColor(""))
}

func TestResult(t *testing.T) {
	ok := Result{Repository: "o/r", Operation: Create("bug", "ff0000")}
	assert.True(t, ok.Succeeded())
	assert.Equal(t, OutcomeSuccess, ok.Outcome())
	assert.Empty(t, ok.Detail())

	failed := Result{Repository: "o/r", Operation: Delete("bug"), Err: errors.New("boom")}
	assert.False(t, failed.Succeeded())
	assert.Equal(t, OutcomeFailure, failed.Outcome())
	assert.Equal(t, "boom", failed.Detail())
}

func TestSummarize(t *testing.T) {
	results := []Result{
		{Repository: "o/a", Operation: Create("bug", "ff0000")},
		{Repository: "o/a", Operation: Update("docs", "0075ca")},
		{Repository: "o/a", Operation: Delete("old"), Err: errors.New("not found")},
		{Repository: "o/c", Operation: Delete("old")},
		{Repository: "o/x", Operation: Operation{Kind: OperationFetch}, Err: errors.New("offline")},
	}

	summary := Summarize([]string{"o/a", "o/b", "o/c"}, results)

	assert.Equal(t, []Summary{
		{Repository: "o/a", Created: 1, Updated: 1, Failed: 1},
		{Repository: "o/b"},
		{Repository: "o/c", Deleted: 1},
		{Repository: "o/x", Failed: 1},
	}, summary)
}
