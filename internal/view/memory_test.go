package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/aqscreen/internal/form"
	"github.com/harrison/aqscreen/internal/result"
)

func TestMemory_InitialState(t *testing.T) {
	m := NewMemory(form.NewRegistry())

	assert.True(t, m.FormVisible())
	assert.False(t, m.ResultsVisible())
	assert.False(t, m.SubmitEnabled())
	assert.Empty(t, m.Answers())
}

func TestMemory_SelectValidatesOptions(t *testing.T) {
	m := NewMemory(form.NewRegistry())

	require.NoError(t, m.Select("A1_Score", "1"))
	v, ok := m.Choice("A1_Score")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	err := m.Select("A1_Score", "2")
	assert.True(t, errors.Is(err, form.ErrInvalidOption))

	err = m.Select("age", "1")
	assert.Error(t, err)

	err = m.Select("A11_Score", "1")
	assert.True(t, errors.Is(err, form.ErrUnknownField))
}

func TestMemory_SetDispatchesOnKind(t *testing.T) {
	m := NewMemory(form.NewRegistry())

	require.NoError(t, m.Set("A2_Score", "0"))
	require.NoError(t, m.Set("relation", "Self"))
	assert.Equal(t, map[string]string{"A2_Score": "0", "relation": "Self"}, m.Answers())

	require.NoError(t, m.Set("A2_Score", ""))
	_, ok := m.Choice("A2_Score")
	assert.False(t, ok)

	assert.Error(t, m.SetText("A3_Score", "1"))
}

func TestMemory_ClearFields(t *testing.T) {
	m := NewMemory(form.NewRegistry())
	require.NoError(t, m.Select("A1_Score", "1"))
	require.NoError(t, m.SetText("age", "22"))

	m.ClearFields()

	assert.Empty(t, m.Answers())
	assert.Equal(t, "", m.Text("age"))
}

func TestMemory_FormAndResultsAreExclusive(t *testing.T) {
	m := NewMemory(form.NewRegistry())

	m.ShowResults(result.Presentation{CategoryLabel: "x"})
	assert.False(t, m.FormVisible())
	assert.True(t, m.ResultsVisible())
	r, ok := m.Result()
	assert.True(t, ok)
	assert.Equal(t, "x", r.CategoryLabel)

	m.ShowForm()
	assert.True(t, m.FormVisible())
	assert.False(t, m.ResultsVisible())
}

func TestMemory_RecordsSlots(t *testing.T) {
	m := NewMemory(form.NewRegistry())

	m.SetProgress(50, "9/18 fields completed")
	m.SetLoading(true)
	m.ShowError("first")
	m.ShowError("second")

	pct, text := m.Progress()
	assert.Equal(t, 50.0, pct)
	assert.Equal(t, "9/18 fields completed", text)
	assert.True(t, m.Loading())
	assert.Equal(t, []string{"first", "second"}, m.Errors())
}
