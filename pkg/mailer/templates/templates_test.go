package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDailyQuestion(t *testing.T) {
	data := NewDailyQuestionData("https://mirum.example", "Food For Thought", "This fruit keeps doctors away")
	subject, text, html, err := Render(DailyQuestion, data)
	require.NoError(t, err)

	assert.Equal(t, "[Mirum] Question of the Day", subject)
	assert.Contains(t, text, "Food For Thought")
	assert.Contains(t, text, "This fruit keeps doctors away")
	assert.Contains(t, html, `href="https://mirum.example"`)
}

func TestRenderPointsAwarded(t *testing.T) {
	data := NewPointsAwardedData("https://mirum.example", "Ryan", 5, "chores")
	subject, text, _, err := Render(PointsAwarded, data)
	require.NoError(t, err)

	assert.Contains(t, subject, "5")
	assert.Contains(t, text, "Ryan")
	assert.Contains(t, text, "chores")
}

func TestRenderPointsUpdated(t *testing.T) {
	data := NewPointsUpdatedData("https://mirum.example", "Sam", 3, 7, "dishes")
	_, text, html, err := Render(PointsUpdated, data)
	require.NoError(t, err)

	assert.Contains(t, text, "3")
	assert.Contains(t, text, "7")
	assert.Contains(t, text, "Sam")
	assert.Contains(t, html, "Sam")
}

func TestRenderProposalTemplates(t *testing.T) {
	created := NewProposalCreatedData("https://mirum.example", "Alice", 10, "fixed the sink")
	subject, text, _, err := Render(ProposalCreated, created)
	require.NoError(t, err)
	assert.Contains(t, subject, "Alice")
	assert.Contains(t, text, "fixed the sink")

	approved := NewProposalApprovedData("https://mirum.example", "Alice", 10, "fixed the sink")
	subject, text, _, err = Render(ProposalApproved, approved)
	require.NoError(t, err)
	assert.Contains(t, subject, "approved")
	assert.Contains(t, text, "Alice")
	assert.Contains(t, text, "10")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("no_such_template", nil)
	assert.Error(t, err)
}
