package portfolio

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-folio/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	rec.AddClass(ElementHeader, ClassHeaderTransition)
	rec.AddClass(ElementHeader, ClassHeaderTransition)
	rec.Show("techSection")
	rec.SetText(ElementCountdown, "5...")

	assert.True(t, rec.HasClass(ElementHeader, ClassHeaderTransition))
	assert.True(t, rec.Visible("techSection"))
	assert.Equal(t, "5...", rec.Text(ElementCountdown))

	rec.RemoveClass(ElementHeader, ClassHeaderTransition)
	rec.Hide("techSection")
	assert.False(t, rec.HasClass(ElementHeader, ClassHeaderTransition))
	assert.False(t, rec.Visible("techSection"))
	assert.Len(t, rec.Mutations(), 6)
	assert.Equal(t, "add header headerTransition", rec.Mutations()[0].String())
}

func TestDesktopPresenterTitle(t *testing.T) {
	regions, err := RegionsFromConfig(config.Default())
	require.NoError(t, err)

	var titles []string
	p := NewDesktopPresenter("folio", func(title string) { titles = append(titles, title) }, regions)

	p.AddClass(ElementHeader, ClassHeaderTransition)
	assert.Empty(t, titles, "class changes do not touch the title")

	p.Show("projects")
	p.SetText(ElementCountdown, "5...")
	p.Hide("aboutMeSection")
	p.Hide("projects")

	assert.Equal(t, []string{
		"folio | projects",
		"folio | projects | 5...",
		"folio | projects | 5...",
		"folio",
	}, titles)
}
