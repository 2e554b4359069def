package portfolio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadinessReady(t *testing.T) {
	r := NewReadiness("a", "b")
	var got []ReadinessState
	r.Subscribe(func(s ReadinessState) { got = append(got, s) })

	r.Report("a", nil)
	r.Report("unknown", errors.New("ignored"))
	assert.Equal(t, Loading, r.State())
	assert.Empty(t, got)

	r.Report("b", nil)
	assert.Equal(t, Ready, r.State())
	assert.Equal(t, []ReadinessState{Ready}, got)

	r.Report("b", errors.New("late"))
	assert.Equal(t, Ready, r.State(), "settles once")
	assert.Len(t, got, 1)
}

func TestReadinessDegraded(t *testing.T) {
	r := NewReadiness("a", "b", "c")
	r.Report("b", errors.New("404"))
	r.Report("a", nil)
	r.Report("c", errors.New("timeout"))

	assert.Equal(t, Degraded, r.State())
	assert.Equal(t, []string{"b", "c"}, r.Failed())
	assert.Equal(t, "degraded", r.State().String())

	late := 0
	r.Subscribe(func(s ReadinessState) {
		late++
		assert.Equal(t, Degraded, s)
	})
	assert.Equal(t, 1, late, "late subscribers run immediately")
}

func TestReadinessWithoutKeys(t *testing.T) {
	assert.Equal(t, Ready, NewReadiness().State())
}
