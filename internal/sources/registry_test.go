package sources

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/switchboard/internal/engine"
)

type seqIDs struct{ n int }

func (s *seqIDs) GenerateUniqueID() (string, error) {
	s.n++
	return fmt.Sprintf("src-%d", s.n), nil
}

type failingIDs struct{}

func (failingIDs) GenerateUniqueID() (string, error) { return "", errors.New("entropy exhausted") }

func TestRegistry_CreateSource(t *testing.T) {
	e := engine.New()
	r := NewRegistry(e, &seqIDs{})

	src, err := r.CreateSource("Mic/Aux", "wasapi_input_capture", true)
	require.NoError(t, err)
	require.Equal(t, "src-1", src.ID)
	require.True(t, src.Hidden)

	in, ok := e.Input("Mic/Aux")
	require.True(t, ok)
	require.True(t, in.Hidden)

	got, ok := r.GetSource("src-1")
	require.True(t, ok)
	require.Equal(t, src, got)

	byName, ok := r.GetSourceByName("Mic/Aux")
	require.True(t, ok)
	require.Equal(t, src, byName)
}

func TestRegistry_CreateSourceBackendError(t *testing.T) {
	e := engine.New()
	r := NewRegistry(e, &seqIDs{})
	_, err := r.CreateSource("Mic", "wasapi_input_capture", false)
	require.NoError(t, err)

	_, err = r.CreateSource("Mic", "wasapi_input_capture", false)
	require.ErrorIs(t, err, engine.ErrInputExists)
	require.Len(t, r.List(), 1)
}

func TestRegistry_CreateSourceIDError(t *testing.T) {
	r := NewRegistry(engine.New(), failingIDs{})

	_, err := r.CreateSource("Mic", "wasapi_input_capture", false)
	require.Error(t, err)
	require.Empty(t, r.List())
}

func TestRegistry_AdoptSourceIsIdempotent(t *testing.T) {
	r := NewRegistry(engine.New(), &seqIDs{})

	first, err := r.AdoptSource("Cam", "dshow_input", false)
	require.NoError(t, err)
	second, err := r.AdoptSource("Cam", "dshow_input", false)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Len(t, r.List(), 1)
}

func TestRegistry_RemoveSourceReleasesInput(t *testing.T) {
	e := engine.New()
	r := NewRegistry(e, &seqIDs{})
	src, err := r.CreateSource("Desktop Audio", "wasapi_output_capture", true)
	require.NoError(t, err)

	require.NoError(t, r.RemoveSource(src.ID))

	_, ok := r.GetSource(src.ID)
	require.False(t, ok)
	_, ok = e.Input("Desktop Audio")
	require.False(t, ok)

	require.ErrorIs(t, r.RemoveSource(src.ID), ErrSourceNotFound)
}

func TestRegistry_ResetKeepsBackendInputs(t *testing.T) {
	e := engine.New()
	r := NewRegistry(e, &seqIDs{})
	_, err := r.CreateSource("Mic", "wasapi_input_capture", false)
	require.NoError(t, err)

	require.NoError(t, r.Reset())

	require.Empty(t, r.List())
	_, ok := e.Input("Mic")
	require.True(t, ok)
}

func TestRegistry_ListSortedByName(t *testing.T) {
	r := NewRegistry(engine.New(), &seqIDs{})
	for _, n := range []string{"b", "c", "a"} {
		_, err := r.AdoptSource(n, "t", false)
		require.NoError(t, err)
	}

	var names []string
	for _, s := range r.List() {
		names = append(names, s.Name)
	}
	require.Equal(t, []string{"a", "b", "c"}, names)
}
