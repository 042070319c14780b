package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestTheme_DefaultsToLight(t *testing.T) {
	s := newTestStore(t)

	theme, err := s.Theme()

	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme)
}

func TestSetTheme_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetTheme(ThemeDark))

	theme, err := s.Theme()
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)

	// Overwrite, not append.
	require.NoError(t, s.SetTheme(ThemeLight))
	theme, err = s.Theme()
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme)
}

func TestSetTheme_RejectsUnknown(t *testing.T) {
	s := newTestStore(t)

	err := s.SetTheme("solarized")

	assert.ErrorIs(t, err, ErrUnknownTheme)
}

func TestOpen_Reopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.SetTheme(ThemeDark))
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()

	theme, err := s.Theme()
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme, "preference survives reopen")
}
