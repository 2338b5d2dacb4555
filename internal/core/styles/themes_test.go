package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in      string
		want    Theme
		wantErr bool
	}{
		{in: "dark", want: ThemeDark},
		{in: "LIGHT", want: ThemeLight},
		{in: "  Dark ", want: ThemeDark},
		{in: "solarized", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTheme(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTheme_ToggleTwiceRestores(t *testing.T) {
	for _, start := range []Theme{ThemeDark, ThemeLight} {
		once := start.Toggle()
		assert.NotEqual(t, start, once)
		assert.True(t, once.Valid())
		assert.Equal(t, start, once.Toggle())
	}
}

func TestTheme_ToggleUnknownFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTheme, Theme("neon").Toggle())
}

func TestTheme_Icon(t *testing.T) {
	assert.Equal(t, IconSun, ThemeDark.Icon())
	assert.Equal(t, IconMoon, ThemeLight.Icon())
}

func TestSetTheme_ExactlyOneActive(t *testing.T) {
	t.Cleanup(func() { SetTheme(DefaultTheme) })

	SetTheme(ThemeLight)
	assert.Equal(t, ThemeLight, Current())
	assert.Equal(t, palettes[ThemeLight].Primary, ColorPrimary)
	assert.Equal(t, "github", ChromaStyle())

	SetTheme(ThemeDark)
	assert.Equal(t, ThemeDark, Current())
	assert.Equal(t, palettes[ThemeDark].Primary, ColorPrimary)
	assert.Equal(t, "monokai", ChromaStyle())

	SetTheme("bogus")
	assert.Equal(t, DefaultTheme, Current())
}

func TestGlamourStyle_FollowsTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme(DefaultTheme) })

	SetTheme(ThemeDark)
	dark := GlamourStyle()
	require.NotNil(t, dark.H2.Color)
	assert.Equal(t, "#7aa2f7", *dark.H2.Color)
	assert.Equal(t, "monokai", dark.CodeBlock.Theme)
	assert.Nil(t, dark.CodeBlock.Chroma)

	SetTheme(ThemeLight)
	light := GlamourStyle()
	require.NotNil(t, light.H2.Color)
	assert.Equal(t, "#2e7de9", *light.H2.Color)
	assert.Equal(t, "github", light.CodeBlock.Theme)
}

func TestGlamourStyle_DoesNotMutateBase(t *testing.T) {
	t.Cleanup(func() { SetTheme(DefaultTheme) })

	SetTheme(ThemeDark)
	_ = GlamourStyle()

	assert.NotNil(t, palettes[ThemeDark].Glamour.CodeBlock.Chroma, "base style must keep its chroma block")
}
