package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/critic/pkg/tuitest"
)

func TestOverlay(t *testing.T) {
	bg := "aaaaaaaa\nbbbbbbbb\ncccccccc"

	got := tuitest.StripANSI(overlay(bg, "XX\nYY", 3, 1))
	assert.Equal(t, "aaaaaaaa\nbbbXXbbb\ncccYYccc", got)
}

func TestOverlay_OutsideBackground(t *testing.T) {
	got := strings.Split(tuitest.StripANSI(overlay("ab", "Z", 4, 2)), "\n")

	require.Len(t, got, 3)
	assert.Equal(t, "ab", got[0])
	assert.Equal(t, "    Z", got[2])
}

func TestOverlay_StyledBackground(t *testing.T) {
	bg := "\x1b[31mredredred\x1b[0m"

	got := tuitest.StripANSI(overlay(bg, "--", 3, 0))
	assert.Equal(t, "red--dred", got)
}

func TestCenter(t *testing.T) {
	x, y := center("abcd\nefgh", 10, 6)
	assert.Equal(t, 3, x)
	assert.Equal(t, 2, y)

	x, y = center("wide content", 4, 1)
	assert.Zero(t, x)
	assert.Zero(t, y)
}
