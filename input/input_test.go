package input

import (
	"testing"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromKey(t *testing.T) {
	for name, want := range map[string]maze.Direction{
		"ArrowUp":    maze.Up,
		"ArrowRight": maze.Right,
		"ArrowDown":  maze.Down,
		"ArrowLeft":  maze.Left,
	} {
		got, err := FromKey(name)
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}

	_, err := FromKey("Enter")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestFromSwipe(t *testing.T) {
	cases := []struct {
		name  string
		swipe Swipe
		want  maze.Direction
	}{
		{"right", Swipe{DX: 40, DY: 5}, maze.Right},
		{"left", Swipe{DX: -40, DY: 39}, maze.Left},
		{"down", Swipe{DX: 3, DY: 12}, maze.Down},
		{"up", Swipe{DX: -3, DY: -12}, maze.Up},
		{"tie goes vertical", Swipe{DX: 10, DY: 10}, maze.Down},
		{"no displacement", Swipe{}, maze.Up},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FromSwipe(tc.swipe))
		})
	}
}

func TestResolve(t *testing.T) {
	d, err := Resolve(Request{Direction: "left"})
	require.NoError(t, err)
	assert.Equal(t, maze.Left, d)

	d, err = Resolve(Request{Key: "ArrowDown"})
	require.NoError(t, err)
	assert.Equal(t, maze.Down, d)

	d, err = Resolve(Request{Swipe: &Swipe{DX: 100}})
	require.NoError(t, err)
	assert.Equal(t, maze.Right, d)

	_, err = Resolve(Request{})
	assert.ErrorIs(t, err, ErrEmptyRequest)

	_, err = Resolve(Request{Direction: "up", Key: "ArrowUp"})
	assert.ErrorIs(t, err, ErrAmbiguousRequest)

	_, err = Resolve(Request{Direction: "sideways"})
	assert.ErrorIs(t, err, maze.ErrInvalidDirection)
}
