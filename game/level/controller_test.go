package level

import (
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/zippy/engine/core"
)

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

type fakeText map[string]string

func (f fakeText) LoadText(name string) (string, error) {
	text, ok := f[name]
	if !ok {
		return "", fmt.Errorf("`%s`: %w", name, core.ErrNotFound)
	}
	return text, nil
}

func twoLevels() fakeText {
	return fakeText{
		"Content/Levels/Level0.csv": "PlayerStart,100|200\n\nSprite,Texture|a.png\r\n",
		"Content/Levels/Level1.csv": "PlayerStart|0|0\n",
	}
}

func TestControllerWalksLevels(t *testing.T) {
	c, err := NewController(twoLevels(), 2)
	require.NoError(t, err)

	l, err := c.CurrentLevel()
	require.NoError(t, err)
	assert.Equal(t, "Content/Levels/Level0.csv", l.Name)
	assert.Len(t, l.Records, 2)

	c.ChangeLevel()
	assert.Equal(t, 1, c.CurrentLevelIndex())
	assert.False(t, c.GameComplete())

	c.ChangeLevel()
	assert.True(t, c.GameComplete())
	_, err = c.CurrentLevel()
	assert.ErrorIs(t, err, core.ErrIndexOutOfRange)

	c.Reset()
	assert.Equal(t, 0, c.CurrentLevelIndex())
}

func TestControllerFailsOnMissingLevel(t *testing.T) {
	_, err := NewController(twoLevels(), 3)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = NewController(twoLevels(), 0)
	assert.ErrorIs(t, err, core.ErrInvalidValue)
}

func TestControllerReload(t *testing.T) {
	src := twoLevels()
	c, err := NewController(src, 2)
	require.NoError(t, err)

	src["Content/Levels/Level0.csv"] = "PlayerStart,1|1\n"
	ok, err := c.Reload("Content/Levels/Level0.csv")
	require.NoError(t, err)
	assert.True(t, ok)
	l, _ := c.CurrentLevel()
	assert.Len(t, l.Records, 1)

	ok, err = c.Reload("Content/Shaders/VertexShader.txt")
	require.NoError(t, err)
	assert.False(t, ok)
}
