package content

import (
	"testing"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecordSplitsTagAndFields(t *testing.T) {
	rec := ParseRecord("Sprite,Texture|Background.png,Position|10.5|-20,ZOrder|1\r")

	assert.Equal(t, "Sprite", rec.Tag)
	assert.Empty(t, rec.Args)
	require.Len(t, rec.Fields, 3)
	assert.Equal(t, Field{Key: "Position", Values: []string{"10.5", "-20"}}, rec.Fields[1])

	d := rec.Data()
	p, err := d.RequireVec2("Position")
	require.NoError(t, err)
	assert.Equal(t, math.NewVec2(10.5, -20), p)

	z, err := d.Int("ZOrder", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, z)
}

func TestParseRecordTagArguments(t *testing.T) {
	rec := ParseRecord("PlayerStart|200|350")
	assert.Equal(t, "PlayerStart", rec.Tag)
	assert.Equal(t, []string{"200", "350"}, rec.Args)
}

func TestParseSkipsBlankLines(t *testing.T) {
	recs := Parse("Sprite,Texture|a.png\n\n\r\nCoin,Position|1|2\r\n")
	require.Len(t, recs, 2)
	assert.Equal(t, 1, recs[0].Line)
	assert.Equal(t, "Coin", recs[1].Tag)
	assert.Equal(t, 4, recs[1].Line)
}

func TestDataErrors(t *testing.T) {
	d := ParseRecord("Sprite,Fps|fast,Position|1").Data()

	_, err := d.RequireString("Texture")
	assert.ErrorIs(t, err, core.ErrMissingField)

	_, err = d.Float("Fps", 0)
	assert.ErrorIs(t, err, core.ErrInvalidNumber)

	_, err = d.Vec2("Position", math.Vec2{})
	assert.ErrorIs(t, err, core.ErrInvalidValue)

	v, err := d.Float("Missing", 3)
	require.NoError(t, err)
	assert.Equal(t, float32(3), v)
}

func TestReaderKeepsFirstError(t *testing.T) {
	r := ParseRecord("Sprite,Fps|x,Visible|maybe").Data().Reader()
	r.Float("Fps", 0)
	r.Bool("Visible", true)
	r.RequireString("Texture")
	assert.ErrorIs(t, r.Err(), core.ErrInvalidNumber)
}

func TestDataBoolAndColour(t *testing.T) {
	d := ParseRecord("TextDisplay,Visible|False,Colour|1|0.5|0|1").Data()
	v, err := d.Bool("Visible", true)
	require.NoError(t, err)
	assert.False(t, v)

	c, err := d.Vec4("Colour", math.NewVec4One())
	require.NoError(t, err)
	assert.Equal(t, math.NewVec4(1, 0.5, 0, 1), c)
}

func TestRegistryUnknownTag(t *testing.T) {
	reg := NewRegistry[string]()
	reg.Register("Coin", func(rec Record) (string, error) { return "coin", nil })

	got, err := reg.Create(ParseRecord("Coin,Position|1|1"))
	require.NoError(t, err)
	assert.Equal(t, "coin", got)

	_, err = reg.Create(ParseRecord("Dragon,Position|1|1"))
	assert.ErrorIs(t, err, core.ErrUnknownType)
	assert.Equal(t, []string{"Coin"}, reg.Tags())
}
