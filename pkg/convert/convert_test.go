package convert_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeonchae62/REU-Project/pkg/convert"
)

func cell(s string) *string { return &s }

func TestFormat1(t *testing.T) {
	// first group complete, second group with an empty end cell, rest missing
	input := strings.Join([]string{
		"header,ignored",
		"1:00,1:10",
		"1:20\t1:30",
		"1:40,1:50,extra",
		"",
		"x,x",
		"2:00,",
		",2:30",
		"2:40,2:50\r",
		"",
	}, "\n")

	doc := convert.Format1(input)
	assert.Equal(t, 1, doc.Format)
	require.Len(t, doc.Data, 12)

	first := doc.Data[0]
	assert.Equal(t, convert.Path1{Kind: "single-view", Ground: "slope", Trial: 1}, first.Meta.Path)
	assert.Equal(t, convert.Span{cell("1:00"), cell("1:10")}, first.Pickup)
	assert.Equal(t, convert.Span{cell("1:20"), cell("1:30")}, first.Obstacle)
	assert.Equal(t, convert.Span{cell("1:40"), cell("1:50")}, first.Dump)

	second := doc.Data[1]
	assert.Equal(t, "multiple-view", second.Meta.Path.Kind)
	assert.Equal(t, convert.Span{cell("2:00"), nil}, second.Pickup)
	assert.Equal(t, convert.Span{nil, cell("2:30")}, second.Obstacle)
	assert.Equal(t, convert.Span{cell("2:40"), cell("2:50")}, second.Dump)

	last := doc.Data[11]
	assert.Equal(t, convert.Path1{Kind: "HMD", Ground: "flat", Trial: 2}, last.Meta.Path)
	assert.Equal(t, convert.Span{}, last.Dump)
}

func TestFormat2(t *testing.T) {
	lines := make([]string, 75)
	lines[0] = "0:01,0:02"
	lines[2] = "0:05,0:06"
	// first baseline group starts after ten four-line groups
	lines[40] = "9:00,9:10"
	lines[45] = "9:50,9:59"

	doc := convert.Format2(strings.Join(lines, "\n"))
	assert.Equal(t, 2, doc.Format)
	require.Len(t, doc.Data, 15)

	none1 := doc.Data[0]
	assert.Equal(t, convert.Path2{Environment: "demolition", VisualGuide: "none", Trial: 1}, none1.Meta.Path)
	require.NotNil(t, none1.Pickup)
	assert.Equal(t, convert.Span{cell("0:01"), cell("0:02")}, *none1.Pickup)
	assert.Equal(t, convert.Span{}, *none1.Obstacle)
	assert.Equal(t, convert.Span{cell("0:05"), cell("0:06")}, *none1.Dump)
	assert.Nil(t, none1.Trials)

	assert.Equal(t, convert.Path2{Environment: "demolition", VisualGuide: "continuous", Trial: 2}, doc.Data[9].Meta.Path)

	base := doc.Data[10]
	assert.Equal(t, convert.Path2{Environment: "baseline", VisualGuide: "none", Trial: 1}, base.Meta.Path)
	assert.Nil(t, base.Pickup)
	require.Len(t, base.Trials, 6)
	assert.Equal(t, convert.Span{cell("9:00"), cell("9:10")}, base.Trials[0])
	assert.Equal(t, convert.Span{cell("9:50"), cell("9:59")}, base.Trials[5])
	assert.Equal(t, "continuous", doc.Data[14].Meta.Path.VisualGuide)
}

func TestConvert(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, convert.Convert(strings.NewReader("h\n1,2\n"), &out, 1))
	assert.Contains(t, out.String(), "\n    \"format\": 1,")

	var decoded struct {
		Format int `json:"format"`
		Data   []struct {
			Pickup   []*string `json:"pickup"`
			Obstacle []*string `json:"obstacle"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded.Data, 12)
	assert.Equal(t, []*string{cell("1"), cell("2")}, decoded.Data[0].Pickup)
	assert.Equal(t, []*string{nil, nil}, decoded.Data[0].Obstacle)

	out.Reset()
	require.NoError(t, convert.Convert(strings.NewReader("h\n<start> & go,end>\n"), &out, 1))
	assert.Contains(t, out.String(), `"<start> & go"`)
	assert.Contains(t, out.String(), `"end>"`)

	out.Reset()
	require.NoError(t, convert.Convert(strings.NewReader(""), &out, 2))
	assert.NotContains(t, out.String(), "\"trials\": null")

	err := convert.Convert(strings.NewReader(""), &out, 3)
	assert.ErrorIs(t, err, convert.ErrFormat)
}
