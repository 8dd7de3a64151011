// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sheetclean/pkg/types"
)

func TestPreview(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Preview(&buf, sampleTable(), 1, "-"))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"ST", "DAYS", "WBA", "EFF", "LMABRN"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"string", "int64", "float64", "datetime64", "bool"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"AK", "5", "370.0", "2020-01-15", "True"}, strings.Fields(lines[2]))
	assert.Equal(t, strings.Index(lines[0], "DAYS"), strings.Index(lines[2], "5"))
	assert.Equal(t, "... 1 more rows", lines[3])
}

func TestPreviewAlignsWideText(t *testing.T) {
	table := &types.CleanedTable{Columns: []types.Column{
		{Name: "NAME", DType: types.DTypeString, Values: []types.Value{types.TextValue("東京"), types.TextValue("Guam")}},
		{Name: "N", DType: types.DTypeInt, Values: []types.Value{types.IntValue(1), types.IntValue(2)}},
	}}

	var buf bytes.Buffer
	require.NoError(t, Preview(&buf, table, 10, ""))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	// The second column starts at the same display offset on every line.
	for _, line := range lines {
		first := line[:strings.LastIndex(line, "  ")]
		assert.Equal(t, runewidth.StringWidth(lines[0][:strings.LastIndex(lines[0], "  ")]), runewidth.StringWidth(first), line)
	}
}
