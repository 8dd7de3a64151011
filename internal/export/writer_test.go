// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/sheetclean/pkg/types"
)

func sampleTable() *types.CleanedTable {
	return &types.CleanedTable{Columns: []types.Column{
		{Name: "ST", Label: "text", DType: types.DTypeString, Values: []types.Value{types.TextValue("AK"), types.TextValue("AL")}},
		{Name: "DAYS", Label: "days", DType: types.DTypeInt, Values: []types.Value{types.IntValue(5), types.MissingValue()}},
		{Name: "WBA", Label: "dollars", DType: types.DTypeFloat, Values: []types.Value{types.FloatValue(370), types.FloatValue(275.5)}},
		{Name: "EFF", Label: "date", DType: types.DTypeTime, Values: []types.Value{
			types.TimeValue(time.Date(2020, time.January, 15, 0, 0, 0, 0, time.UTC)), types.MissingValue(),
		}},
		{Name: "LMABRN", Label: "flag", DType: types.DTypeBool, Values: []types.Value{types.BoolValue(true), types.BoolValue(false)}},
	}}
}

func TestEncodeData(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeData(&buf, sampleTable(), ""))

	want := "ST,DAYS,WBA,EFF,LMABRN\n" +
		"AK,5,370.0,2020-01-15,True\n" +
		"AL,,275.5,,False\n"
	assert.Equal(t, want, buf.String())
}

func TestEncodeDataNARep(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeData(&buf, sampleTable(), "NA"))
	assert.Contains(t, buf.String(), "AL,NA,275.5,NA,False\n")
}

func TestEncodeTypes(t *testing.T) {
	records := TypeRecords(sampleTable())

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeTypes(&buf, records, types.TypesCSV))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 6)
		assert.Equal(t, "column,dtype,label,nullable", lines[0])
		assert.Equal(t, "DAYS,int64,days,true", lines[2])
		assert.Equal(t, "LMABRN,bool,flag,false", lines[5])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeTypes(&buf, records, types.TypesYAML))
		var got []TypeRecord
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, records, got)
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, EncodeTypes(&buf, records, types.TypesJSON))
		var got []TypeRecord
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, records, got)
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, EncodeTypes(&bytes.Buffer{}, records, "toml"))
	})
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	cfg := types.OutputConfig{
		DataPath:    filepath.Join(dir, "data.csv"),
		TypesPath:   filepath.Join(dir, "dtypes.csv"),
		TypesFormat: types.TypesCSV,
	}

	require.NoError(t, Write(sampleTable(), cfg))

	data, err := os.ReadFile(cfg.DataPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "ST,DAYS,WBA,EFF,LMABRN\n"))

	dtypes, err := os.ReadFile(cfg.TypesPath)
	require.NoError(t, err)
	assert.Contains(t, string(dtypes), "EFF,datetime64,date,true")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files left behind")
}

func TestWriteLeavesNothingOnFailure(t *testing.T) {
	dir := t.TempDir()
	cfg := types.OutputConfig{
		DataPath:    filepath.Join(dir, "data.csv"),
		TypesPath:   filepath.Join(dir, "dtypes.toml"),
		TypesFormat: "toml",
	}

	require.Error(t, Write(sampleTable(), cfg))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
