package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_SetKeepsFirstPositionAndLastValue(t *testing.T) {
	r := NewRecord(3)
	r.Set("IDTAS", "1")
	r.Set("USD_O", "1")
	r.Set("IDTAS", "2")

	assert.Equal(t, []string{"IDTAS", "USD_O"}, r.Keys())
	assert.Equal(t, "2", r.Value("IDTAS"))
	assert.Equal(t, 2, r.Len())
}

func TestRecord_Lookup(t *testing.T) {
	r := RecordOf("usd_o", "1", "COP_D", "4000")

	v, ok := r.Lookup("USD_O")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	v, ok = r.Lookup("COP_D")
	assert.True(t, ok)
	assert.Equal(t, "4000", v)

	_, ok = r.Lookup("EUR_D")
	assert.False(t, ok)
}

func TestRecord_IsBlank(t *testing.T) {
	assert.True(t, RecordOf("A", "", "B", "  ").IsBlank())
	assert.False(t, RecordOf("A", "", "B", "x").IsBlank())
	assert.True(t, Record{}.IsBlank())
}

func TestRecord_MarshalJSONKeepsHeaderOrder(t *testing.T) {
	r := RecordOf("Z", "1", "A", "2", "M", "\"q\"")

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"Z":"1","A":"2","M":"\"q\""}`, string(b))

	b, err = json.Marshal(Record{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))
}

func TestRecordOf_TrailingKey(t *testing.T) {
	r := RecordOf("A", "1", "B")
	v, ok := r.Get("B")
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestRawGrid_Cell(t *testing.T) {
	g := RawGrid{{"A", "B"}, {"1"}}
	assert.Equal(t, "1", g.Cell(1, 0))
	assert.Equal(t, "", g.Cell(1, 1))
	assert.Equal(t, "", g.Cell(5, 0))
	assert.Equal(t, "", g.Cell(0, -1))
}

func TestParseMatrixLayout(t *testing.T) {
	l, err := ParseMatrixLayout("grid")
	require.NoError(t, err)
	assert.Equal(t, MatrixLayoutGrid, l)

	l, err = ParseMatrixLayout("records")
	require.NoError(t, err)
	assert.Equal(t, MatrixLayoutRecords, l)

	_, err = ParseMatrixLayout("sniff")
	assert.Error(t, err)
}

func TestProfitMatrix_IsEmpty(t *testing.T) {
	assert.True(t, ProfitMatrix{Layout: MatrixLayoutGrid, Grid: RawGrid{{"", "USD"}}}.IsEmpty())
	assert.False(t, ProfitMatrix{Layout: MatrixLayoutGrid, Grid: RawGrid{{"", "USD"}, {"COP", "0,95"}}}.IsEmpty())
	assert.True(t, ProfitMatrix{Layout: MatrixLayoutRecords}.IsEmpty())
	assert.True(t, ProfitMatrix{}.IsEmpty())
}
