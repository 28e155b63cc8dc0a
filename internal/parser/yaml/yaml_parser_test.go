package yaml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ofods/internal/record"
)

func TestParse_SequenceOfMappings(t *testing.T) {
	in := `
- Restaurant_ID: 1
  Name: Taj
  Rating: 4.5
  Opened: 2021-04-01
- Restaurant_ID: 2
  Name: "O'Brien's"
  Rating: 3
`
	recs, err := Parser{}.Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 2)

	vals, err := record.Extract(recs[0], 0, []string{"Restaurant_ID", "Name", "Rating"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "Taj", "4.5"}, vals)
	assert.Equal(t, "O'Brien's", recs[1]["Name"])
}

func TestParse_EmptyAndSingle(t *testing.T) {
	recs, err := Parser{}.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, recs)

	recs, err = Parser{}.Parse(strings.NewReader("a: b\n"))
	require.NoError(t, err)
	assert.Equal(t, []record.Record{{"a": "b"}}, recs)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parser{}.Parse(strings.NewReader("- a: 1\n- 2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 1")

	_, err = Parser{}.Parse(strings.NewReader("- [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")

	_, err = Parser{}.Parse(strings.NewReader("42\n"))
	require.Error(t, err)
}
