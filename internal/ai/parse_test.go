package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	testCases := []struct {
		Desc     string
		Input    string
		Expected string
	}{
		{Desc: "plain", Input: `{"a":1}`, Expected: `{"a":1}`},
		{Desc: "json fence", Input: "```json\n{\"a\":1}\n```", Expected: `{"a":1}`},
		{Desc: "bare fence", Input: "```\n[1,2]\n```", Expected: `[1,2]`},
		{Desc: "fence on one line", Input: "```{\"a\":1}```", Expected: `{"a":1}`},
		{Desc: "surrounding spaces", Input: "  \n```json\n{}\n```  ", Expected: `{}`},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			assert.Equal(t, tc.Expected, stripFences(tc.Input))
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Run("object with chatter", func(t *testing.T) {
		m, err := decodeJSON[Motivation]("Sure! Here it is:\n```json\n{\"message\":\"keep going\"}\n```")
		require.NoError(t, err)
		assert.Equal(t, "keep going", m.Message)
	})
	t.Run("array", func(t *testing.T) {
		p, err := decodeJSON[[]Prompt](`[{"text":"a","category":"growth"},{"text":"b","category":"goals"}]`)
		require.NoError(t, err)
		assert.Len(t, p, 2)
	})
	t.Run("no json", func(t *testing.T) {
		_, err := decodeJSON[Motivation]("I cannot help with that.")
		assert.Error(t, err)
	})
	t.Run("broken json", func(t *testing.T) {
		_, err := decodeJSON[Motivation](`{"message": }`)
		assert.Error(t, err)
	})
}
