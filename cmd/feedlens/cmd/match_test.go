package cmd

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "github.com/Aman-CERP/feedlens/internal/errors"
)

func TestMatchCmd_Text(t *testing.T) {
	isolate(t)

	// When: matching a leftmost subsequence
	stdout, _, err := execute(t, "match", "btn", "Big red button")

	// Then: the highlighted text and each fragment are printed
	require.NoError(t, err)
	assert.Contains(t, stdout, "Big red button\n")
	assert.Contains(t, stdout, `* "B"`)
	assert.Contains(t, stdout, `  "ig red bu"`)
	assert.Contains(t, stdout, `* "t"`)
	assert.Contains(t, stdout, `  "to"`)
	assert.Contains(t, stdout, `* "n"`)
}

func TestMatchCmd_NoMatch(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "match", "xyz", "abc")

	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Equal(t, ferrors.ErrCodeInvalidInput, ferrors.GetCode(err))
}

func TestMatchCmd_JSON(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "match", "abc", "xaxbxc", "--format", "json")
	require.NoError(t, err)

	var got matchResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.True(t, got.Matched)
	assert.Equal(t, "abc", got.Pattern)
	require.Len(t, got.Fragments, 6)
	assert.Equal(t, "x", got.Fragments[0].Slice)
	assert.False(t, got.Fragments[0].Matched)
	assert.Equal(t, "a", got.Fragments[1].Slice)
	assert.True(t, got.Fragments[1].Matched)
}

func TestMatchCmd_JSONNoMatch(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "match", "zz", "abc", "-f", "json")

	// Then: the result is still printed and the error is not reported twice
	require.Error(t, err)
	var done *reportedError
	assert.True(t, errors.As(err, &done))

	var got matchResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.False(t, got.Matched)
	assert.Empty(t, got.Fragments)
}

func TestMatchCmd_EmptyPatternMatchesEverything(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "match", "", "anything")

	require.NoError(t, err)
	assert.Contains(t, stdout, `  "anything"`)
}

func TestTruncateArg(t *testing.T) {
	assert.Equal(t, "short", truncateArg("short"))

	long := "this comment is far longer than forty characters in total"
	got := truncateArg(long)
	assert.True(t, len([]rune(got)) <= 43)
	assert.Contains(t, got, "...")
}
