package cmd

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "github.com/Aman-CERP/feedlens/internal/errors"
)

func TestListCmd_HasFlags(t *testing.T) {
	cmd := NewRootCmd()
	listCmd, _, err := cmd.Find([]string{"list"})
	require.NoError(t, err)

	for _, name := range []string{"search", "exclude-rating", "format", "limit"} {
		assert.NotNil(t, listCmd.Flags().Lookup(name), "should have --%s", name)
	}
	assert.Equal(t, "text", listCmd.Flags().Lookup("format").DefValue)
}

func TestListCmd_Table(t *testing.T) {
	// Given: an endpoint with two items
	isolate(t)
	serve(t, http.StatusOK, testBody)

	// When: listing without filters
	stdout, _, err := execute(t, "list")

	// Then: the summary and both rows are printed
	require.NoError(t, err)
	assert.Contains(t, stdout, "Feedback 2 of 2")
	assert.Contains(t, stdout, "Great button")
	assert.Contains(t, stdout, "Broken page")
	assert.Contains(t, stdout, "Chrome 32.0")
	assert.Contains(t, stdout, "MacOSX")
}

func TestListCmd_Search(t *testing.T) {
	isolate(t)
	serve(t, http.StatusOK, testBody)

	// "btn" is a subsequence of "button" only
	stdout, _, err := execute(t, "list", "--search", "btn")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Feedback 1 of 2")
	assert.Contains(t, stdout, "Great button")
	assert.NotContains(t, stdout, "Broken page")
}

func TestListCmd_ExcludeRating(t *testing.T) {
	isolate(t)
	serve(t, http.StatusOK, testBody)

	stdout, _, err := execute(t, "list", "-x", "5")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Broken page")
	assert.NotContains(t, stdout, "Great button")
}

func TestListCmd_NoMatches(t *testing.T) {
	isolate(t)
	serve(t, http.StatusOK, testBody)

	stdout, _, err := execute(t, "list", "--search", "zzz")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Feedback 0 of 2")
	assert.Contains(t, stdout, "No Data")
}

func TestListCmd_Limit(t *testing.T) {
	isolate(t)
	serve(t, http.StatusOK, testBody)

	stdout, _, err := execute(t, "list", "--limit", "1")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Great button")
	assert.NotContains(t, stdout, "Broken page")
	assert.Contains(t, stdout, "Showing 1 of 2")
}

func TestListCmd_JSON(t *testing.T) {
	// Given: an endpoint with two items
	isolate(t)
	serve(t, http.StatusOK, testBody)

	// When: listing as JSON with a search
	stdout, _, err := execute(t, "list", "--search", "btn", "--format", "json")
	require.NoError(t, err)

	// Then: counts, summary and fragments are present
	var got struct {
		Fetched int `json:"fetched"`
		Shown   int `json:"shown"`
		Summary struct {
			Total    int            `json:"total"`
			ByRating map[string]int `json:"by_rating"`
		} `json:"summary"`
		Items []struct {
			ID        string `json:"id"`
			Fragments []struct {
				Slice   string `json:"slice"`
				Matched bool   `json:"matched"`
			} `json:"fragments"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))

	assert.Equal(t, 2, got.Fetched)
	assert.Equal(t, 1, got.Shown)
	assert.Equal(t, 1, got.Summary.Total)
	assert.Equal(t, 1, got.Summary.ByRating["5"])
	assert.Equal(t, 0, got.Summary.ByRating["2"])
	require.Len(t, got.Items, 1)
	assert.Equal(t, "a1", got.Items[0].ID)

	text := ""
	for _, f := range got.Items[0].Fragments {
		text += f.Slice
	}
	assert.Equal(t, "Great button", text)
}

func TestListCmd_ServerError(t *testing.T) {
	// Given: an endpoint failing with 500
	isolate(t)
	serve(t, http.StatusInternalServerError, "oops")

	// When: listing
	stdout, stderr, err := execute(t, "list")

	// Then: the failure page goes to stderr and the error is marked reported
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Server side Error 500")
	assert.Equal(t, ferrors.ErrCodeServerError, ferrors.GetCode(err))

	var done *reportedError
	assert.True(t, errors.As(err, &done))
}

func TestListCmd_ServerErrorJSON(t *testing.T) {
	isolate(t)
	serve(t, http.StatusBadRequest, "bad")

	stdout, _, err := execute(t, "list", "--format", "json")

	require.Error(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, ferrors.ErrCodeBadStatus, got["code"])
	assert.Equal(t, false, got["retryable"])
}

func TestListCmd_DecodeError(t *testing.T) {
	isolate(t)
	serve(t, http.StatusOK, `{"items":[{"id":"a1","rating":9}]}`)

	_, stderr, err := execute(t, "list")

	require.Error(t, err)
	assert.Equal(t, ferrors.ErrCodeResponseDecode, ferrors.GetCode(err))
	assert.Contains(t, stderr, "Response Body Error")
}

func TestListCmd_InvalidInputFailsBeforeFetch(t *testing.T) {
	isolate(t)
	// No endpoint is served: these must fail without a request

	tests := []struct {
		name string
		args []string
		code string
	}{
		{name: "format", args: []string{"list", "--format", "xml"}, code: ferrors.ErrCodeInvalidFormat},
		{name: "rating", args: []string{"list", "-x", "7"}, code: ferrors.ErrCodeInvalidRating},
		{name: "negative limit", args: []string{"list", "--limit=-1"}, code: ferrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)

			require.Error(t, err)
			assert.Equal(t, tt.code, ferrors.GetCode(err))
		})
	}
}

func TestBrowseCmd_FallsBackToListWhenNotTTY(t *testing.T) {
	// Given: output captured in a buffer, which is not a terminal
	isolate(t)
	serve(t, http.StatusOK, testBody)

	// When: browsing with initial filters
	stdout, _, err := execute(t, "browse", "--search", "page")

	// Then: the filtered list is printed instead
	require.NoError(t, err)
	assert.Contains(t, stdout, "Feedback 1 of 2")
	assert.Contains(t, stdout, "Broken page")
}

func TestBrowseCmd_InvalidRating(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "browse", "-x", "0")

	require.Error(t, err)
	assert.Equal(t, ferrors.ErrCodeInvalidRating, ferrors.GetCode(err))
}
