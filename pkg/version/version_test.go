package version

import (
	"encoding/json"
	"regexp"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion_FollowsSemverOrDev(t *testing.T) {
	if Version == "dev" {
		t.Log("development build without ldflags")
		return
	}
	semverRegex := regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.]+)?$`)
	require.True(t, semverRegex.MatchString(Version), "got: %s", Version)
}

func TestString_ContainsBuildInfo(t *testing.T) {
	str := String()

	assert.True(t, strings.HasPrefix(str, "feedlens "+Version))
	assert.Contains(t, str, "commit: "+Commit)
	assert.Contains(t, str, "go: "+GoVersion)
}

func TestShort_ReturnsVersion(t *testing.T) {
	assert.Equal(t, Version, Short())
}

func TestUserAgent(t *testing.T) {
	assert.Equal(t, "feedlens/"+Version+" ("+runtime.GOOS+"/"+runtime.GOARCH+")", UserAgent())
}

func TestGetInfo_IsJSONSerializable(t *testing.T) {
	// Given: build info
	info := GetInfo()
	assert.Equal(t, runtime.Version(), info.GoVersion)

	// When: serializing to JSON
	data, err := json.Marshal(info)
	require.NoError(t, err)

	// Then: every field is present
	var parsed map[string]string
	require.NoError(t, json.Unmarshal(data, &parsed))
	for _, key := range []string{"version", "commit", "date", "go_version", "os", "arch"} {
		assert.Contains(t, parsed, key)
	}
}
