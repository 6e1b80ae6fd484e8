package profiling

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Enabled(t *testing.T) {
	assert.False(t, Options{}.Enabled())
	assert.True(t, Options{CPU: "cpu.prof"}.Enabled())
	assert.True(t, Options{Mem: "mem.prof"}.Enabled())
	assert.True(t, Options{Trace: "trace.out"}.Enabled())
}

func TestSession_WritesAllProfiles(t *testing.T) {
	// Given: every profile requested
	dir := t.TempDir()
	opts := Options{
		CPU:   filepath.Join(dir, "cpu.prof"),
		Mem:   filepath.Join(dir, "mem.prof"),
		Trace: filepath.Join(dir, "trace.out"),
	}

	// When: a session runs some work and stops
	s, err := Start(opts)
	require.NoError(t, err)

	sum := 0
	for i := 0; i < 1000000; i++ {
		sum += i
	}
	_ = sum

	require.NoError(t, s.Stop())

	// Then: each file exists with content
	for _, path := range []string{opts.CPU, opts.Mem, opts.Trace} {
		info, err := os.Stat(path)
		require.NoError(t, err, path)
		assert.Greater(t, info.Size(), int64(0), path)
	}
}

func TestSession_StopTwice(t *testing.T) {
	dir := t.TempDir()
	s, err := Start(Options{CPU: filepath.Join(dir, "cpu.prof")})
	require.NoError(t, err)

	require.NoError(t, s.Stop())
	assert.NoError(t, s.Stop())
}

func TestSession_NilStop(t *testing.T) {
	var s *Session
	assert.NoError(t, s.Stop())
}

func TestStart_BadPath(t *testing.T) {
	// Given: a CPU profile path inside a missing directory
	path := filepath.Join(t.TempDir(), "missing", "cpu.prof")

	// When: starting
	s, err := Start(Options{CPU: path})

	// Then: it fails and nothing is running
	require.Error(t, err)
	assert.Nil(t, s)

	// A new CPU profile can still start
	ok, err := Start(Options{CPU: filepath.Join(t.TempDir(), "cpu.prof")})
	require.NoError(t, err)
	require.NoError(t, ok.Stop())
}

func TestStart_TraceFailureStopsCPU(t *testing.T) {
	dir := t.TempDir()

	// When: the trace file cannot be created
	_, err := Start(Options{
		CPU:   filepath.Join(dir, "cpu.prof"),
		Trace: filepath.Join(dir, "missing", "trace.out"),
	})
	require.Error(t, err)

	// Then: CPU profiling was released
	s, err := Start(Options{CPU: filepath.Join(dir, "cpu2.prof")})
	require.NoError(t, err)
	require.NoError(t, s.Stop())
}
