package shaders

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilter_Skip(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		isDir      bool
		allEntries bool
		wantSkip   bool
		wantReason string
	}{
		{name: "a.vert", wantSkip: false},
		{name: "a.vert.spv", wantSkip: true, wantReason: "compiled output"},
		{name: ".spv", wantSkip: true, wantReason: "compiled output"},
		{name: "a.spv.vert", wantSkip: false},
		{name: "include", isDir: true, wantSkip: true, wantReason: "directory"},
		{name: "a.vert.spv", allEntries: true, wantSkip: false},
		{name: "include", isDir: true, allEntries: true, wantSkip: false},
	}

	for _, tc := range testCases {
		f := Filter{Suffix: DefaultSuffix, AllEntries: tc.allEntries}
		skip, reason := f.Skip(tc.name, tc.isDir)
		require.Equal(t, tc.wantSkip, skip, "entry %q (all=%v)", tc.name, tc.allEntries)
		require.Equal(t, tc.wantReason, reason, "entry %q", tc.name)
	}
}

func TestOutputPath_AppendsSuffix(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/proj/shaders/a.vert.spv", OutputPath("/proj/shaders/a.vert", ".spv"))
	require.Equal(t, "/proj/shaders/noext.spv", OutputPath("/proj/shaders/noext", ".spv"))
}
