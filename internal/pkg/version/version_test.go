package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnrichBuildInfo(t *testing.T) {
	orig := readBuildInfo
	t.Cleanup(func() { readBuildInfo = orig })

	tests := []struct {
		name      string
		input     Info
		buildInfo *debug.BuildInfo
		ok        bool
		want      Info
	}{
		{
			name:  "NoBuildInfo",
			input: Info{},
			ok:    false,
			want: Info{
				Version:   "dev",
				Commit:    unknown,
				BuildDate: unknown,
				GoVersion: runtime.Version(),
				OS:        runtime.GOOS,
				Arch:      runtime.GOARCH,
			},
		},
		{
			name:  "VCSMetadata",
			input: Info{},
			buildInfo: &debug.BuildInfo{
				Main: debug.Module{Version: "v0.3.0"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "f25b8bf0c0ffee"},
					{Key: "vcs.time", Value: "2026-10-01T00:00:00Z"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			ok: true,
			want: Info{
				Version:    "v0.3.0",
				Commit:     "f25b8bf0c0ffee",
				BuildDate:  "2026-10-01T00:00:00Z",
				GoVersion:  runtime.Version(),
				OS:         runtime.GOOS,
				Arch:       runtime.GOARCH,
				DirtyBuild: true,
			},
		},
		{
			name:  "LdflagsWin",
			input: Info{Version: "v1.0.0", Commit: "abc1234", BuildDate: "2026-01-01"},
			buildInfo: &debug.BuildInfo{
				Main: debug.Module{Version: "(devel)"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "zzz"},
					{Key: "vcs.time", Value: "2020-01-01"},
				},
			},
			ok: true,
			want: Info{
				Version:   "v1.0.0",
				Commit:    "abc1234",
				BuildDate: "2026-01-01",
				GoVersion: runtime.Version(),
				OS:        runtime.GOOS,
				Arch:      runtime.GOARCH,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readBuildInfo = func() (*debug.BuildInfo, bool) { return tt.buildInfo, tt.ok }
			assert.Equal(t, tt.want, enrichBuildInfo(tt.input))
		})
	}
}

func TestInfo_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info Info
		want string
	}{
		{"Empty", Info{}, unknown},
		{"VersionOnly", Info{Version: "v1.0.0", Commit: unknown, BuildDate: unknown}, "v1.0.0"},
		{
			name: "Full",
			info: Info{Version: "v1.0.0", Commit: "f25b8bf0c0ffee", BuildDate: "2026-10-01", GoVersion: "go1.24.11", OS: "linux", Arch: "amd64", DirtyBuild: true},
			want: "v1.0.0+dirty (commit: f25b8bf, date: 2026-10-01, go1.24.11 linux/amd64)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.String())
		})
	}
}

func TestUserAgent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "allotment-probe/"+Get().Version, UserAgent("allotment-probe"))
	assert.NotEmpty(t, Get().Version)
	assert.Equal(t, Get().Version, Get().Fields()["version"])
}
