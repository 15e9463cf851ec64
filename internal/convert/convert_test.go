// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/refconvert/pkg/types"
)

const demoJSON = `{
  "Griffiths, 2016": "Griffiths, R.R. et al. (2016). Title. <i>Journal</i>.",
  "Carhart-Harris, 2021": "Carhart-Harris, R. et al. (2021). Title2."
}`

const demoHTML = "<ol>\n" +
	"<li>Griffiths, R.R. et al. (2016). Title. <i>Journal</i>.</li>\n" +
	"<li>Carhart-Harris, R. et al. (2021). Title2.</li>\n" +
	"</ol>"

// setupDirs creates input and output directories under a temp root and
// writes the given reference files into the input directory.
func setupDirs(t *testing.T, files map[string]string) types.ConverterConfig {
	t.Helper()
	root := t.TempDir()
	cfg := types.ConverterConfig{
		InputDir:  filepath.Join(root, "docs", "_data"),
		OutputDir: filepath.Join(root, "_includes", "publications"),
	}
	require.NoError(t, os.MkdirAll(cfg.InputDir, 0o755))
	require.NoError(t, os.MkdirAll(cfg.OutputDir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(cfg.InputDir, name), []byte(content), 0o644))
	}
	return cfg
}

func TestConvertOne(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		wantStatus    types.FileStatus
		wantCitations int
		wantLog       []string
	}{
		{
			name:          "successful conversion",
			content:       demoJSON,
			wantStatus:    types.FileConverted,
			wantCitations: 2,
			wantLog:       []string{"Parsed 2 citations from", "HTML file written to:"},
		},
		{
			name:       "malformed JSON",
			content:    `{"Griffiths, 2016": `,
			wantStatus: types.FileFailed,
			wantLog:    []string{"Error processing"},
		},
		{
			name:       "Latin-1 bytes",
			content:    "{\"\xd8deg\xe5rd, 2018\": \"\xd8deg\xe5rd, K. (2018).\"}",
			wantStatus: types.FileFailed,
			wantLog:    []string{"Error processing", "invalid UTF-8"},
		},
		{
			name:       "wrong shape",
			content:    `{"Griffiths, 2016": ["a"]}`,
			wantStatus: types.FileFailed,
			wantLog:    []string{"Error processing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := setupDirs(t, map[string]string{"demo_refs.json": tt.content})
			input := filepath.Join(cfg.InputDir, "demo_refs.json")
			output := filepath.Join(cfg.OutputDir, "demo_refs.html")
			var log bytes.Buffer

			result := New(cfg, &log, nil).ConvertOne(input, output)

			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.wantCitations, result.Citations)
			assert.Equal(t, input, result.Input)
			for _, want := range tt.wantLog {
				assert.Contains(t, log.String(), want)
			}

			_, err := os.Stat(output)
			if tt.wantStatus == types.FileConverted {
				assert.NoError(t, err)
				assert.Empty(t, result.Error)
			} else {
				assert.True(t, os.IsNotExist(err), "failed conversion must not write output")
				assert.Contains(t, result.Error, input)
			}
		})
	}
}

func TestConvertOne_ByteIdenticalOutput(t *testing.T) {
	cfg := setupDirs(t, map[string]string{"demo_refs.json": demoJSON})
	output := filepath.Join(cfg.OutputDir, "demo_refs.html")

	result := New(cfg, nil, nil).ConvertOne(filepath.Join(cfg.InputDir, "demo_refs.json"), output)
	require.True(t, result.OK(), result.Error)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, demoHTML, string(data))
}

func TestConvertOne_MissingInput(t *testing.T) {
	cfg := setupDirs(t, nil)
	input := filepath.Join(cfg.InputDir, "gone_refs.json")
	output := filepath.Join(cfg.OutputDir, "gone_refs.html")

	result := New(cfg, nil, nil).ConvertOne(input, output)

	assert.Equal(t, types.FileFailed, result.Status)
	assert.Contains(t, result.Error, ErrNotFound.Error())
	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err))
}

func TestConvertOne_MissingOutputDir(t *testing.T) {
	cfg := setupDirs(t, map[string]string{"demo_refs.json": demoJSON})
	output := filepath.Join(cfg.OutputDir, "missing", "demo_refs.html")
	var log bytes.Buffer

	result := New(cfg, &log, nil).ConvertOne(filepath.Join(cfg.InputDir, "demo_refs.json"), output)

	assert.Equal(t, types.FileFailed, result.Status)
	assert.Equal(t, 2, result.Citations)
	assert.Contains(t, result.Error, ErrWrite.Error())
	assert.NotContains(t, log.String(), "HTML file written to:")
}

func TestPlan(t *testing.T) {
	cfg := setupDirs(t, map[string]string{
		"psilodep_refs.json": "{}",
		"mdma_refs.json":     "{}",
		"notes.json":         "{}",
		"psilodep_refs.yaml": "",
	})
	// A directory whose name matches the pattern is not a reference file.
	require.NoError(t, os.Mkdir(filepath.Join(cfg.InputDir, "archive_refs.json"), 0o755))

	jobs, err := New(cfg, nil, nil).Plan()
	require.NoError(t, err)

	assert.Equal(t, []Job{
		{
			Input:  filepath.Join(cfg.InputDir, "mdma_refs.json"),
			Output: filepath.Join(cfg.OutputDir, "mdma_refs.html"),
			Study:  "mdma",
		},
		{
			Input:  filepath.Join(cfg.InputDir, "psilodep_refs.json"),
			Output: filepath.Join(cfg.OutputDir, "psilodep_refs.html"),
			Study:  "psilodep",
		},
	}, jobs)
}

func TestPlan_InvalidPattern(t *testing.T) {
	cfg := setupDirs(t, nil)
	cfg.Pattern = "[refs"

	_, err := New(cfg, nil, nil).Plan()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pattern")
}

func TestStudyName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"psilodep_refs.json", "psilodep"},
		{"long_study_name_refs.json", "long_study_name"},
		{"refs.json", "refs"},
		{"other.json", "other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StudyName(tt.name))
		})
	}
}

func TestConvertAll(t *testing.T) {
	cfg := setupDirs(t, map[string]string{
		"demo_refs.json":   demoJSON,
		"broken_refs.json": `{"Griffiths, 2016": "unterminated`,
	})
	var log bytes.Buffer

	result, err := New(cfg, &log, nil).ConvertAll()
	require.NoError(t, err)

	assert.Equal(t, 1, result.Converted)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 2, result.Total())
	assert.True(t, result.HasFailures())
	require.Len(t, result.Files, 2)

	// Plan order is by file name.
	assert.Equal(t, "broken", result.Files[0].Study)
	assert.Equal(t, types.FileFailed, result.Files[0].Status)
	assert.Equal(t, "demo", result.Files[1].Study)
	assert.Equal(t, types.FileConverted, result.Files[1].Status)

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "demo_refs.html"))
	require.NoError(t, err)
	assert.Equal(t, demoHTML, string(data))

	_, err = os.Stat(filepath.Join(cfg.OutputDir, "broken_refs.html"))
	assert.True(t, os.IsNotExist(err))

	out := log.String()
	assert.Contains(t, out, "Processing: demo_refs.json -> demo_refs.html")
	assert.Contains(t, out, "Processing: broken_refs.json -> broken_refs.html")
	assert.Contains(t, out, "Batch summary: 1 converted, 1 failed (total: 2)")
}

func TestConvertAll_NoMatches(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) types.ConverterConfig
	}{
		{
			name: "missing input directory",
			setup: func(t *testing.T) types.ConverterConfig {
				cfg := setupDirs(t, nil)
				cfg.InputDir = filepath.Join(cfg.InputDir, "does-not-exist")
				return cfg
			},
		},
		{
			name: "no matching files",
			setup: func(t *testing.T) types.ConverterConfig {
				return setupDirs(t, map[string]string{"readme.json": "{}"})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.setup(t)
			var log bytes.Buffer

			result, err := New(cfg, &log, nil).ConvertAll()
			require.NoError(t, err)

			assert.Equal(t, 0, result.Total())
			assert.NotNil(t, result.Files)
			assert.Empty(t, result.Files)

			var out bytes.Buffer
			require.NoError(t, FormatJSON(result, &out))
			assert.Contains(t, out.String(), `"files": []`)
			assert.True(t, strings.HasPrefix(log.String(), "No files matching pattern '*_refs.json' found in"))

			entries, err := os.ReadDir(cfg.OutputDir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestConvertAll_RerunOverwrites(t *testing.T) {
	cfg := setupDirs(t, map[string]string{"demo_refs.json": demoJSON})
	output := filepath.Join(cfg.OutputDir, "demo_refs.html")
	require.NoError(t, os.WriteFile(output, []byte("stale"), 0o644))

	c := New(cfg, nil, nil)
	for i := 0; i < 2; i++ {
		result, err := c.ConvertAll()
		require.NoError(t, err)
		assert.Equal(t, 1, result.Converted)
	}

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, demoHTML, string(data))
}

func TestNew_Defaults(t *testing.T) {
	c := New(types.ConverterConfig{}, nil, nil)
	assert.Equal(t, types.ConverterConfig{
		InputDir:  types.DefaultInputDir,
		OutputDir: types.DefaultOutputDir,
		Pattern:   types.DefaultPattern,
	}, c.Config())
}
