// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns citation JSON files into HTML ordered-list fragments.
// A reference file maps citation keys such as "Griffiths, 2016" to citation
// text; the fragment lists the texts ordered by the year in each key.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/refconvert/pkg/types"
)

const (
	// refsSuffix marks reference files: "<study>_refs.json".
	refsSuffix = "_refs"
	// htmlExt is the extension of rendered fragments.
	htmlExt = ".html"
)

// Job pairs a discovered reference file with its output path.
type Job struct {
	Input  string
	Output string
	Study  string
}

// BatchResult holds the outcome of a directory conversion run.
type BatchResult struct {
	Converted int                `json:"converted" yaml:"converted"`
	Failed    int                `json:"failed" yaml:"failed"`
	Files     []types.FileResult `json:"files" yaml:"files"`
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Converter runs conversions against a fixed pair of directories. Progress
// lines go to the writer; diagnostics go to the logger.
type Converter struct {
	cfg types.ConverterConfig
	w   io.Writer
	log *zap.Logger
}

// New returns a Converter for cfg. Empty config fields take their defaults.
// A nil logger discards diagnostics.
func New(cfg types.ConverterConfig, w io.Writer, log *zap.Logger) *Converter {
	if w == nil {
		w = io.Discard
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Converter{cfg: cfg.WithDefaults(), w: w, log: log}
}

// Config returns the resolved configuration.
func (c *Converter) Config() types.ConverterConfig {
	return c.cfg
}

// ConvertOne converts a single reference file to an HTML fragment. The
// output file is written only after the whole file has parsed and rendered,
// so a failure never leaves a partial or empty fragment behind.
func (c *Converter) ConvertOne(input, output string) types.FileResult {
	result := types.FileResult{Input: input, Output: output}

	set, err := LoadReferences(input)
	if err != nil {
		return c.fail(result, err)
	}
	result.Citations = len(set)
	fmt.Fprintf(c.w, "Parsed %d citations from %s\n", len(set), input)
	c.log.Debug("loaded references", zap.String("path", input), zap.Int("citations", len(set)))

	html := RenderHTML(OrderCitations(set))

	if err := WriteOutput(html, output); err != nil {
		return c.fail(result, err)
	}
	fmt.Fprintf(c.w, "HTML file written to: %s\n", output)
	c.log.Debug("wrote fragment", zap.String("path", output), zap.Int("bytes", len(html)))

	result.Status = types.FileConverted
	return result
}

func (c *Converter) fail(result types.FileResult, err error) types.FileResult {
	fmt.Fprintf(c.w, "Error processing %s: %v\n", result.Input, err)
	c.log.Warn("conversion failed", zap.String("path", result.Input), zap.Error(err))
	result.Status = types.FileFailed
	result.Error = err.Error()
	return result
}

// Plan lists the reference files in the input directory that match the
// configured pattern, sorted by name, with their output paths. A missing
// input directory yields no jobs and no error.
func (c *Converter) Plan() ([]Job, error) {
	if _, err := filepath.Match(c.cfg.Pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", c.cfg.Pattern, err)
	}

	entries, err := os.ReadDir(c.cfg.InputDir)
	if err != nil {
		if os.IsNotExist(err) {
			c.log.Debug("input directory does not exist", zap.String("dir", c.cfg.InputDir))
			return nil, nil
		}
		return nil, fmt.Errorf("reading input directory %s: %w", c.cfg.InputDir, err)
	}

	var jobs []Job
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if ok, _ := filepath.Match(c.cfg.Pattern, name); !ok {
			continue
		}
		study := StudyName(name)
		jobs = append(jobs, Job{
			Input:  filepath.Join(c.cfg.InputDir, name),
			Output: filepath.Join(c.cfg.OutputDir, study+refsSuffix+htmlExt),
			Study:  study,
		})
	}
	return jobs, nil
}

// StudyName derives the study name from a reference file name:
// "psilodep_refs.json" yields "psilodep".
func StudyName(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.TrimSuffix(stem, refsSuffix)
}

// ConvertAll converts every reference file found by Plan. Each file is
// converted independently; a failure is recorded in the result and the run
// continues. An error is returned only when the input directory cannot be
// listed.
func (c *Converter) ConvertAll() (BatchResult, error) {
	jobs, err := c.Plan()
	if err != nil {
		return BatchResult{}, err
	}

	result := BatchResult{Files: []types.FileResult{}}
	if len(jobs) == 0 {
		fmt.Fprintf(c.w, "No files matching pattern '%s' found in %s\n", c.cfg.Pattern, c.cfg.InputDir)
		return result, nil
	}

	for _, job := range jobs {
		fmt.Fprintf(c.w, "Processing: %s -> %s\n", filepath.Base(job.Input), filepath.Base(job.Output))
		fr := c.ConvertOne(job.Input, job.Output)
		fr.Study = job.Study
		if fr.OK() {
			result.Converted++
		} else {
			result.Failed++
		}
		result.Files = append(result.Files, fr)
	}

	fmt.Fprintf(c.w, "\nBatch summary: %d converted, %d failed (total: %d)\n",
		result.Converted, result.Failed, result.Total())
	return result, nil
}
