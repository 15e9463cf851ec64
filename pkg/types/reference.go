// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Citation is one bibliographic entry from a reference file.
type Citation struct {
	// Key identifies the entry, conventionally "<Author>, <Year>". It is used
	// only for ordering and never rendered.
	Key string `json:"key" yaml:"key"`

	// Text is the rendered citation. It may contain inline HTML such as
	// <i> or <a href> and is emitted verbatim.
	Text string `json:"text" yaml:"text"`
}

// ReferenceSet holds the citations of one reference file in the order
// their keys appear in the source document.
type ReferenceSet []Citation

// FileStatus indicates the outcome of converting one reference file.
type FileStatus string

const (
	FileConverted FileStatus = "converted"
	FileFailed    FileStatus = "failed"
)

// FileResult records the outcome of converting one reference file.
type FileResult struct {
	// Input is the path of the reference JSON file.
	Input string `json:"input" yaml:"input"`

	// Output is the path of the HTML fragment (written only on success).
	Output string `json:"output" yaml:"output"`

	// Study is the file name stem without the "_refs" suffix
	// (e.g. "psilodep" for "psilodep_refs.json"). Empty in single-file mode.
	Study string `json:"study,omitempty" yaml:"study,omitempty"`

	// Citations is the number of citations parsed from Input.
	Citations int `json:"citations" yaml:"citations"`

	Status FileStatus `json:"status" yaml:"status"`

	// Error holds the failure cause, including the originating path.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether the file converted successfully.
func (r FileResult) OK() bool {
	return r.Status == FileConverted
}
