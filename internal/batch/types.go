package batch

import (
	"context"

	"batchpix/internal/media"
	"batchpix/internal/preview"
)

// Transform produces the output for the source at index in the current
// selection.
type Transform func(ctx context.Context, index int, src media.SourceFile) (media.SourceFile, error)

// PerFile adapts a transform that does not care about batch position.
func PerFile(fn func(ctx context.Context, src media.SourceFile) (media.SourceFile, error)) Transform {
	return func(ctx context.Context, _ int, src media.SourceFile) (media.SourceFile, error) {
		return fn(ctx, src)
	}
}

// Labeler renders the preview caption of a result.
type Labeler func(src, out media.SourceFile) string

// Operation is one page's worth of behaviour: a name, the single-file
// transform it runs and how its results are captioned.
type Operation struct {
	Name      string
	Transform Transform
	Label     Labeler
}

// Result is the output for one source. It is never modified once a run has
// committed it.
type Result struct {
	// Source is the index of the input the result was derived from.
	Source int
	File   media.SourceFile
	Label  string

	handle *preview.Handle
}

// Failure records a source that was dropped from a run.
type Failure struct {
	Source int
	Name   string
	Err    error
}

// Report summarises a committed run.
type Report struct {
	Operation string
	Total     int
	Succeeded int
	Failed    int
	BytesIn   int64
	BytesOut  int64
	Failures  []Failure
}

// ProgressUpdate carries counter deltas from a running batch to a viewer.
// Current, when set, names the file the run has just started on.
type ProgressUpdate struct {
	Current        string
	TotalDelta     int
	ProcessedDelta int
	ErrorDelta     int
	BytesInDelta   int64
	BytesOutDelta  int64
}
