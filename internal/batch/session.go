// Package batch holds the selection, the latest results and the preview
// handles of one operation, and runs the operation's transform over the
// selection.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"batchpix/internal/download"
	"batchpix/internal/media"
	"batchpix/internal/preview"
)

var (
	ErrEmptyBatch      = errors.New("no files selected")
	ErrSuperseded      = errors.New("batch superseded by a newer selection or run")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Session is the state behind one page. Only one run commits at a time; a
// run that finishes after a newer selection, clear or run has started is
// discarded.
type Session struct {
	op      Operation
	logger  *slog.Logger
	handles *preview.Registry

	mu            sync.Mutex
	sources       []media.SourceFile
	sourceHandles []*preview.Handle
	results       []*Result
	failures      []Failure
	generation    uint64
}

func NewSession(op Operation, handles *preview.Registry, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if handles == nil {
		handles = preview.NewRegistry()
	}
	if op.Label == nil {
		op.Label = func(_, out media.SourceFile) string { return preview.SizeLabel(out.Size()) }
	}
	return &Session{
		op:      op,
		logger:  logger.With("op", op.Name),
		handles: handles,
	}
}

// Select replaces the selection wholesale. Every handle of the previous
// selection and its results is released.
func (s *Session) Select(files []media.SourceFile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.releaseAllLocked()
	s.sources = slices.Clone(files)
	s.sourceHandles = make([]*preview.Handle, len(files))
}

// Clear empties the selection and the results.
func (s *Session) Clear() {
	s.Select(nil)
}

// Remove drops the source at index together with its result, if any.
func (s *Session) Remove(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.sources) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}

	s.generation++
	s.revokeLocked(s.sourceHandles[index])
	s.sources = slices.Delete(s.sources, index, index+1)
	s.sourceHandles = slices.Delete(s.sourceHandles, index, index+1)

	kept := s.results[:0]
	for _, r := range s.results {
		switch {
		case r.Source == index:
			s.revokeLocked(r.handle)
			continue
		case r.Source > index:
			r.Source--
		}
		kept = append(kept, r)
	}
	clear(s.results[len(kept):])
	s.results = kept

	failures := s.failures[:0]
	for _, f := range s.failures {
		switch {
		case f.Source == index:
			continue
		case f.Source > index:
			f.Source--
		}
		failures = append(failures, f)
	}
	s.failures = failures

	return nil
}

// Run applies the operation to every selected file in order. A file whose
// transform fails is logged and left out of the results; the rest of the
// batch still runs. If ctx is cancelled the partial run is discarded.
func (s *Session) Run(ctx context.Context, updates chan<- ProgressUpdate) (Report, error) {
	s.mu.Lock()
	if len(s.sources) == 0 {
		s.mu.Unlock()
		return Report{}, ErrEmptyBatch
	}
	s.generation++
	gen := s.generation
	sources := slices.Clone(s.sources)
	s.mu.Unlock()

	report := Report{Operation: s.op.Name, Total: len(sources)}
	send(updates, ProgressUpdate{TotalDelta: len(sources)})

	results := make([]*Result, 0, len(sources))
	var failures []Failure

	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}

		send(updates, ProgressUpdate{Current: src.Name})
		out, err := s.op.Transform(ctx, i, src)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Report{}, ctxErr
			}
			s.logger.Warn("transform failed", "file", src.Name, "index", i, "error", err)
			failures = append(failures, Failure{Source: i, Name: src.Name, Err: err})
			send(updates, ProgressUpdate{ErrorDelta: 1})
			continue
		}

		results = append(results, &Result{Source: i, File: out, Label: s.op.Label(src, out)})
		report.BytesIn += src.Size()
		report.BytesOut += out.Size()
		send(updates, ProgressUpdate{
			ProcessedDelta: 1,
			BytesInDelta:   src.Size(),
			BytesOutDelta:  out.Size(),
		})
	}

	report.Succeeded = len(results)
	report.Failed = len(failures)
	report.Failures = failures

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.Debug("discarding superseded run", "results", len(results))
		return Report{}, ErrSuperseded
	}

	s.releaseResultsLocked()
	s.results = results
	s.failures = failures

	s.logger.Info("batch complete",
		"total", report.Total,
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"bytes_in", report.BytesIn,
		"bytes_out", report.BytesOut,
	)
	return report, nil
}

// Sources returns the current selection.
func (s *Session) Sources() []media.SourceFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.sources)
}

// Results returns the committed results in input order.
func (s *Session) Results() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Result, 0, len(s.results))
	for _, r := range s.results {
		out = append(out, Result{Source: r.Source, File: r.File, Label: r.Label})
	}
	return out
}

// Failures returns the files dropped by the last committed run.
func (s *Session) Failures() []Failure {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.failures)
}

// Preview returns the handle of result i, issuing it on first use.
func (s *Session) Preview(i int) (preview.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.results) {
		return preview.Handle{}, fmt.Errorf("%w: result %d", ErrIndexOutOfRange, i)
	}
	r := s.results[i]
	if r.handle == nil {
		h := s.handles.Issue(r.File, r.Label)
		r.handle = &h
	}
	return *r.handle, nil
}

// PreviewSource returns the handle of source i, issuing it on first use.
func (s *Session) PreviewSource(i int) (preview.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.sources) {
		return preview.Handle{}, fmt.Errorf("%w: source %d", ErrIndexOutOfRange, i)
	}
	if s.sourceHandles[i] == nil {
		h := s.handles.Issue(s.sources[i], "Original")
		s.sourceHandles[i] = &h
	}
	return *s.sourceHandles[i], nil
}

// Download saves result i.
func (s *Session) Download(ctx context.Context, i int, saver download.Saver) (string, error) {
	s.mu.Lock()
	if i < 0 || i >= len(s.results) {
		s.mu.Unlock()
		return "", fmt.Errorf("%w: result %d", ErrIndexOutOfRange, i)
	}
	f := s.results[i].File
	s.mu.Unlock()

	return saver.Save(ctx, f)
}

// DownloadAll saves every result in result order. A failed save does not
// stop the others; all errors are returned joined.
func (s *Session) DownloadAll(ctx context.Context, saver download.Saver) ([]string, error) {
	s.mu.Lock()
	files := make([]media.SourceFile, 0, len(s.results))
	for _, r := range s.results {
		files = append(files, r.File)
	}
	s.mu.Unlock()

	var (
		paths []string
		errs  []error
	)
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		path, err := saver.Save(ctx, f)
		if err != nil {
			s.logger.Warn("save failed", "file", f.Name, "error", err)
			errs = append(errs, fmt.Errorf("save %s: %w", f.Name, err))
			continue
		}
		paths = append(paths, path)
	}
	return paths, errors.Join(errs...)
}

func (s *Session) releaseAllLocked() {
	for _, h := range s.sourceHandles {
		s.revokeLocked(h)
	}
	s.sourceHandles = nil
	s.sources = nil
	s.releaseResultsLocked()
}

func (s *Session) releaseResultsLocked() {
	for _, r := range s.results {
		s.revokeLocked(r.handle)
	}
	s.results = nil
	s.failures = nil
}

func (s *Session) revokeLocked(h *preview.Handle) {
	if h == nil {
		return
	}
	s.handles.Revoke(h.ID)
}

func send(updates chan<- ProgressUpdate, u ProgressUpdate) {
	if updates != nil {
		updates <- u
	}
}
