// Package picker selects the input files of a batch, the way a file dialog
// with an accept filter would.
package picker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"batchpix/internal/media"
)

// ErrNothingSelected is returned when no path matched the accept filter.
var ErrNothingSelected = errors.New("no matching files selected")

type Options struct {
	// Accept is a comma separated list in HTML accept syntax: media types
	// ("image/png"), wildcards ("image/*") or extensions (".jpg"). Empty
	// accepts everything.
	Accept string
	// Multiple keeps every match; otherwise only the first one is kept.
	Multiple bool
	// Exclude is a directory that is never descended into, typically the
	// output directory when it sits inside an input directory.
	Exclude string
}

// Select reads the files named by paths. Directories are walked in lexical
// order. Files that do not match opts.Accept are skipped silently.
func Select(ctx context.Context, paths []string, opts Options) ([]media.SourceFile, error) {
	filter := parseAccept(opts.Accept)

	var excludeAbs string
	if opts.Exclude != "" {
		if abs, err := filepath.Abs(opts.Exclude); err == nil {
			excludeAbs = filepath.Clean(abs)
		}
	}

	var selected []media.SourceFile
	full := func() bool { return !opts.Multiple && len(selected) > 0 }

	add := func(path string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !filter.matches(path) {
			return nil
		}
		f, err := media.ReadFile(path)
		if err != nil {
			return err
		}
		selected = append(selected, f)
		return nil
	}

	for _, root := range paths {
		if full() {
			break
		}

		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if err := add(root); err != nil {
				return nil, err
			}
			continue
		}

		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}

		err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				if excludeAbs != "" && path != absRoot && isWithin(path, excludeAbs) {
					return fs.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if err := add(path); err != nil {
				return err
			}
			if full() {
				return fs.SkipAll
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	if len(selected) == 0 {
		return nil, ErrNothingSelected
	}
	return selected, nil
}

type acceptFilter struct {
	exts     []string
	types    []string
	prefixes []string
}

func parseAccept(accept string) acceptFilter {
	var f acceptFilter
	for _, token := range strings.Split(accept, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		switch {
		case token == "":
		case token == "*/*" || token == "*":
			f.prefixes = append(f.prefixes, "")
		case strings.HasPrefix(token, "."):
			f.exts = append(f.exts, token)
		case strings.HasSuffix(token, "/*"):
			f.prefixes = append(f.prefixes, strings.TrimSuffix(token, "*"))
		default:
			f.types = append(f.types, token)
		}
	}
	return f
}

func (f acceptFilter) matches(path string) bool {
	if len(f.exts) == 0 && len(f.types) == 0 && len(f.prefixes) == 0 {
		return true
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range f.exts {
		if ext == e {
			return true
		}
	}

	mediaType := media.TypeByName(path)
	if mediaType == "" {
		if kind, err := sniffPath(path); err == nil {
			mediaType = kind
		}
	}
	if mediaType == "" {
		return false
	}
	for _, t := range f.types {
		if mediaType == t {
			return true
		}
	}
	for _, p := range f.prefixes {
		if strings.HasPrefix(mediaType, p) {
			return true
		}
	}
	return false
}

func isWithin(path string, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
