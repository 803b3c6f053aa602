package lint

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"flint/archive"
	"flint/match"
	"flint/state"
)

// source is a single CSS or HTML text scheduled for evaluation. Name is the
// path reported in violation locations, relative to the walk root when the
// input was a directory or archive.
type source struct {
	name string
	kind string
	data []byte
}

// gather resolves a single SOURCE argument into lintable texts. It determines
// the input type (directory, archive, or single file) and collects
// accordingly. Archives may carry a path inside the archive after the archive
// name, same as directories do on disk.
func gather(ctx context.Context, src string, log *zap.Logger) ([]source, error) {

	src, err := filepath.Abs(src)
	if err != nil {
		return nil, err
	}

	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return nil, fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			return gatherDir(ctx, head, log)
		}

		if !fi.Mode().IsRegular() {
			return nil, fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			return nil, fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			return gatherArchive(ctx, head, filepath.ToSlash(tail), log)
		}

		if kind := match.KindForName(head); len(kind) != 0 && len(tail) == 0 {
			s, err := readSource(head, filepath.Base(head), kind)
			if err != nil {
				return nil, err
			}
			if s == nil {
				return nil, fmt.Errorf("input is not a text file (%s)", head)
			}
			return []source{*s}, nil
		}
		return nil, fmt.Errorf("input was not recognized as CSS or HTML (%s)", head)
	}
	return nil, fmt.Errorf("input source was not found (%s)", src)
}

// gatherDir walks directory tree collecting css and html files.
func gatherDir(ctx context.Context, dir string, log *zap.Logger) (srcs []source, err error) {
	defer func() {
		if err == nil && len(srcs) == 0 {
			log.Debug("Nothing to lint", zap.String("dir", dir))
		}
	}()

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		isArchive, err := isArchiveFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if isArchive {
			nested, err := gatherArchive(ctx, path, "", log)
			if err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
				return nil
			}
			srcs = append(srcs, nested...)
			return nil
		}

		kind := match.KindForName(path)
		if len(kind) == 0 {
			return nil
		}

		name := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		s, err := readSource(path, name, kind)
		if err != nil {
			log.Error("Unable to read file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if s == nil {
			log.Warn("Skipping file, content does not look like text", zap.String("file", path))
			return nil
		}
		srcs = append(srcs, *s)
		return nil
	})
	return srcs, err
}

// gatherArchive collects css and html files inside archive under "pathIn".
func gatherArchive(ctx context.Context, path, pathIn string, log *zap.Logger) (srcs []source, err error) {
	defer func() {
		if err == nil && len(srcs) == 0 {
			log.Debug("Nothing to lint", zap.String("archive", path))
		}
	}()

	cp := state.EnvFromContext(ctx).CodePage

	err = archive.Walk(path, pathIn,
		func(name string) bool { return len(match.KindForName(name)) != 0 },
		func(arc string, f *zip.File) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			r, err := f.Open()
			if err != nil {
				log.Error("Unable to read file in archive",
					zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Error(err))
				return nil
			}
			defer r.Close()

			data, err := io.ReadAll(r)
			if err != nil {
				log.Error("Unable to read file in archive",
					zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Error(err))
				return nil
			}

			name := f.FileHeader.Name
			if cp != nil && f.FileHeader.NonUTF8 {
				// forcing zip file name encoding
				if n, err := cp.NewDecoder().String(name); err == nil {
					name = n
				} else {
					n, _ = ianaindex.IANA.Name(cp)
					log.Warn("Unable to convert archive name from specified encoding",
						zap.String("charset", n), zap.String("path", name), zap.Error(err))
				}
			}

			if looksBinary(data) {
				log.Warn("Skipping file in archive, content does not look like text",
					zap.String("archive", arc), zap.String("file", name))
				return nil
			}

			srcs = append(srcs, source{name: name, kind: match.KindForName(f.FileHeader.Name), data: data})
			return nil
		})
	return srcs, err
}

// readSource reads a file from disk, returning nil when the content is not
// text. Name is the path to report in violation locations.
func readSource(path, name, kind string) (*source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if looksBinary(data) {
		return nil, nil
	}
	return &source{name: filepath.ToSlash(name), kind: kind, data: data}, nil
}
