package cmd

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/ardnew/mung"

	"github.com/ardnew/lox/pkg"
)

// PathEnv names the environment variable holding additional script search
// directories, separated by [os.PathListSeparator].
const PathEnv = "LOXPATH"

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// stdinName is the name reported for a script read from stdin.
const stdinName = "<stdin>"

// Source is one opened script.
type Source struct {
	Name string // resolved path, or "<stdin>"
	io.ReadCloser
}

// SearchPath returns the directories searched for relative script paths not
// found in the working directory: dirs in order, followed by the entries of
// $LOXPATH. Directories that do not exist are dropped.
func SearchPath(dirs ...string) []string {
	joined := mung.Make(
		mung.WithSubjectItems(os.Getenv(PathEnv)),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dirs...),
		mung.WithFilter(isDir),
	).String()

	return filepath.SplitList(joined)
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// OpenSources opens the scripts named by paths, in order.
//
// A path of "-" selects stdin, which is always read after every named file.
// A file reached through more than one path (symlinks, relative and absolute
// spellings) is opened only once. Relative paths missing from the working
// directory are looked up in each directory of search, first with the name
// as given and then with the [pkg.Extension] appended.
//
// On error, every source already opened is closed.
func OpenSources(stdin io.Reader, search []string, paths ...string) (srcs []Source, err error) {
	defer func() {
		if err != nil {
			closeSources(srcs)
			srcs = nil
		}
	}()

	seen := make(map[fileKey]struct{})
	hasStdin := false

	for _, path := range paths {
		if path == stdinSource {
			hasStdin = true

			continue
		}

		resolved, err := resolveSource(path, search)
		if err != nil {
			return srcs, err
		}

		file, ok, err := openUniqueFile(resolved, seen)
		if err != nil {
			return srcs, ErrOpenSource.With(slog.String("path", path)).Wrap(err)
		}

		if ok {
			srcs = append(srcs, Source{Name: resolved, ReadCloser: file})
		}
	}

	if hasStdin {
		srcs = append(srcs, Source{Name: stdinName, ReadCloser: io.NopCloser(stdin)})
	}

	return srcs, nil
}

// closeSources closes each source, ignoring errors.
func closeSources(srcs []Source) {
	for _, src := range srcs {
		_ = src.Close()
	}
}

// resolveSource returns the path of the script named by path.
func resolveSource(path string, search []string) (string, error) {
	candidates := []string{path}

	if filepath.Ext(path) == "" {
		candidates = append(candidates, path+pkg.Extension)
	}

	for _, c := range candidates {
		if exists(c) {
			return c, nil
		}
	}

	if !filepath.IsAbs(path) {
		for _, dir := range search {
			for _, c := range candidates {
				if p := filepath.Join(dir, c); exists(p) {
					return p, nil
				}
			}
		}
	}

	return "", ErrOpenSource.
		With(slog.String("path", path), slog.Int("search_dirs", len(search))).
		Wrap(fs.ErrNotExist)
}

func exists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates.
// Returns false with a nil error if the file is a duplicate.
func openUniqueFile(path string, seen map[fileKey]struct{}) (*os.File, bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false, err
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, false, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false, err
	}

	if key, ok := makeFileKey(info); ok {
		if _, dup := seen[key]; dup {
			return nil, false, nil
		}

		seen[key] = struct{}{}
	}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, false, err
	}

	return file, true, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}
