// Package fsutil provides filesystem helpers. Every failure is tagged with
// types.ErrTagFileAccess and carries a "reason" value so that callers can tell
// not_found, wrong_type, permission and io conditions apart.
package fsutil

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/relpack/pkg/domain/types"
	"github.com/secmon-lab/relpack/pkg/utils/safe"
)

const defaultDirPerm = 0o755

func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func IsDirectory(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

func IsFile(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}

// MakeDirectory creates a single directory. The parent must exist.
func MakeDirectory(path string) error {
	if err := os.Mkdir(path, defaultDirPerm); err != nil {
		return wrapFileAccess(err, "failed to create directory", path)
	}
	return nil
}

// EnsureDirectory creates path and any missing parents, or accepts an existing directory
func EnsureDirectory(path string) error {
	if Exists(path) && !IsDirectory(path) {
		return wrongType("path exists but is not a directory", path)
	}
	if err := os.MkdirAll(path, defaultDirPerm); err != nil {
		return wrapFileAccess(err, "failed to create directory", path)
	}
	return nil
}

// EmptyDirectoryContents removes everything under path and leaves path itself in place
func EmptyDirectoryContents(path string) error {
	if !Exists(path) {
		return notFound("directory not found", path)
	}
	if !IsDirectory(path) {
		return wrongType("path is not a directory", path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return wrapFileAccess(err, "failed to read directory", path)
	}
	for _, entry := range entries {
		target := filepath.Join(path, entry.Name())
		if err := os.RemoveAll(target); err != nil {
			return wrapFileAccess(err, "failed to remove directory entry", target)
		}
	}

	return nil
}

// PrepareDirectory creates path when it does not exist and empties it when it does.
// A path that exists but is not a directory is rejected without touching it.
func PrepareDirectory(path string) error {
	if !Exists(path) {
		return EnsureDirectory(path)
	}
	return EmptyDirectoryContents(path)
}

// DeletePath removes a file, or a directory recursively
func DeletePath(path string) error {
	if _, err := os.Lstat(path); err != nil {
		return wrapFileAccess(err, "path to delete not found", path)
	}
	if err := os.RemoveAll(path); err != nil {
		return wrapFileAccess(err, "failed to delete path", path)
	}
	return nil
}

// CopyTree copies src to dst. dst must not exist; it is created as a copy of src.
func CopyTree(src, dst string) error {
	if !IsDirectory(src) {
		if !Exists(src) {
			return notFound("copy source not found", src)
		}
		return wrongType("copy source is not a directory", src)
	}
	if Exists(dst) {
		return goerr.Wrap(types.ErrWrongType, "copy destination already exists",
			goerr.T(types.ErrTagFileAccess),
			goerr.V("path", dst),
			goerr.V("reason", types.ReasonWrongType),
		)
	}
	if err := os.MkdirAll(dst, defaultDirPerm); err != nil {
		return wrapFileAccess(err, "failed to create copy destination", dst)
	}

	return copyContents(src, dst)
}

// CopyTreeContentsInto copies the entries of src into an existing dst directory, overwriting files
func CopyTreeContentsInto(src, dst string) error {
	if !IsDirectory(src) {
		if !Exists(src) {
			return notFound("copy source not found", src)
		}
		return wrongType("copy source is not a directory", src)
	}
	if !IsDirectory(dst) {
		if !Exists(dst) {
			return notFound("copy destination not found", dst)
		}
		return wrongType("copy destination is not a directory", dst)
	}

	return copyContents(src, dst)
}

func copyContents(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return wrapFileAccess(err, "failed to walk copy source", path)
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return wrapFileAccess(err, "failed to resolve relative path", path)
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return wrapFileAccess(err, "failed to stat copy source entry", path)
		}

		switch {
		case d.IsDir():
			if err := os.MkdirAll(target, info.Mode().Perm()|0o700); err != nil {
				return wrapFileAccess(err, "failed to create directory", target)
			}
		case info.Mode()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return wrapFileAccess(err, "failed to read symlink", path)
			}
			_ = os.Remove(target)
			if err := os.Symlink(link, target); err != nil {
				return wrapFileAccess(err, "failed to create symlink", target)
			}
		case info.Mode().IsRegular():
			if err := copyFile(path, target, info.Mode().Perm()); err != nil {
				return err
			}
		}
		return nil
	})
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(filepath.Clean(src))
	if err != nil {
		return wrapFileAccess(err, "failed to open file", src)
	}
	defer safe.Close(in)

	out, err := os.OpenFile(filepath.Clean(dst), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return wrapFileAccess(err, "failed to create file", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		safe.Close(out)
		return wrapFileAccess(err, "failed to copy file", dst)
	}
	if err := out.Close(); err != nil {
		return wrapFileAccess(err, "failed to close file", dst)
	}
	return nil
}

// RemoveMatchingFiles walks root and deletes every file whose base name matches one of
// patterns. Matching is case sensitive. Directories are kept even when emptied. It returns
// the removed paths in walk order.
func RemoveMatchingFiles(root string, patterns []string) ([]string, error) {
	if !IsDirectory(root) {
		if !Exists(root) {
			return nil, notFound("clean root not found", root)
		}
		return nil, wrongType("clean root is not a directory", root)
	}

	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid clean pattern",
				goerr.T(types.ErrTagConfiguration),
				goerr.V("pattern", p),
			)
		}
		globs = append(globs, g)
	}

	var removed []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return wrapFileAccess(err, "failed to walk directory", path)
		}
		if d.IsDir() {
			return nil
		}

		for _, g := range globs {
			if g.Match(d.Name()) {
				if err := os.Remove(path); err != nil {
					return wrapFileAccess(err, "failed to remove matching file", path)
				}
				removed = append(removed, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return removed, nil
}

// FindNewestFile returns the file in dir (not recursive) matching pattern with the latest
// modification time. Equal times are resolved by the lexicographically greatest name.
func FindNewestFile(dir, pattern string) (string, error) {
	if !IsDirectory(dir) {
		if !Exists(dir) {
			return "", notFound("directory not found", dir)
		}
		return "", wrongType("path is not a directory", dir)
	}

	g, err := glob.Compile(pattern)
	if err != nil {
		return "", goerr.Wrap(err, "invalid file pattern",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("pattern", pattern),
		)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", wrapFileAccess(err, "failed to read directory", dir)
	}

	type candidate struct {
		name    string
		modTime int64
	}
	var candidates []candidate
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !g.Match(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return "", wrapFileAccess(err, "failed to stat file", filepath.Join(dir, entry.Name()))
		}
		candidates = append(candidates, candidate{name: entry.Name(), modTime: info.ModTime().UnixNano()})
	}

	if len(candidates) == 0 {
		return "", goerr.Wrap(types.ErrNotFound, "no file matches pattern",
			goerr.T(types.ErrTagFileAccess),
			goerr.V("dir", dir),
			goerr.V("pattern", pattern),
			goerr.V("reason", types.ReasonNotFound),
		)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].modTime != candidates[j].modTime {
			return candidates[i].modTime > candidates[j].modTime
		}
		return candidates[i].name > candidates[j].name
	})

	return filepath.Join(dir, candidates[0].name), nil
}

// BuildPath joins parts with the OS separator, skipping empty parts. No parts yields "".
func BuildPath(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return filepath.Join(kept...)
}

func ReadAllText(path string) (string, error) {
	if !Exists(path) {
		return "", notFound("file not found", path)
	}
	if !IsFile(path) {
		return "", wrongType("path is not a regular file", path)
	}

	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", wrapFileAccess(err, "failed to read file", path)
	}
	return string(raw), nil
}

func WriteAllText(path, text string) error {
	if IsDirectory(path) {
		return wrongType("path is a directory", path)
	}
	if err := os.WriteFile(filepath.Clean(path), []byte(text), 0o644); err != nil {
		return wrapFileAccess(err, "failed to write file", path)
	}
	return nil
}
