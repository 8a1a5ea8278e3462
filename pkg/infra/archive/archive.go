// Package archive packs a directory tree on disk into a zip file.
package archive

import (
	"archive/zip"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/klauspost/compress/flate"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/relpack/pkg/domain/types"
	"github.com/secmon-lab/relpack/pkg/utils/safe"
)

type options struct {
	excludeDirs  map[string]struct{}
	excludeFiles map[string]struct{}
	level        int
}

type Option func(*options)

// WithExcludeDirs skips top level directories of the source with the given names, e.g. ".git"
func WithExcludeDirs(names ...string) Option {
	return func(o *options) {
		for _, name := range names {
			o.excludeDirs[name] = struct{}{}
		}
	}
}

// WithCompressionLevel sets the deflate level (flate.BestSpeed .. flate.BestCompression)
func WithCompressionLevel(level int) Option {
	return func(o *options) {
		o.level = level
	}
}

// Archive writes every file under srcDir into outputDir/outputName as a zip file with paths
// relative to srcDir. An existing file at that path is overwritten. It returns the path of
// the created archive.
func Archive(srcDir, outputDir, outputName string, opts ...Option) (string, error) {
	cfg := &options{
		excludeDirs:  map[string]struct{}{},
		excludeFiles: map[string]struct{}{},
		level:        flate.DefaultCompression,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if st, err := os.Stat(srcDir); err != nil || !st.IsDir() {
		return "", goerr.New("archive source directory not found",
			goerr.T(types.ErrTagArchive),
			goerr.V("src", srcDir),
		)
	}
	if st, err := os.Stat(outputDir); err != nil || !st.IsDir() {
		return "", goerr.New("archive output directory not found",
			goerr.T(types.ErrTagArchive),
			goerr.V("output_dir", outputDir),
		)
	}

	dst := filepath.Join(outputDir, outputName)

	tmp, err := os.CreateTemp(outputDir, "."+outputName+".*.tmp")
	if err != nil {
		return "", goerr.Wrap(err, "failed to create archive file",
			goerr.T(types.ErrTagArchive),
			goerr.V("output_dir", outputDir),
		)
	}
	tmpName := tmp.Name()
	defer safe.Remove(tmpName)

	// The output may live inside the source tree; never pack the archive into itself
	for _, p := range []string{dst, tmpName} {
		if abs, err := filepath.Abs(p); err == nil {
			cfg.excludeFiles[abs] = struct{}{}
		}
	}

	if err := writeZip(tmp, srcDir, cfg); err != nil {
		safe.Close(tmp)
		return "", err
	}
	// CreateTemp leaves the file owner-only
	if err := tmp.Chmod(0o644); err != nil {
		safe.Close(tmp)
		return "", goerr.Wrap(err, "failed to set archive file mode",
			goerr.T(types.ErrTagArchive),
			goerr.V("path", tmpName),
		)
	}
	if err := tmp.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to close archive file",
			goerr.T(types.ErrTagArchive),
			goerr.V("path", tmpName),
		)
	}

	if err := os.Rename(tmpName, dst); err != nil {
		return "", goerr.Wrap(err, "failed to move archive into place",
			goerr.T(types.ErrTagArchive),
			goerr.V("path", dst),
		)
	}

	return dst, nil
}

func writeZip(w io.Writer, srcDir string, cfg *options) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, cfg.level)
	})

	walkErr := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return goerr.Wrap(err, "failed to walk archive source",
				goerr.T(types.ErrTagArchive),
				goerr.V("path", path),
			)
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return goerr.Wrap(err, "failed to resolve relative path",
				goerr.T(types.ErrTagArchive),
				goerr.V("path", path),
			)
		}
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if _, ok := cfg.excludeDirs[rel]; ok {
				return filepath.SkipDir
			}
			return nil
		}
		if abs, err := filepath.Abs(path); err == nil {
			if _, ok := cfg.excludeFiles[abs]; ok {
				return nil
			}
		}

		info, err := d.Info()
		if err != nil {
			return goerr.Wrap(err, "failed to stat file",
				goerr.T(types.ErrTagArchive),
				goerr.V("path", path),
			)
		}
		return addEntry(zw, path, filepath.ToSlash(rel), info)
	})
	if walkErr != nil {
		safe.Close(zw)
		return walkErr
	}

	if err := zw.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize zip", goerr.T(types.ErrTagArchive))
	}
	return nil
}

func addEntry(zw *zip.Writer, path, name string, info fs.FileInfo) error {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return goerr.Wrap(err, "failed to build zip header",
			goerr.T(types.ErrTagArchive),
			goerr.V("path", path),
		)
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return goerr.Wrap(err, "failed to create zip entry",
			goerr.T(types.ErrTagArchive),
			goerr.V("name", name),
		)
	}

	if info.Mode()&fs.ModeSymlink != 0 {
		link, err := os.Readlink(path)
		if err != nil {
			return goerr.Wrap(err, "failed to read symlink",
				goerr.T(types.ErrTagArchive),
				goerr.V("path", path),
			)
		}
		if _, err := io.WriteString(w, link); err != nil {
			return goerr.Wrap(err, "failed to write symlink entry",
				goerr.T(types.ErrTagArchive),
				goerr.V("name", name),
			)
		}
		return nil
	}

	if !info.Mode().IsRegular() {
		return nil
	}

	fd, err := os.Open(filepath.Clean(path))
	if err != nil {
		return goerr.Wrap(err, "failed to open file",
			goerr.T(types.ErrTagArchive),
			goerr.V("path", path),
		)
	}
	defer safe.Close(fd)

	if _, err := io.Copy(w, fd); err != nil {
		return goerr.Wrap(err, "failed to write zip entry",
			goerr.T(types.ErrTagArchive),
			goerr.V("name", name),
		)
	}
	return nil
}

// List returns the slash separated file names stored in a zip archive, sorted
func List(path string) ([]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(err, "archive not found",
				goerr.T(types.ErrTagArchive),
				goerr.V("path", path),
			)
		}
		return nil, goerr.Wrap(err, "failed to open archive",
			goerr.T(types.ErrTagArchive),
			goerr.V("path", path),
		)
	}
	defer safe.Close(zr)

	var names []string
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names, nil
}
