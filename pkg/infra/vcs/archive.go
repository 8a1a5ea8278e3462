package vcs

import (
	"archive/tar"
	"archive/zip"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/relpack/pkg/domain/model"
	"github.com/secmon-lab/relpack/pkg/domain/types"
	"github.com/secmon-lab/relpack/pkg/utils/logging"
	"github.com/secmon-lab/relpack/pkg/utils/safe"
)

// ArchiveViaVCS writes the tree of the HEAD commit into outputDir/name. Only committed,
// tracked content is included: ignored, untracked and modified files on disk are not, and
// neither is submodule content. This differs from archive.Archive, which packs the working
// tree as it is on disk.
func (x *Repository) ArchiveViaVCS(ctx context.Context, outputDir, name string, format model.ArchiveFormat) (string, error) {
	if err := format.Validate(); err != nil {
		return "", goerr.Wrap(err, "invalid archive format", goerr.T(types.ErrTagVCS))
	}
	if st, err := os.Stat(outputDir); err != nil || !st.IsDir() {
		return "", goerr.New("archive output directory not found",
			goerr.T(types.ErrTagArchive),
			goerr.V("output_dir", outputDir),
		)
	}

	head, err := x.repo.Head()
	if err != nil {
		return "", goerr.Wrap(err, "failed to get HEAD", goerr.T(types.ErrTagVCS), goerr.V("dir", x.path))
	}
	commit, err := x.repo.CommitObject(head.Hash())
	if err != nil {
		return "", goerr.Wrap(err, "failed to get HEAD commit", goerr.T(types.ErrTagVCS), goerr.V("hash", head.Hash().String()))
	}
	tree, err := commit.Tree()
	if err != nil {
		return "", goerr.Wrap(err, "failed to get commit tree", goerr.T(types.ErrTagVCS), goerr.V("hash", head.Hash().String()))
	}

	dst := filepath.Join(outputDir, name)
	tmp, err := os.CreateTemp(outputDir, "."+name+".*.tmp")
	if err != nil {
		return "", goerr.Wrap(err, "failed to create archive file", goerr.T(types.ErrTagArchive), goerr.V("output_dir", outputDir))
	}
	tmpName := tmp.Name()
	defer safe.Remove(tmpName)

	modTime := commit.Committer.When
	var count int
	switch format {
	case model.ArchiveFormatZip:
		count, err = writeTreeZip(tmp, tree, modTime)
	case model.ArchiveFormatTar:
		count, err = writeTreeTar(tmp, tree, modTime)
	case model.ArchiveFormatTarGz:
		gw := gzip.NewWriter(tmp)
		count, err = writeTreeTar(gw, tree, modTime)
		if err == nil {
			if cerr := gw.Close(); cerr != nil {
				err = goerr.Wrap(cerr, "failed to finalize gzip stream", goerr.T(types.ErrTagArchive))
			}
		}
	}
	if err != nil {
		safe.Close(tmp)
		return "", err
	}
	// CreateTemp leaves the file owner-only
	if err := tmp.Chmod(0o644); err != nil {
		safe.Close(tmp)
		return "", goerr.Wrap(err, "failed to set archive file mode", goerr.T(types.ErrTagArchive), goerr.V("path", tmpName))
	}
	if err := tmp.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to close archive file", goerr.T(types.ErrTagArchive), goerr.V("path", tmpName))
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return "", goerr.Wrap(err, "failed to move archive into place", goerr.T(types.ErrTagArchive), goerr.V("path", dst))
	}

	logging.From(ctx).Info("archived HEAD tree",
		slog.String("path", dst),
		slog.String("commit", commit.Hash.String()),
		slog.Int("files", count),
	)
	return dst, nil
}

func fileMode(m filemode.FileMode) os.FileMode {
	switch m {
	case filemode.Executable:
		return 0o755
	case filemode.Symlink:
		return os.ModeSymlink | 0o777
	default:
		return 0o644
	}
}

func readBlob(f *object.File) ([]byte, error) {
	r, err := f.Reader()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open blob", goerr.T(types.ErrTagVCS), goerr.V("name", f.Name))
	}
	defer safe.Close(r)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read blob", goerr.T(types.ErrTagVCS), goerr.V("name", f.Name))
	}
	return data, nil
}

func writeTreeZip(w io.Writer, tree *object.Tree, modTime time.Time) (int, error) {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})

	var count int
	err := tree.Files().ForEach(func(f *object.File) error {
		data, err := readBlob(f)
		if err != nil {
			return err
		}

		header := &zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: modTime,
		}
		header.SetMode(fileMode(f.Mode))

		entry, err := zw.CreateHeader(header)
		if err != nil {
			return goerr.Wrap(err, "failed to create zip entry", goerr.T(types.ErrTagArchive), goerr.V("name", f.Name))
		}
		if _, err := entry.Write(data); err != nil {
			return goerr.Wrap(err, "failed to write zip entry", goerr.T(types.ErrTagArchive), goerr.V("name", f.Name))
		}
		count++
		return nil
	})
	if err != nil {
		safe.Close(zw)
		return 0, err
	}

	if err := zw.Close(); err != nil {
		return 0, goerr.Wrap(err, "failed to finalize zip", goerr.T(types.ErrTagArchive))
	}
	return count, nil
}

func writeTreeTar(w io.Writer, tree *object.Tree, modTime time.Time) (int, error) {
	tw := tar.NewWriter(w)

	var count int
	err := tree.Files().ForEach(func(f *object.File) error {
		data, err := readBlob(f)
		if err != nil {
			return err
		}

		header := &tar.Header{
			Name:    f.Name,
			Mode:    int64(fileMode(f.Mode).Perm()),
			ModTime: modTime,
		}
		if f.Mode == filemode.Symlink {
			header.Typeflag = tar.TypeSymlink
			header.Linkname = string(data)
			data = nil
		} else {
			header.Typeflag = tar.TypeReg
			header.Size = int64(len(data))
		}

		if err := tw.WriteHeader(header); err != nil {
			return goerr.Wrap(err, "failed to write tar header", goerr.T(types.ErrTagArchive), goerr.V("name", f.Name))
		}
		if len(data) > 0 {
			if _, err := tw.Write(data); err != nil {
				return goerr.Wrap(err, "failed to write tar entry", goerr.T(types.ErrTagArchive), goerr.V("name", f.Name))
			}
		}
		count++
		return nil
	})
	if err != nil {
		return 0, err
	}

	if err := tw.Close(); err != nil {
		return 0, goerr.Wrap(err, "failed to finalize tar", goerr.T(types.ErrTagArchive))
	}
	return count, nil
}
