package pattern_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/relpack/pkg/domain/types"
	"github.com/secmon-lab/relpack/pkg/infra/pattern"
)

func TestParse(t *testing.T) {
	testCases := map[string]struct {
		input string
		want  []string
	}{
		"comments and blanks are skipped": {
			input: "foo\nbar\n# c\n   \nbaz\n",
			want:  []string{"foo", "bar", "baz"},
		},
		"order and duplicates are kept": {
			input: "*.log\n*.tmp\n*.log\n",
			want:  []string{"*.log", "*.tmp", "*.log"},
		},
		"surrounding whitespace is trimmed": {
			input: "  *.log  \n\t# indented comment\n\t.env\n",
			want:  []string{"*.log", ".env"},
		},
		"CRLF line endings": {
			input: "a\r\nb\r\n",
			want:  []string{"a", "b"},
		},
		"empty input": {
			input: "",
			want:  []string{},
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			gt.V(t, pattern.Parse(tc.input)).Equal(tc.want)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("load patterns from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "clean.txt")
		gt.NoError(t, os.WriteFile(path, []byte("*.tmp\n# comment\n\nnode_modules\n"), 0644))

		patterns := gt.R1(pattern.Load(path)).NoError(t)
		gt.V(t, patterns).Equal([]string{"*.tmp", "node_modules"})
	})

	t.Run("missing file is a file access error", func(t *testing.T) {
		_, err := pattern.Load(filepath.Join(t.TempDir(), "missing.txt"))
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagFileAccess))
		gt.V(t, goerr.Unwrap(err).Values()["reason"]).Equal(types.ReasonNotFound)
	})

	t.Run("directory is a file access error", func(t *testing.T) {
		_, err := pattern.Load(t.TempDir())
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagFileAccess))
	})
}
