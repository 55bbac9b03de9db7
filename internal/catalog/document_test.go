package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFileList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fileToWriteToOpenSearch.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadFileList(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"simple", "path/a.csv\npath/b.csv\n", []string{"path/a.csv", "path/b.csv"}},
		{"no trailing newline", "path/a.csv\npath/b.csv", []string{"path/a.csv", "path/b.csv"}},
		{"blank lines skipped", "path/a.csv\n\n\npath/b.csv\n", []string{"path/a.csv", "path/b.csv"}},
		{"whitespace trimmed", "  path/a.csv \n\tpath/b.csv\t\n", []string{"path/a.csv", "path/b.csv"}},
		{"crlf", "path/a.csv\r\npath/b.csv\r\n", []string{"path/a.csv", "path/b.csv"}},
		{"empty file", "", nil},
		{"only blanks", "\n   \n\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFileList(writeFileList(t, tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadFileListMissingFile(t *testing.T) {
	_, err := ReadFileList(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestBuildDocuments(t *testing.T) {
	paths := []string{"path/a.csv", "path/b.csv", "path/c.csv"}

	docs := BuildDocuments(paths, "my-bucket", "eu-west-1")
	require.Len(t, docs, len(paths))

	for i, doc := range docs {
		assert.Equal(t, paths[i], doc.FileName)
		assert.Equal(t, paths[i], doc.ID())
		assert.Equal(t, "my-bucket", doc.Bucket)
		assert.Equal(t, "my-bucket", doc.Project)
		assert.Equal(t, "eu-west-1", doc.Region)
		assert.Equal(t, "eu-west-1", doc.DaskPool)
	}
}

func TestBuildDocumentsEmpty(t *testing.T) {
	docs := BuildDocuments(nil, "my-bucket", "eu-west-1")
	assert.Empty(t, docs)
}
