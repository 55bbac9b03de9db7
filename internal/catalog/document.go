// Package catalog builds the file-catalog documents indexed into OpenSearch.
package catalog

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Document describes one file tracked in the catalog index. The document
// id is the file path itself, so re-running the refresh overwrites rather
// than duplicates.
type Document struct {
	FileName string `json:"fileName"`
	Bucket   string `json:"bucket"`
	Region   string `json:"region"`
	DaskPool string `json:"dask_pool"`
	Project  string `json:"project"`
}

// ID returns the document id used in the index.
func (d Document) ID() string {
	return d.FileName
}

// ReadFileList reads a newline-delimited list of file paths. Lines are
// trimmed of surrounding whitespace; blank lines are skipped because an
// empty path cannot serve as a document id.
func ReadFileList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file list: %w", err)
	}
	defer f.Close()

	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read file list %s: %w", path, err)
	}

	return paths, nil
}

// BuildDocuments constructs one Document per path. The bucket doubles as
// the project name and the worker region as the dask pool, matching the
// layout the search consumers expect.
func BuildDocuments(paths []string, bucket, region string) []Document {
	docs := make([]Document, 0, len(paths))
	for _, p := range paths {
		docs = append(docs, Document{
			FileName: p,
			Bucket:   bucket,
			Region:   region,
			DaskPool: region,
			Project:  bucket,
		})
	}
	return docs
}
