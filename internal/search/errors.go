// Package search talks to the OpenSearch domain holding the file catalog.
package search

import (
	"errors"
	"fmt"
	"io"

	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

// Sentinel errors for index operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrIndexNotFound indicates the named index does not exist. During a
	// refresh this is the only deletion failure that is safe to ignore;
	// anything else (permissions, transport) must abort the run.
	ErrIndexNotFound = errors.New("index not found")
)

// classifyResponse turns an OpenSearch error response into a typed error.
// A 404 maps to ErrIndexNotFound; other error responses keep their status
// and body so the operator sees what the service actually said.
func classifyResponse(res *opensearchapi.Response) error {
	if !res.IsError() {
		return nil
	}

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode == 404 {
		return fmt.Errorf("%w: %s", ErrIndexNotFound, body)
	}
	return fmt.Errorf("opensearch error [%d]: %s", res.StatusCode, body)
}
