package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/avreduce/avreduce/pkg/reduce"
)

// detectionHeader is the response header a remote scanner uses to signal
// its verdict; any value other than "clean" (case-sensitive) is treated
// as detected.
const detectionHeader = "X-Scan-Result"

// HTTP is a [reduce.Scanner] that POSTs the candidate bytes to a remote
// scanning endpoint. It treats context deadline exhaustion and 5xx
// responses as detected, not as a transport error - spec.md §5 requires
// scan failures to fail closed (conservative) rather than silently
// widening the search to bytes that were never actually cleared. Other
// request failures and 4xx responses are returned as
// [reduce.ErrScannerTransport].
type HTTP struct {
	client   *http.Client
	endpoint string
}

var _ reduce.Scanner = (*HTTP)(nil)

// NewHTTP constructs an HTTP scanner posting candidates to endpoint using
// client. A nil client uses [http.DefaultClient].
func NewHTTP(endpoint string, client *http.Client) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}

	return &HTTP{client: client, endpoint: endpoint}
}

func (h *HTTP) Scan(ctx context.Context, data []byte, filename string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(data))
	if err != nil {
		return false, fmt.Errorf("%w: building request: %v", reduce.ErrScannerTransport, err)
	}

	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("X-Scan-Filename", filename)

	resp, err := h.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return true, nil
		}

		return false, fmt.Errorf("%w: %v", reduce.ErrScannerTransport, err)
	}
	defer resp.Body.Close()

	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 500 {
		return true, nil
	}

	if resp.StatusCode >= 400 {
		return false, fmt.Errorf("%w: unexpected status %d", reduce.ErrScannerTransport, resp.StatusCode)
	}

	return resp.Header.Get(detectionHeader) != "clean", nil
}
