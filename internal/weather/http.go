package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultHTTPClient bounds every upstream call; providers share it unless
// the caller passes its own.
var defaultHTTPClient = &http.Client{Timeout: 15 * time.Second}

// getJSON performs a GET and decodes the body into v. The body is decoded
// for any status, because providers describe their errors in JSON; the
// status code is returned for the caller to judge.
func getJSON(ctx context.Context, client *http.Client, url string, v any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return resp.StatusCode, fmt.Errorf("decode body (status %d): %w", resp.StatusCode, err)
	}
	return resp.StatusCode, nil
}
