package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/passosperdidos/parlamento-backend/internal/logger"
)

// Client fetches and decodes one feed export. Source may be an http(s)
// URL or a local file path; the payload may be the JSON export or the
// older XML export, detected by sniffing.
type Client struct {
	httpClient *http.Client
	log        *logger.Logger
}

func NewClient(log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		log:        log.With("component", "feed"),
	}
}

func (c *Client) Fetch(ctx context.Context, source string) ([]Record, error) {
	raw, err := c.read(ctx, source)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("feed source %q is empty", source)
	}
	if raw[0] == '<' {
		return c.decodeXML(raw)
	}
	return c.decodeJSON(raw)
}

func (c *Client) read(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, fmt.Errorf("building feed request: %w", err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetching feed %q: %w", source, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetching feed %q: unexpected status %d", source, resp.StatusCode)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("reading feed body: %w", err)
		}
		return body, nil
	}
	body, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("reading feed file: %w", err)
	}
	return body, nil
}

// decodeJSON unpacks the export element by element so that one
// malformed record does not sink the batch.
func (c *Client) decodeJSON(raw []byte) ([]Record, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		// Some exports wrap the list in a single top-level object.
		var one Record
		if oneErr := json.Unmarshal(raw, &one); oneErr == nil && !one.IniID.Empty() {
			return []Record{one}, nil
		}
		return nil, fmt.Errorf("feed payload is not a JSON list: %w", err)
	}
	records := make([]Record, 0, len(elems))
	skipped := 0
	for _, elem := range elems {
		var rec Record
		if err := json.Unmarshal(elem, &rec); err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	if skipped > 0 {
		c.log.Warn("skipped undecodable feed elements", "skipped", skipped, "decoded", len(records))
	}
	return records, nil
}
