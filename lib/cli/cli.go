package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Options configure a single client invocation against a running server.
type Options struct {
	Host   string
	Kind   string
	Chain  string
	Author string
	Submit string
	Diff   string
	Limit  int
}

type revision struct {
	ID         string          `json:"id"`
	AuthorID   string          `json:"authorId"`
	CreatedAt  time.Time       `json:"createdAt"`
	PreviousID *string         `json:"previousId"`
	Value      json.RawMessage `json:"value"`
}

type span struct {
	Op     string   `json:"op"`
	Tokens []string `json:"tokens"`
}

type diffResult struct {
	Text map[string]struct {
		Spans []span `json:"spans"`
	} `json:"text"`
	Lists map[string]struct {
		Inserted []string `json:"inserted"`
		Deleted  []string `json:"deleted"`
	} `json:"lists"`
}

type Client struct {
	host   string
	http   *http.Client
	logger *zap.SugaredLogger
}

func NewClient(host string, logger *zap.SugaredLogger) *Client {
	return &Client{
		host:   strings.TrimRight(host, "/"),
		http:   &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

func (c *Client) do(ctx context.Context, method string, path string, author string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.host+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if author != "" {
		req.Header.Set("X-Author-Id", author)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiError struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiError)
		return fmt.Errorf("%s %s: %d %s", method, path, resp.StatusCode, apiError.Message)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) History(ctx context.Context, kind string, chainID string, limit int) ([]revision, error) {
	path := fmt.Sprintf("/api/%s/chains/%s/history", url.PathEscape(kind), url.PathEscape(chainID))
	if limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}
	var revisions []revision
	err := c.do(ctx, http.MethodGet, path, "", nil, &revisions)
	return revisions, err
}

func (c *Client) Submit(ctx context.Context, kind string, chainID string, author string, value json.RawMessage) (string, error) {
	path := fmt.Sprintf("/api/%s/chains/%s/revisions", url.PathEscape(kind), url.PathEscape(chainID))
	var submission struct {
		Node   revision `json:"node"`
		Status string   `json:"status"`
	}
	if err := c.do(ctx, http.MethodPost, path, author, map[string]json.RawMessage{"value": value}, &submission); err != nil {
		return "", err
	}
	c.logger.Debugw("Submitted revision", "chainId", chainID, "nodeId", submission.Node.ID, "status", submission.Status)
	return submission.Node.ID, nil
}

func (c *Client) Diff(ctx context.Context, kind string, fromID string, toID string) (diffResult, error) {
	path := fmt.Sprintf("/api/%s/diff/%s/%s", url.PathEscape(kind), url.PathEscape(fromID), url.PathEscape(toID))
	var result diffResult
	err := c.do(ctx, http.MethodGet, path, "", nil, &result)
	return result, err
}

// RunFromCLI executes the client subcommand: it submits a revision, prints
// a diff or lists the history of a chain.
func RunFromCLI(ctx context.Context, logger *zap.SugaredLogger, out io.Writer, args []string) error {
	opts, err := parseCLIArgs(args)
	if err != nil {
		return err
	}
	if opts.Host == "" {
		return errors.New("no host specified")
	}
	client := NewClient(opts.Host, logger)

	switch {
	case opts.Diff != "":
		from, to, ok := strings.Cut(opts.Diff, ":")
		if !ok {
			return fmt.Errorf("diff expects <fromId>:<toId>, got %q", opts.Diff)
		}
		result, err := client.Diff(ctx, opts.Kind, from, to)
		if err != nil {
			return err
		}
		printDiff(out, result)
		return nil
	case opts.Chain == "":
		return errors.New("no chain specified")
	case opts.Submit != "":
		if opts.Author == "" {
			return errors.New("submitting requires -author")
		}
		if !json.Valid([]byte(opts.Submit)) {
			return fmt.Errorf("submit value is not valid JSON")
		}
		nodeID, err := client.Submit(ctx, opts.Kind, opts.Chain, opts.Author, json.RawMessage(opts.Submit))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Submitted revision %s to %s\n", nodeID, opts.Chain)
		return nil
	default:
		revisions, err := client.History(ctx, opts.Kind, opts.Chain, opts.Limit)
		if err != nil {
			return err
		}
		for _, rev := range revisions {
			fmt.Fprintf(out, "%s  %s  %-20s %s\n", rev.ID, rev.CreatedAt.Format(time.RFC3339), rev.AuthorID, rev.Value)
		}
		return nil
	}
}

func printDiff(out io.Writer, result diffResult) {
	for field, text := range result.Text {
		var line strings.Builder
		for _, s := range text.Spans {
			joined := strings.Join(s.Tokens, "")
			switch s.Op {
			case "inserted":
				line.WriteString("{+" + joined + "+}")
			case "deleted":
				line.WriteString("[-" + joined + "-]")
			default:
				line.WriteString(joined)
			}
		}
		fmt.Fprintf(out, "%s: %s\n", field, line.String())
	}
	for field, set := range result.Lists {
		if len(set.Inserted) == 0 && len(set.Deleted) == 0 {
			continue
		}
		fmt.Fprintf(out, "%s: +%v -%v\n", field, set.Inserted, set.Deleted)
	}
}

func parseCLIArgs(args []string) (Options, error) {
	var opts Options
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.StringVar(&opts.Host, "host", "", "The server base URL (e.g. http://127.0.0.1:9001)")
	fs.StringVar(&opts.Kind, "kind", "waypoint", "Content kind")
	fs.StringVar(&opts.Chain, "chain", "", "Chain id")
	fs.StringVar(&opts.Author, "author", "", "Acting user sent as X-Author-Id")
	fs.StringVar(&opts.Submit, "submit", "", "Submit a JSON value as new revision")
	fs.StringVar(&opts.Submit, "s", "", "Submit a JSON value (shorthand)")
	fs.StringVar(&opts.Diff, "diff", "", "Print the diff between two revisions as <fromId>:<toId>")
	fs.IntVar(&opts.Limit, "limit", 0, "Maximum number of history entries")

	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		opts.Host = args[0]
		args = args[1:]
	}

	err := fs.Parse(args)
	return opts, err
}
