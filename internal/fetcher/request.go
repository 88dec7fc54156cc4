package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// Responses larger than this are truncated and will fail to decode.
const maxBodyBytes = 8 << 20

// Plain-text error bodies are cut to this many bytes.
const maxMessageBytes = 200

type request struct {
	resource string // metrics label
	method   string
	path     string // relative to the base URL, already escaped
	rawURL   string // absolute URL, wins over path
	query    url.Values
	body     any
	header   http.Header
	// optional marks integration endpoints where 404 and 503 mean the
	// backend simply does not offer the resource.
	optional bool
	// write marks calls that change backend state. Once sent they run to
	// completion, and an answer counts even if the caller has left.
	write bool
}

func (r request) target() string {
	if r.rawURL != "" {
		return r.rawURL
	}
	return r.path
}

type response struct {
	status int
	body   []byte
}

// fetch is the one place that talks HTTP. It never returns a Go error: every
// outcome is folded into the Result's Kind.
func fetch[T any](ctx context.Context, f *Fetcher, r request) Result[T] {
	started := time.Now()
	res := func() Result[T] {
		if err := ctx.Err(); err != nil {
			return Result[T]{Kind: Canceled, Err: err}
		}
		var payload []byte
		if r.body != nil {
			b, err := json.Marshal(r.body)
			if err != nil {
				return Result[T]{Kind: ShapeError, Err: fmt.Errorf("%s: encode request: %w", r.resource, err)}
			}
			payload = b
		}
		resp, err := f.send(ctx, r, payload)
		return classify[T](ctx, r, resp, err)
	}()
	res.Elapsed = time.Since(started)
	return res
}

func (f *Fetcher) send(ctx context.Context, r request, payload []byte) (*response, error) {
	target, err := f.resolve(r)
	if err != nil {
		return nil, err
	}
	if r.write {
		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.timeout)
		defer cancel()
		return f.roundTrip(wctx, r.method, target, payload, r.header)
	}
	if r.method != http.MethodGet {
		return f.roundTrip(ctx, r.method, target, payload, r.header)
	}

	// The shared call runs detached from any one caller so that a caller
	// giving up does not fail the others waiting on it.
	ch := f.group.DoChan(target, func() (any, error) {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.timeout)
		defer cancel()
		return f.roundTrip(sctx, http.MethodGet, target, nil, r.header)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*response), nil
	}
}

func (f *Fetcher) resolve(r request) (string, error) {
	var u *url.URL
	if r.rawURL != "" {
		parsed, err := url.Parse(r.rawURL)
		if err != nil {
			return "", fmt.Errorf("parse %q: %w", r.rawURL, err)
		}
		u = parsed
	} else {
		u = f.base.JoinPath(r.path)
	}
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}
	return u.String(), nil
}

func (f *Fetcher) roundTrip(ctx context.Context, method, target string, payload []byte, header http.Header) (*response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return &response{status: resp.StatusCode, body: data}, nil
}

func classify[T any](ctx context.Context, r request, resp *response, err error) Result[T] {
	// A read answer that lands after the caller gave up is stale. A write
	// was detached from the caller in send, so its outcome stands.
	if cerr := ctx.Err(); cerr != nil && !r.write {
		return Result[T]{Kind: Canceled, Err: cerr}
	}
	if err != nil {
		return Result[T]{Kind: TransportError, Err: fmt.Errorf("%s %s: %w: %w", r.method, r.target(), ErrTransport, err)}
	}

	switch {
	case resp.status >= 200 && resp.status < 300:
		if len(bytes.TrimSpace(resp.body)) == 0 {
			return Result[T]{Kind: ShapeError, StatusCode: resp.status, Err: fmt.Errorf("%s: empty body: %w", r.resource, ErrShape)}
		}
		var v T
		if err := json.Unmarshal(resp.body, &v); err != nil {
			return Result[T]{Kind: ShapeError, StatusCode: resp.status, Err: fmt.Errorf("%s: decode: %w: %w", r.resource, ErrShape, err)}
		}
		return Result[T]{Kind: Success, Value: v, StatusCode: resp.status}
	case r.optional && (resp.status == http.StatusNotFound || resp.status == http.StatusServiceUnavailable):
		return Result[T]{Kind: NotConfigured, StatusCode: resp.status, Err: fmt.Errorf("%s: %w", r.target(), ErrNotConfigured)}
	default:
		return Result[T]{Kind: StatusError, StatusCode: resp.status, Err: &APIError{
			Method:     r.method,
			Path:       r.target(),
			StatusCode: resp.status,
			Message:    errorMessage(resp.body),
		}}
	}
}

// errorMessage pulls a human readable message out of an error body.
func errorMessage(body []byte) string {
	var payload struct {
		Detail  any    `json:"detail"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if s, ok := payload.Detail.(string); ok && s != "" {
			return s
		}
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxMessageBytes {
		cut := maxMessageBytes
		for cut > 0 && !utf8.RuneStart(msg[cut]) {
			cut--
		}
		msg = msg[:cut]
	}
	return msg
}
