// ABOUTME: HTTP fetcher with bounded constant-delay retry for upstream digests and feeds
// ABOUTME: Blocks private IP ranges, caps response size, and re-encodes bodies to UTF-8 on request

package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
)

const MaxResponseSize = 10 * 1024 * 1024 // 10MB

// Defaults used when a Client field is left zero.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultRetries    = 3
	DefaultRetryDelay = 5 * time.Second
	DefaultUserAgent  = "Mozilla/5.0"
)

// Getter is what source adapters need from the transport.
type Getter interface {
	Get(ctx context.Context, urlStr string, headers map[string]string) (*Result, error)
}

// Result contains the response from an HTTP fetch operation.
type Result struct {
	Body        []byte
	ContentType string
}

// Client performs GET requests, retrying transport errors and non-2xx responses.
type Client struct {
	HTTP       *http.Client
	UserAgent  string
	Retries    uint64
	RetryDelay time.Duration
}

// NewClient returns a client with the given retry policy.
func NewClient(timeout time.Duration, retries uint64, delay time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		HTTP:       &http.Client{Timeout: timeout},
		UserAgent:  userAgent,
		Retries:    retries,
		RetryDelay: delay,
	}
}

var _ Getter = (*Client)(nil)

// isPrivateIP checks if an IP address is in a private range (excluding loopback for tests).
func isPrivateIP(ip net.IP) bool {
	if ip.IsLoopback() {
		return false
	}
	return ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast()
}

// Get fetches urlStr, making up to Retries extra attempts spaced RetryDelay apart.
// The returned error is the last attempt's failure.
func (c *Client) Get(ctx context.Context, urlStr string, headers map[string]string) (*Result, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if ips, err := net.LookupIP(parsedURL.Hostname()); err == nil {
		for _, ip := range ips {
			if isPrivateIP(ip) {
				return nil, fmt.Errorf("access to private IP ranges is not allowed")
			}
		}
	}

	var result *Result
	attempt := 0
	op := func() error {
		attempt++
		r, err := c.do(ctx, urlStr, headers)
		if err != nil {
			return err
		}
		result = r
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.RetryDelay), c.Retries),
		ctx,
	)
	notify := func(err error, wait time.Duration) {
		log.WithFields(log.Fields{
			"url":     urlStr,
			"attempt": attempt,
			"retries": c.Retries,
			"wait":    wait,
		}).Warnf("request failed, retrying: %v", err)
	}

	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, urlStr string, headers map[string]string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("User-Agent", c.UserAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	limitedReader := io.LimitReader(resp.Body, MaxResponseSize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, backoff.Permanent(fmt.Errorf("response too large (exceeds %d bytes)", MaxResponseSize))
	}

	return &Result{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

var xmlDeclEncoding = regexp.MustCompile(`^(\s*<\?xml[^>]*?encoding=["'])[^"']+(["'])`)

// Text returns the body decoded to UTF-8 as a string.
func (r *Result) Text() (string, error) {
	b, err := r.UTF8()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FallbackCharset decodes bodies that declare nothing and are not valid UTF-8.
// The upstream sites publish in Chinese, so GB18030 (a superset of GBK) is the likely encoding.
const FallbackCharset = "gb18030"

var xmlDeclHasEncoding = regexp.MustCompile(`^\s*<\?xml[^>]*?encoding=`)

// UTF8 returns the body re-encoded to UTF-8. The encoding comes from the
// Content-Type charset, a byte-order mark, or an HTML meta tag; undeclared
// bodies that are already UTF-8 are returned unchanged. XML documents that only
// name their encoding in the prolog are left for the XML parser. When a body is
// converted, its XML declaration is rewritten so parsers do not decode it twice.
func (r *Result) UTF8() ([]byte, error) {
	enc, name, certain := charset.DetermineEncoding(r.Body, r.ContentType)
	if !certain {
		switch {
		case name == "utf-8" && utf8.Valid(r.Body):
			return r.Body, nil
		case name == "utf-8" || name == "windows-1252":
			// DetermineEncoding's guess when nothing is declared.
			if xmlDeclHasEncoding.Match(r.Body) {
				return r.Body, nil
			}
			enc, name = charset.Lookup(FallbackCharset)
		}
	}

	decoded, err := enc.NewDecoder().Bytes(r.Body)
	if err != nil {
		return nil, fmt.Errorf("decode body as %s: %w", name, err)
	}
	return xmlDeclEncoding.ReplaceAll(decoded, []byte("${1}UTF-8${2}")), nil
}
