package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultRetryAfter is used when a rate-limited response carries no usable
// Retry-After header.
const DefaultRetryAfter = time.Second

// Params are the arguments of one API method. Values are form encoded:
// strings as-is, booleans as 1 or 0, integers in decimal, string slices
// comma-joined and anything else as JSON.
type Params map[string]any

// Result is a decoded API response body. Numbers are kept as json.Number so
// large integers survive [Result.Decode] exactly.
type Result map[string]any

// ErrorCode returns the top-level "error" field, or "" when absent.
func (r Result) ErrorCode() string {
	code, _ := r["error"].(string)
	return code
}

// NextCursor returns response_metadata.next_cursor, or "" when there are no
// more pages.
func (r Result) NextCursor() string {
	meta, ok := r["response_metadata"].(map[string]any)
	if !ok {
		return ""
	}

	cursor, _ := meta["next_cursor"].(string)
	return cursor
}

// List returns field as a JSON array. A missing or null field is an empty list.
func (r Result) List(field string) ([]any, error) {
	switch v := r[field].(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	default:
		return nil, fmt.Errorf("field %q is a %T, not a list", field, v)
	}
}

// Decode re-decodes field into out, which is typically a pointer to a slack-go
// type such as *[]slack.Channel or *slack.User. A missing field leaves out
// untouched.
func (r Result) Decode(field string, out any) error {
	v, ok := r[field]
	if !ok || v == nil {
		return nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode field %q: %w", field, err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode field %q: %w", field, err)
	}

	return nil
}

func (p Params) clone() Params {
	c := make(Params, len(p)+2)
	maps.Copy(c, p)
	return c
}

// formData encodes the params for a form-encoded POST.
func (p Params) formData() (map[string]string, error) {
	form := make(map[string]string, len(p))

	for key, value := range p {
		encoded, err := encodeParam(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode parameter %q: %w", key, err)
		}
		form[key] = encoded
	}

	return form, nil
}

func encodeParam(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		if v {
			return "1", nil
		}
		return "0", nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case []string:
		return strings.Join(v, ","), nil
	case json.RawMessage:
		return string(v), nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return "", err
	}

	return string(raw), nil
}

// decodeResponse classifies the HTTP status and decodes the body. 429 is a
// valid response: its body carries the "ratelimited" error.
func decodeResponse(method string, resp *resty.Response) (Result, error) {
	status := resp.StatusCode()

	if status != http.StatusTooManyRequests && !resp.IsSuccess() {
		return nil, &TransportError{
			Method:     method,
			StatusCode: status,
			Body:       strings.TrimSpace(resp.String()),
			Header:     resp.Header(),
		}
	}

	result, err := decodeResult(resp.Body())
	if err != nil {
		return nil, &TransportError{
			Method:     method,
			StatusCode: status,
			Body:       strings.TrimSpace(resp.String()),
			Header:     resp.Header(),
			Err:        fmt.Errorf("invalid JSON body: %w", err),
		}
	}

	if result == nil {
		return nil, &TransportError{
			Method:     method,
			StatusCode: status,
			Header:     resp.Header(),
			Err:        errors.New("response body is not a JSON object"),
		}
	}

	return result, nil
}

func decodeResult(body []byte) (Result, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var result Result
	if err := dec.Decode(&result); err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}

	return result, nil
}

// retryAfter parses the Retry-After header as whole seconds.
func retryAfter(header http.Header) time.Duration {
	value := strings.TrimSpace(header.Get("Retry-After"))
	if value == "" {
		return DefaultRetryAfter
	}

	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return DefaultRetryAfter
	}

	return time.Duration(seconds) * time.Second
}
