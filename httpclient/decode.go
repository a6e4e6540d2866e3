package httpclient

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kbukum/aigateway/errors"
)

// DecodeJSON decodes a response body into T. Unknown fields are ignored;
// trailing data after the first JSON value is an error.
func DecodeJSON[T any](resp *Response) (T, error) {
	var out T
	if resp == nil {
		return out, fmt.Errorf("empty response")
	}
	dec := json.NewDecoder(bytes.NewReader(resp.Body))
	if err := dec.Decode(&out); err != nil {
		return out, err
	}
	if dec.More() {
		return out, fmt.Errorf("unexpected data after JSON value")
	}
	return out, nil
}

// DecodeList decodes a body that must be a JSON array. Anything else,
// null included, is a PARSE_ERROR carrying the raw body.
func DecodeList[T any](resp *Response) ([]T, error) {
	var raw string
	if resp != nil {
		raw = string(resp.Body)
	}
	items, err := DecodeJSON[[]T](resp)
	if err != nil {
		return nil, errors.Parse(err.Error(), raw)
	}
	if items == nil {
		return nil, errors.Parse("expected a JSON array", raw)
	}
	return items, nil
}
