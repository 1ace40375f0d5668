package etcd

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/QQGoblin/etcdv2-sdk/pkg/httputils"
	"github.com/pkg/errors"
)

// Pair is a single form field. Names and values are written into the
// body as-is: callers must pre-escape reserved characters.
type Pair struct {
	Name  string
	Value string
}

type Pairs []Pair

func (p Pairs) encode() string {
	fields := make([]string, 0, len(p))
	for _, f := range p {
		fields = append(fields, f.Name+"="+f.Value)
	}
	return strings.Join(fields, "&")
}

// formCodec sends form-encoded bodies and unwraps the v2 envelope.
type formCodec struct{}

var _ httputils.Codec = formCodec{}

func (formCodec) Encode(ctx context.Context, url string, method string, content interface{}, callInfo *httputils.CallInfo) (*http.Request, error) {

	var body io.Reader
	if content != nil {
		pairs, ok := content.(Pairs)
		if !ok {
			return nil, errors.Errorf("form content must be Pairs, got %T", content)
		}
		body = strings.NewReader(pairs.encode())
	}

	r, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}

	r.Header.Set(httputils.ContentTypeKey, httputils.ContentTypeForm)
	for k, v := range callInfo.Header {
		r.Header.Set(k, v)
	}

	for k, v := range callInfo.Cookie {
		r.AddCookie(&http.Cookie{
			Name:  k,
			Value: v,
		})
	}
	return r, nil
}

func (formCodec) Decode(res *http.Response, reply interface{}) error {
	return decodeEnvelope(res, reply)
}

// jsonCodec sends JSON bodies and unwraps the v2 envelope.
type jsonCodec struct {
	json httputils.JSONCodec
}

var _ httputils.Codec = jsonCodec{}

func (c jsonCodec) Encode(ctx context.Context, url string, method string, content interface{}, callInfo *httputils.CallInfo) (*http.Request, error) {
	return c.json.Encode(ctx, url, method, content, callInfo)
}

func (jsonCodec) Decode(res *http.Response, reply interface{}) error {
	return decodeEnvelope(res, reply)
}

// rawCodec serves the endpoints outside the versioned namespace: no
// request body, the response body is passed through verbatim, and a
// failure carries only the bare status line.
type rawCodec struct {
	json httputils.JSONCodec
}

var _ httputils.Codec = rawCodec{}

func (c rawCodec) Encode(ctx context.Context, url string, method string, content interface{}, callInfo *httputils.CallInfo) (*http.Request, error) {
	return c.json.Encode(ctx, url, method, nil, callInfo)
}

func (rawCodec) Decode(res *http.Response, reply interface{}) error {

	data, err := io.ReadAll(res.Body)
	defer res.Body.Close()

	if err != nil {
		return errors.Wrap(err, "read response")
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &StatusError{Code: res.StatusCode, Status: res.Status}
	}
	if len(data) == 0 || reply == nil {
		return nil
	}
	if err := json.Unmarshal(data, reply); err != nil {
		return errors.Wrapf(err, "decode response %s", string(data))
	}
	return nil
}

// decodeEnvelope interprets a v2 API response: a non-2xx status becomes
// a StatusError with the optional server message, a 2xx with an empty
// body is a null result, anything else is unmarshalled into reply.
func decodeEnvelope(res *http.Response, reply interface{}) error {

	data, err := io.ReadAll(res.Body)
	defer res.Body.Close()

	if err != nil {
		return errors.Wrap(err, "read response")
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return newStatusError(res.StatusCode, res.Status, data)
	}
	if len(data) == 0 || reply == nil {
		return nil
	}
	if err := json.Unmarshal(data, reply); err != nil {
		return errors.Wrapf(err, "decode response %s", string(data))
	}
	return nil
}
