package etcd

import (
	"context"
	"io/ioutil"
	"net/http"
	"strings"
	"testing"

	"github.com/QQGoblin/etcdv2-sdk/pkg/httputils"
	"github.com/pkg/errors"
)

func fakeResponse(code int, status, body string) *http.Response {
	return &http.Response{
		StatusCode:    code,
		Status:        status,
		Body:          ioutil.NopCloser(strings.NewReader(body)),
		ContentLength: int64(len(body)),
	}
}

func TestPairsEncode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		pairs Pairs
		want  string
	}{
		{Pairs{}, ""},
		{Pairs{{"value", "hello"}}, "value=hello"},
		{Pairs{{"value", "hello"}, {"ttl", "5"}}, "value=hello&ttl=5"},
		// Values are written as-is, unescaped.
		{Pairs{{"value", "a&b=c"}}, "value=a&b=c"},
	}
	for _, c := range cases {
		if got := c.pairs.encode(); got != c.want {
			t.Errorf("encode failed: want (%v), got (%v)", c.want, got)
		}
	}
}

func TestFormEncodeCallInfo(t *testing.T) {
	t.Parallel()

	callInfo := &httputils.CallInfo{
		Header: map[string]string{"Authorization": "Basic abc"},
		Cookie: map[string]string{"session": "s1"},
	}
	req, err := formCodec{}.Encode(context.Background(), "http://127.0.0.1:2379/v2/keys/k",
		http.MethodPut, Pairs{{"value", "v"}}, callInfo)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if got := req.Header.Get("Authorization"); got != "Basic abc" {
		t.Errorf("header failed: want (Basic abc), got (%v)", got)
	}
	cookie, err := req.Cookie("session")
	if err != nil {
		t.Fatalf("cookie missing: %v", err)
	}
	if cookie.Value != "s1" {
		t.Errorf("cookie failed: want (s1), got (%v)", cookie.Value)
	}
}

func TestDecodeEnvelopeErrorMessage(t *testing.T) {
	t.Parallel()

	res := fakeResponse(404, "404 Not Found", `{"errorCode":100,"message":"Key not found","cause":"/missing"}`)
	err := decodeEnvelope(res, &Response{})
	if err == nil {
		t.Fatalf("decodeEnvelope on 404 should fail")
	}

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("want StatusError, got %T: %v", err, err)
	}
	if se.Status != "404 Not Found" || se.Message != "Key not found" {
		t.Errorf("StatusError fields failed: want (404 Not Found, Key not found), got (%v, %v)",
			se.Status, se.Message)
	}
}

func TestDecodeEnvelopeErrorWithoutJSONBody(t *testing.T) {
	t.Parallel()

	res := fakeResponse(500, "500 Internal Server Error", "boom")
	err := decodeEnvelope(res, &Response{})

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("want StatusError, got %T: %v", err, err)
	}
	if se.Message != "" {
		t.Errorf("message should be empty for non-JSON body, got (%v)", se.Message)
	}
}

func TestDecodeEnvelopeEmptyBodyIsNull(t *testing.T) {
	t.Parallel()

	res := fakeResponse(200, "200 OK", "")
	var envelope Response
	if err := decodeEnvelope(res, &envelope); err != nil {
		t.Fatalf("empty 2xx body should not fail: %v", err)
	}
	if envelope.Node != nil {
		t.Errorf("empty body should leave envelope untouched, got node %+v", envelope.Node)
	}
}

func TestDecodeEnvelopeBadJSON(t *testing.T) {
	t.Parallel()

	res := fakeResponse(200, "200 OK", "{not json")
	if err := decodeEnvelope(res, &Response{}); err == nil {
		t.Errorf("malformed 2xx body should fail")
	}
}

func TestDecodeEnvelopeNode(t *testing.T) {
	t.Parallel()

	res := fakeResponse(200, "200 OK",
		`{"action":"set","node":{"key":"/app","value":"1","modifiedIndex":7,"createdIndex":7},"prevNode":{"key":"/app","value":"0","modifiedIndex":3,"createdIndex":3}}`)
	var envelope Response
	if err := decodeEnvelope(res, &envelope); err != nil {
		t.Fatalf("decodeEnvelope failed: %v", err)
	}
	if envelope.Action != "set" || envelope.Node == nil || envelope.PrevNode == nil {
		t.Fatalf("envelope fields missing: %+v", envelope)
	}
	if envelope.Node.Value != "1" || envelope.PrevNode.Value != "0" {
		t.Errorf("node values failed: want (1, 0), got (%v, %v)",
			envelope.Node.Value, envelope.PrevNode.Value)
	}
}

func TestRawDecodeBareStatus(t *testing.T) {
	t.Parallel()

	res := fakeResponse(503, "503 Service Unavailable", `{"message":"should not be read"}`)
	err := rawCodec{}.Decode(res, nil)

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("want StatusError, got %T: %v", err, err)
	}
	if se.Message != "" {
		t.Errorf("raw decode must not extract a message, got (%v)", se.Message)
	}
	if se.Status != "503 Service Unavailable" {
		t.Errorf("status line failed: got (%v)", se.Status)
	}
}
