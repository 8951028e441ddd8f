package identity

import (
	"net/http"
)

// Transport 为每个出站请求写入指定类型的身份请求头
type Transport struct {
	Base      http.RoundTripper
	Generator *Generator
	Style     Style
	Model     string
}

// RoundTrip 克隆请求后写入请求头，不修改调用方的请求
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	headers, err := t.generator().Headers(t.Style, t.Model)
	if err != nil {
		if req.Body != nil {
			req.Body.Close()
		}
		return nil, err
	}

	clone := req.Clone(req.Context())
	headers.Apply(clone.Header)
	return t.base().RoundTrip(clone)
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *Transport) generator() *Generator {
	if t.Generator != nil {
		return t.Generator
	}
	return defaultGenerator
}
