package httpclient

import "context"

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts the GET-only transport the API bridge needs, so tests
// can swap in a fake without standing up a server.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
