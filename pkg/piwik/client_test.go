package piwik

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/samvad-hq/piwik-bridge/pkg/httpclient"
)

// failingHTTP fails the test if any network call is attempted.
type failingHTTP struct {
	t *testing.T
}

func (f failingHTTP) Get(context.Context, string, map[string]string) (httpclient.Response, error) {
	f.t.Errorf("unexpected network call")
	return nil, errors.New("unexpected network call")
}

type fakeResponse struct {
	body   []byte
	status int
}

func (f fakeResponse) Body() []byte    { return f.body }
func (f fakeResponse) StatusCode() int { return f.status }

// fakeHTTP replays a canned response and counts calls.
type fakeHTTP struct {
	body   []byte
	status int
	err    error
	calls  atomic.Int64
}

func (f *fakeHTTP) Get(context.Context, string, map[string]string) (httpclient.Response, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return fakeResponse{body: f.body, status: f.status}, nil
}

type fakeCache struct {
	entries map[string][]byte
	puts    int
}

func (f *fakeCache) Get(key string) ([]byte, bool, error) {
	body, ok := f.entries[key]
	return body, ok, nil
}

func (f *fakeCache) Put(key string, body []byte) error {
	if f.entries == nil {
		f.entries = map[string][]byte{}
	}
	f.entries[key] = append([]byte(nil), body...)
	f.puts++
	return nil
}

func TestDoDecodesLiveResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("method"); got != "ExampleAPI.getAnswerToLife" {
			t.Errorf("method = %q", got)
		}
		fmt.Fprint(w, `{"value": 42}`)
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL, SiteID: "1"})
	res, err := c.Do(context.Background(), "ExampleAPI.getAnswerToLife", Params{})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if res == nil {
		t.Fatalf("expected a result")
	}

	var out struct {
		Value int `json:"value"`
	}
	if err := res.Decode(&out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Value != 42 {
		t.Fatalf("value = %d, want 42", out.Value)
	}
}

func TestDoDNTShortCircuit(t *testing.T) {
	c := New(Config{URL: "stats.example.org"}, WithHTTPClient(failingHTTP{t: t}))
	res, err := c.Do(context.Background(), "API.get", Params{"dnt": Bool(true)})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if res != nil {
		t.Fatalf("dnt call must yield an absent result, got %#v", res)
	}
}

func TestDoTransportError(t *testing.T) {
	fake := &fakeHTTP{err: errors.New("connection refused")}
	c := New(Config{URL: "stats.example.org"}, WithHTTPClient(fake))

	_, err := c.Do(context.Background(), "API.get", Params{})
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want *TransportError", err)
	}
	if te.Err == nil {
		t.Fatalf("transport error should wrap the cause")
	}
}

func TestDoNonSuccessStatus(t *testing.T) {
	fake := &fakeHTTP{status: http.StatusInternalServerError, body: []byte("boom")}
	c := New(Config{URL: "stats.example.org"}, WithHTTPClient(fake))

	_, err := c.Do(context.Background(), "API.get", Params{})
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want *TransportError", err)
	}
	if te.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d", te.StatusCode)
	}
}

func TestDoRejectsInvalidJSON(t *testing.T) {
	fake := &fakeHTTP{status: http.StatusOK, body: []byte("<html>not json</html>")}
	c := New(Config{URL: "stats.example.org"}, WithHTTPClient(fake))

	if _, err := c.Do(context.Background(), "API.get", Params{}); err == nil {
		t.Fatalf("expected error for non-JSON body")
	}
}

func TestAPISwallowsFailures(t *testing.T) {
	fake := &fakeHTTP{err: errors.New("connection refused")}
	c := New(Config{URL: "stats.example.org"}, WithHTTPClient(fake))

	if res := c.API(context.Background(), "API.get", Params{}); res != nil {
		t.Fatalf("API must degrade failures to an absent result, got %#v", res)
	}
}

func TestAPIAsyncInvokesCallbackOnce(t *testing.T) {
	fake := &fakeHTTP{status: http.StatusOK, body: []byte(`{"ok":true}`)}
	c := New(Config{URL: "stats.example.org"}, WithHTTPClient(fake))

	done := make(chan *Result, 2)
	c.APIAsync(context.Background(), "API.get", Params{}, func(res *Result) {
		done <- res
	})

	select {
	case res := <-done:
		if res == nil || len(res.Body) == 0 {
			t.Fatalf("callback got %#v", res)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("callback never fired")
	}

	select {
	case <-done:
		t.Fatalf("callback fired more than once")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestAPIAsyncCallbackGetsNilOnFailure(t *testing.T) {
	fake := &fakeHTTP{err: errors.New("down")}
	c := New(Config{URL: "stats.example.org"}, WithHTTPClient(fake))

	done := make(chan *Result, 1)
	c.APIAsync(context.Background(), "API.get", Params{}, func(res *Result) {
		done <- res
	})

	select {
	case res := <-done:
		if res != nil {
			t.Fatalf("expected nil result on failure, got %#v", res)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("callback never fired")
	}
}

func TestDoServesFromCache(t *testing.T) {
	fake := &fakeHTTP{status: http.StatusOK, body: []byte(`{"visits": 3}`)}
	cache := &fakeCache{}
	c := New(Config{URL: "stats.example.org"},
		WithHTTPClient(fake), WithCache(cache))

	first, err := c.Do(context.Background(), "VisitsSummary.get", Params{"period": String("day")})
	if err != nil {
		t.Fatalf("first Do: %v", err)
	}
	if first.Cached {
		t.Fatalf("first call should not be cached")
	}
	if cache.puts != 1 {
		t.Fatalf("puts = %d, want 1", cache.puts)
	}

	second, err := c.Do(context.Background(), "VisitsSummary.get", Params{"period": String("day")})
	if err != nil {
		t.Fatalf("second Do: %v", err)
	}
	if !second.Cached {
		t.Fatalf("second call should be served from cache")
	}
	if got := fake.calls.Load(); got != 1 {
		t.Fatalf("transport calls = %d, want 1", got)
	}
}

func TestDoRedirectCap(t *testing.T) {
	var srv *httptest.Server
	hops := 0
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hops < 3 {
			hops++
			http.Redirect(w, r, srv.URL+fmt.Sprintf("/hop%d", hops), http.StatusFound)
			return
		}
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL})
	_, err := c.Do(context.Background(), "API.get", Params{})
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected transport error after exceeding redirect cap, got %v", err)
	}
}
