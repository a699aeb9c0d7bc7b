package fetch

import (
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

// MockHTTPClient implements HTTPClient for testing.
type MockHTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
}

func (mockClient *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return mockClient.DoFunc(req)
}

func TestRateLimitedHTTPClientPassesThrough(t *testing.T) {
	var calls int64
	mockClient := &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			atomic.AddInt64(&calls, 1)
			return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
		},
	}

	rateLimitedClient := NewRateLimitedHTTPClient(mockClient, 0)
	request, err := http.NewRequest(http.MethodGet, "https://api.case.law/v1/cases/4066790/", nil)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	response, err := rateLimitedClient.Do(request)
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d", response.StatusCode)
	}
	if atomic.LoadInt64(&calls) != 1 {
		t.Errorf("underlying client called %d times", calls)
	}
}

func TestRateLimitedHTTPClientEnforcesInterval(t *testing.T) {
	mockClient := &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
		},
	}

	interval := 50 * time.Millisecond
	rateLimitedClient := NewRateLimitedHTTPClient(mockClient, interval)
	request, _ := http.NewRequest(http.MethodGet, "https://api.case.law/v1/cases/", nil)

	started := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := rateLimitedClient.Do(request); err != nil {
			t.Fatalf("Do failed: %v", err)
		}
	}
	// The first request spends the initial token; the next two must wait.
	if elapsed := time.Since(started); elapsed < 2*interval {
		t.Errorf("3 requests completed in %v, want at least %v", elapsed, 2*interval)
	}
}

func TestResponseCache(t *testing.T) {
	responseCache := NewResponseCache(time.Minute)

	if _, found := responseCache.Get("missing"); found {
		t.Error("Get on empty cache reported a hit")
	}

	responseCache.Set("https://api.case.law/v1/cases/435800/", []byte(`{"id": 435800}`))
	body, found := responseCache.Get("https://api.case.law/v1/cases/435800/")
	if !found {
		t.Fatal("expected cache hit")
	}
	if string(body) != `{"id": 435800}` {
		t.Errorf("cached body = %q", body)
	}
	if responseCache.Len() != 1 {
		t.Errorf("Len() = %d", responseCache.Len())
	}

	responseCache.Invalidate("https://api.case.law/v1/cases/435800/")
	if _, found := responseCache.Get("https://api.case.law/v1/cases/435800/"); found {
		t.Error("expected miss after Invalidate")
	}
}
