package transport_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procure-ai/client/internal/transport"
)

// roundTripperFunc lets a test stand in for the network layer so transport
// failures can be simulated deterministically.
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newClient(t *testing.T, baseURL string, maxRetries int) *transport.Client {
	t.Helper()
	c, err := transport.New(transport.Config{
		BaseURL: baseURL,
		Policy:  transport.RetryPolicy{MaxRetries: maxRetries, Delay: time.Millisecond},
	})
	require.NoError(t, err)
	return c
}

func TestRequest_DecodesSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := newClient(t, server.URL, 3)

	var out struct {
		Status string `json:"status"`
	}
	err := client.Request(context.Background(), http.MethodGet, "/health", nil, transport.Options{}, &out)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Status)
}

func TestRequest_RetriesTransportFailureThenSucceeds(t *testing.T) {
	attempts := 0
	rt := roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("connection refused")
		}
		return jsonResponse(http.StatusOK, `{"text":"answer"}`), nil
	})

	client := newClient(t, "http://backend.test", 3).WithHTTPClient(&http.Client{Transport: rt})

	var out struct {
		Text string `json:"text"`
	}
	err := client.Request(context.Background(), http.MethodPost, "/api/chat", transport.JSON(map[string]string{"q": "hi"}), transport.Options{}, &out)
	require.NoError(t, err)
	assert.Equal(t, "answer", out.Text)
	assert.Equal(t, 3, attempts)
}

func TestRequest_NetworkErrorAfterExhaustingRetries(t *testing.T) {
	attempts := 0
	rt := roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		attempts++
		return nil, errors.New("connection refused")
	})

	client := newClient(t, "http://backend.test", 2).WithHTTPClient(&http.Client{Transport: rt})

	err := client.Request(context.Background(), http.MethodGet, "/health", nil, transport.Options{}, nil)
	require.Error(t, err)

	var netErr *transport.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Contains(t, netErr.Error(), "failed to connect to the API server")
	// Budget of 2 retries means 3 attempts total.
	assert.Equal(t, 3, attempts)
}

func TestRequest_ServerRejectionIsNeverRetried(t *testing.T) {
	attempts := 0
	rt := roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		attempts++
		return jsonResponse(http.StatusUnprocessableEntity, `{"detail":"question is required"}`), nil
	})

	client := newClient(t, "http://backend.test", 5).WithHTTPClient(&http.Client{Transport: rt})

	err := client.Request(context.Background(), http.MethodPost, "/api/chat", transport.JSON(map[string]string{}), transport.Options{}, nil)
	require.Error(t, err)

	var apiErr *transport.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "question is required", apiErr.Detail)
	assert.Equal(t, 1, attempts)
}

func TestRequest_APIErrorFallsBackToErrorField(t *testing.T) {
	rt := roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, `{"error":"Invalid credentials"}`), nil
	})

	client := newClient(t, "http://backend.test", 0).WithHTTPClient(&http.Client{Transport: rt})

	err := client.Request(context.Background(), http.MethodPost, "/api/auth/login", transport.JSON(map[string]string{}), transport.Options{}, nil)

	var apiErr *transport.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid credentials", apiErr.Detail)
}

func TestRequest_PerRequestRetryOverride(t *testing.T) {
	attempts := 0
	rt := roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		attempts++
		return nil, errors.New("no route to host")
	})

	client := newClient(t, "http://backend.test", 5).WithHTTPClient(&http.Client{Transport: rt})

	err := client.Request(context.Background(), http.MethodGet, "/health", nil, transport.Options{Retries: transport.RetryCount(0)}, nil)
	require.Error(t, err)

	var netErr *transport.NetworkError
	assert.ErrorAs(t, err, &netErr)
	assert.Equal(t, 1, attempts)
}

func TestRequest_EncodesMultipartForm(t *testing.T) {
	var gotQuestion, gotModel, gotFileName, gotFileContent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotQuestion = r.FormValue("question")
		gotModel = r.FormValue("model")

		files := r.MultipartForm.File["files"]
		require.Len(t, files, 1)
		gotFileName = files[0].Filename
		f, err := files[0].Open()
		require.NoError(t, err)
		defer f.Close()
		content, err := io.ReadAll(f)
		require.NoError(t, err)
		gotFileContent = string(content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"received"}`))
	}))
	defer server.Close()

	client := newClient(t, server.URL, 0)

	form := transport.Form{
		Fields: map[string]string{"question": "what is our laptop budget?", "model": "ollama/llama2"},
		Files:  []transport.FormFile{{Field: "files", Name: "budget.csv", Data: []byte("item,cost")}},
	}

	var out struct {
		Text string `json:"text"`
	}
	err := client.Request(context.Background(), http.MethodPost, "/api/chat", form, transport.Options{}, &out)
	require.NoError(t, err)

	assert.Equal(t, "what is our laptop budget?", gotQuestion)
	assert.Equal(t, "ollama/llama2", gotModel)
	assert.Equal(t, "budget.csv", gotFileName)
	assert.Equal(t, "item,cost", gotFileContent)
	assert.Equal(t, "received", out.Text)
}

func TestRequest_ContextCancellationStopsRetrying(t *testing.T) {
	attempts := 0
	rt := roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		attempts++
		return nil, errors.New("connection refused")
	})

	c, err := transport.New(transport.Config{
		BaseURL: "http://backend.test",
		Policy:  transport.RetryPolicy{MaxRetries: 10, Delay: 50 * time.Millisecond},
	})
	require.NoError(t, err)
	c.WithHTTPClient(&http.Client{Transport: rt})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	reqErr := c.Request(ctx, http.MethodGet, "/health", nil, transport.Options{}, nil)
	require.Error(t, reqErr)

	var netErr *transport.NetworkError
	assert.ErrorAs(t, reqErr, &netErr)
	assert.Less(t, attempts, 11)
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	_, err := transport.New(transport.Config{BaseURL: "http://x", Policy: transport.RetryPolicy{MaxRetries: -1}})
	assert.Error(t, err)
}
