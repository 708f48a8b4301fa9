package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type payload struct {
	Name string `json:"name"`
}

type problem struct {
	Detail string `json:"detail"`
}

type recordingLogger struct {
	requests  int
	successes int
	failures  int
}

func (l *recordingLogger) LogRequest(string, string, map[string]string, string) {
	l.requests++
}

func (l *recordingLogger) LogResponseSuccess(string, string, map[string]string, string, int, string, int64) {
	l.successes++
}

func (l *recordingLogger) LogResponseError(string, string, map[string]string, string, int, string, int64, error) {
	l.failures++
}

func TestRequestExecute(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        []byte
		wantName    string
		wantDetail  string
		wantErr     bool
	}{
		{
			name:        "json success",
			status:      http.StatusOK,
			contentType: "application/json",
			body:        []byte(`{"name":"plain"}`),
			wantName:    "plain",
		},
		{
			name:        "geo json success",
			status:      http.StatusOK,
			contentType: "application/geo+json",
			body:        []byte(`{"name":"geo"}`),
			wantName:    "geo",
		},
		{
			name:        "latin1 body is transcoded",
			status:      http.StatusOK,
			contentType: "application/json; charset=ISO-8859-1",
			body:        []byte("{\"name\":\"S\xe3o Paulo\"}"),
			wantName:    "São Paulo",
		},
		{
			name:        "problem details on error",
			status:      http.StatusNotFound,
			contentType: "application/problem+json",
			body:        []byte(`{"detail":"Unable to provide data for requested point"}`),
			wantDetail:  "Unable to provide data for requested point",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				_, _ = w.Write(tt.body)
			}))
			defer srv.Close()

			client := NewHttpClient(srv.URL, ClientOptions{})
			success, failure, status, err := client.Request().
				WithPath("/resource").
				WithSuccessResp(&payload{}).
				WithErrorResp(&problem{}).
				Execute()

			if status != tt.status {
				t.Errorf("status = %d, want %d", status, tt.status)
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var statusErr *StatusError
				if !errors.As(err, &statusErr) || statusErr.StatusCode != tt.status {
					t.Errorf("expected StatusError with code %d, got %v", tt.status, err)
				}
				p, ok := failure.(*problem)
				if !ok || p.Detail != tt.wantDetail {
					t.Errorf("error response = %#v, want detail %q", failure, tt.wantDetail)
				}
				return
			}
			p, ok := success.(*payload)
			if !ok || p.Name != tt.wantName {
				t.Errorf("success response = %#v, want name %q", success, tt.wantName)
			}
		})
	}
}

func TestDefaultHeaders(t *testing.T) {
	var gotAgent, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewHttpClient(srv.URL, ClientOptions{
		DefaultHeaders: map[string]string{
			"User-Agent": "(forecast-api, contact@example.com)",
			"Accept":     "application/geo+json",
		},
	})

	_, _, _, err := client.Request().
		WithContext(context.Background()).
		WithPath("points").
		WithSuccessResp(&payload{}).
		Execute()
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if gotAgent != "(forecast-api, contact@example.com)" {
		t.Errorf("User-Agent = %q", gotAgent)
	}
	if gotAccept != "application/geo+json" {
		t.Errorf("Accept = %q", gotAccept)
	}
}

func TestNotFoundIsAlwaysAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewHttpClient(srv.URL, ClientOptions{})
	success, failure, status, err := client.Request().
		WithPath("/points/0.0000,0.0000").
		WithSuccessResp(&payload{}).
		WithErrorResp(&problem{}).
		Execute()

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || status != http.StatusNotFound {
		t.Fatalf("status = %d, err = %v, want StatusError 404", status, err)
	}
	if success != nil || failure != nil {
		t.Errorf("success = %#v, failure = %#v, want both nil", success, failure)
	}
}

func TestAbsolutePathBypassesBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/gridpoints/TOP/31,80/forecast" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write([]byte(`{"name":"absolute"}`))
	}))
	defer srv.Close()

	client := NewHttpClient("http://base.invalid", ClientOptions{})
	success, _, _, err := client.Request().
		WithPath(srv.URL + "/gridpoints/TOP/31,80/forecast").
		WithSuccessResp(&payload{}).
		Execute()
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if success.(*payload).Name != "absolute" {
		t.Errorf("unexpected payload %#v", success)
	}
}

func TestLoggerIsCalled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	logger := &recordingLogger{}
	client := NewHttpClient(srv.URL, ClientOptions{Logger: logger})

	_, _, _, _ = client.Request().WithPath("/ok").WithSuccessResp(&payload{}).Execute()
	_, _, _, _ = client.Request().WithPath("/fail").WithSuccessResp(&payload{}).Execute()

	if logger.requests != 2 || logger.successes != 1 || logger.failures != 1 {
		t.Errorf("logger calls = %+v", logger)
	}
}

func TestContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewHttpClient(srv.URL, ClientOptions{})
	_, _, status, err := client.Request().WithContext(ctx).WithPath("/slow").Execute()
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
	if status != 0 {
		t.Errorf("status = %d, want 0", status)
	}
}

func TestZapLoggerTruncate(t *testing.T) {
	l := &ZapLogger{MaxBodyLength: 4}
	if got := l.truncate("abcdef"); got != "abcd..." {
		t.Errorf("truncate() = %q", got)
	}
	if got := l.truncate("abc"); got != "abc" {
		t.Errorf("truncate() = %q", got)
	}
}
