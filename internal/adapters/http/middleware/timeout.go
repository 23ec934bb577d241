package middleware

import (
	"context"
	"maps"
	"net/http"
	"sync"
	"time"
)

// Timeout returns middleware that caps how long a handler may run. The
// request context carries the deadline so blocking work downstream can bail
// out early; a handler that overruns it gets its output discarded and the
// client receives a 504.
//
// The handler runs on its own goroutine against a buffered writer, so the
// deadline path and the handler never race on the real connection.
func Timeout(limit time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Protocol upgrades hijack the connection and outlive any
			// request deadline; buffering would break the handshake.
			if r.Header.Get("Upgrade") != "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), limit)
			defer cancel()

			buf := &bufferedResponse{dst: w}
			done := make(chan struct{})

			go func() {
				defer close(done)
				next.ServeHTTP(buf, r.WithContext(ctx))
			}()

			select {
			case <-done:
				buf.mu.Lock()
				defer buf.mu.Unlock()
				buf.release()
			case <-ctx.Done():
				buf.mu.Lock()
				defer buf.mu.Unlock()
				if !buf.wrote {
					w.WriteHeader(http.StatusGatewayTimeout)
				}
			}
		})
	}
}

// bufferedResponse holds the handler's output until the deadline race is
// decided. The mutex covers every field; the handler goroutine and the
// select above both take it.
type bufferedResponse struct {
	dst    http.ResponseWriter
	mu     sync.Mutex
	header http.Header
	body   []byte
	status int
	wrote  bool
}

func (b *bufferedResponse) Header() http.Header {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.header == nil {
		b.header = make(http.Header)
	}
	return b.header
}

func (b *bufferedResponse) WriteHeader(code int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.wrote {
		return
	}
	b.status = code
	b.wrote = true
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.wrote {
		b.status = http.StatusOK
		b.wrote = true
	}
	b.body = append(b.body, p...)
	return len(p), nil
}

// release copies the buffered output to the real writer. Callers hold b.mu.
func (b *bufferedResponse) release() {
	if b.header != nil {
		maps.Copy(b.dst.Header(), b.header)
	}
	if b.wrote {
		b.dst.WriteHeader(b.status)
	}
	if len(b.body) > 0 {
		_, _ = b.dst.Write(b.body)
	}
}
