// Package oauth runs the browser sign-in that lets TriStep send review
// notifications through Gmail as the signed-in user.
package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"sync"
	"time"
)

const callbackPath = "/callback"

// CallbackServer receives the authorization redirect on the loopback interface.
type CallbackServer struct {
	mu       sync.Mutex
	port     int
	state    string
	results  chan callbackResult
	server   *http.Server
	listener net.Listener
}

type callbackResult struct {
	code string
	err  error
}

// NewCallbackServer creates a callback server that accepts only redirects
// carrying state. Port 0 picks a free port on Start.
func NewCallbackServer(port int, state string) *CallbackServer {
	return &CallbackServer{
		port:    port,
		state:   state,
		results: make(chan callbackResult, 1),
	}
}

// Start listens on 127.0.0.1 and serves the callback in the background.
func (s *CallbackServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener
	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		s.port = tcpAddr.Port
	}

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, s.handleCallback)
	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	srv := s.server
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.deliver(callbackResult{err: err})
		}
	}()

	return nil
}

// deliver keeps the first result; later callbacks are ignored.
func (s *CallbackServer) deliver(r callbackResult) {
	select {
	case s.results <- r:
	default:
	}
}

func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if errParam := q.Get("error"); errParam != "" {
		s.deliver(callbackResult{err: fmt.Errorf("authorization denied: %s %s", errParam, q.Get("error_description"))})
		fmt.Fprint(w, resultPage("Authorization failed", q.Get("error_description")))
		return
	}
	if q.Get("state") != s.state {
		s.deliver(callbackResult{err: errors.New("authorization failed: state mismatch")})
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, resultPage("Authorization failed", "The sign-in request did not match."))
		return
	}
	code := q.Get("code")
	if code == "" {
		s.deliver(callbackResult{err: errors.New("authorization failed: no code received")})
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, resultPage("Authorization failed", "No authorization code was received."))
		return
	}

	s.deliver(callbackResult{code: code})
	fmt.Fprint(w, resultPage("TriStep is authorised", "You can close this window and return to the terminal."))
}

// Wait blocks until a callback arrives or ctx is done.
func (s *CallbackServer) Wait(ctx context.Context) (string, error) {
	select {
	case r := <-s.results:
		return r.code, r.err
	case <-ctx.Done():
		return "", fmt.Errorf("waiting for authorization: %w", ctx.Err())
	}
}

// Stop shuts the server down. It is safe to call more than once.
func (s *CallbackServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.server.Shutdown(ctx)
	s.server = nil
	return err
}

// Port returns the listening port once started.
func (s *CallbackServer) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}

// RedirectURI is the loopback redirect registered with the authorization request.
func (s *CallbackServer) RedirectURI() string {
	return fmt.Sprintf("http://127.0.0.1:%d%s", s.Port(), callbackPath)
}

// NewState returns a random URL-safe state value.
func NewState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func resultPage(title, message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>TriStep - Google sign-in</title>
    <style>
        body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; display: flex;
               justify-content: center; align-items: center; height: 100vh; margin: 0; background: #FAFAFA; }
        .card { text-align: center; background: white; padding: 48px 64px; border-radius: 16px;
                border: 1px solid #C7C8CC; }
        h1 { color: #333F50; margin: 0 0 8px 0; font-size: 24px; }
        p { color: #7B8088; margin: 0; }
    </style>
</head>
<body>
    <div class="card">
        <h1>%s</h1>
        <p>%s</p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(message))
}
