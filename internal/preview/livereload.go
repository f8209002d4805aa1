package preview

import (
	"bufio"
	"bytes"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// reloadPath is the SSE endpoint. The leading dot keeps it out of the way of
// any real page the generator might emit.
const reloadPath = "/.livereload"

const heartbeatInterval = 30 * time.Second

// ReloadHub fans a rebuild notification out to connected browsers over SSE.
// Events carry no payload; any message means "the output changed, reload".
type ReloadHub struct {
	mu      sync.Mutex
	nextID  int
	clients map[int]*reloadClient
	closed  bool
}

type reloadClient struct {
	ch   chan struct{}
	done chan struct{}
}

func NewReloadHub() *ReloadHub {
	return &ReloadHub{clients: map[int]*reloadClient{}}
}

// ServeHTTP implements the SSE endpoint.
func (h *ReloadHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "stream unsupported", http.StatusInternalServerError)
		return
	}

	client := &reloadClient{ch: make(chan struct{}, 1), done: make(chan struct{})}
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	id := h.nextID
	h.nextID++
	h.clients[id] = client
	h.mu.Unlock()
	defer h.removeClient(id)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(": connected\n\n"); err != nil {
		return
	}
	if err := bw.Flush(); err != nil {
		return
	}
	flusher.Flush()

	hb := time.NewTicker(heartbeatInterval)
	defer hb.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-client.done:
			return
		case <-hb.C:
			if _, err := bw.WriteString(": ping\n\n"); err != nil {
				return
			}
			if err := bw.Flush(); err != nil {
				return
			}
			flusher.Flush()
		case <-client.ch:
			if _, err := bw.WriteString("data: reload\n\n"); err != nil {
				return
			}
			if err := bw.Flush(); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (h *ReloadHub) removeClient(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, id)
}

// Broadcast notifies every connected client. A client whose buffer is full
// already has a reload pending, so the event is simply dropped for it.
func (h *ReloadHub) Broadcast() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	snapshot := make([]*reloadClient, 0, len(h.clients))
	for _, c := range h.clients {
		snapshot = append(snapshot, c)
	}
	h.mu.Unlock()

	for _, c := range snapshot {
		select {
		case c.ch <- struct{}{}:
		default:
		}
	}
	slog.Debug("reload broadcast", "clients", len(snapshot))
}

// Shutdown disconnects all clients and rejects new ones.
func (h *ReloadHub) Shutdown() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	clients := h.clients
	h.clients = map[int]*reloadClient{}
	h.mu.Unlock()
	for _, c := range clients {
		close(c.done)
	}
}

// reloadScript reconnects with a short backoff so a preview restart does not
// strand open tabs.
const reloadScript = `(() => {
  if (window.__BLOGBUILDER_RELOAD__) return;
  window.__BLOGBUILDER_RELOAD__ = true;
  function connect() {
    const es = new EventSource('/.livereload');
    es.onmessage = () => { location.reload(); };
    es.onerror = () => { es.close(); setTimeout(connect, 2000); };
  }
  connect();
})();`

const reloadScriptTag = "<script>" + reloadScript + "</script>"

// injectReloadScript buffers HTML responses and splices the reload script in
// before </body>. Anything that is not a plain 200 text/html response passes
// through untouched.
func injectReloadScript(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		iw := &injectingWriter{rw: w}
		next.ServeHTTP(iw, r)
		if err := iw.finish(); err != nil {
			slog.Debug("reload script inject", logfields.Error(err))
		}
	})
}

type injectingWriter struct {
	rw          http.ResponseWriter
	status      int
	wroteHeader bool
	buffering   bool
	buf         bytes.Buffer
}

func (w *injectingWriter) Header() http.Header { return w.rw.Header() }

func (w *injectingWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.status = status
	ct := w.rw.Header().Get("Content-Type")
	w.buffering = status == http.StatusOK && strings.HasPrefix(ct, "text/html")
	if !w.buffering {
		w.rw.WriteHeader(status)
	}
}

func (w *injectingWriter) Write(p []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if w.buffering {
		return w.buf.Write(p)
	}
	return w.rw.Write(p)
}

func (w *injectingWriter) finish() error {
	if !w.buffering {
		return nil
	}
	body := w.buf.Bytes()
	tag := []byte(reloadScriptTag)
	if idx := bytes.LastIndex(body, []byte("</body>")); idx >= 0 {
		merged := make([]byte, 0, len(body)+len(tag))
		merged = append(merged, body[:idx]...)
		merged = append(merged, tag...)
		merged = append(merged, body[idx:]...)
		body = merged
	} else {
		body = append(body, tag...)
	}
	w.rw.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.rw.WriteHeader(w.status)
	_, err := w.rw.Write(body)
	return err
}
