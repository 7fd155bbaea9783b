package api

import (
    "encoding/json"
    "fmt"
    "log"
    "net/http"

    "github.com/example/mathsolve/internal/extract"
    "github.com/example/mathsolve/internal/models"
    "github.com/example/mathsolve/internal/render"
    "github.com/example/mathsolve/internal/solver"
)

type Server struct {
    Solver *solver.Solver
}

func NewServer(s *solver.Solver) *Server {
    return &Server{Solver: s}
}

// Event is a generic SSE payload wrapper.
type Event struct {
    Event   string      `json:"event"`
    Payload interface{} `json:"payload,omitempty"`
}

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
    mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusOK)
        w.Write([]byte("ok"))
    })

    mux.HandleFunc("/examples", func(w http.ResponseWriter, r *http.Request) {
        if r.Method != http.MethodGet { w.WriteHeader(http.StatusMethodNotAllowed); return }
        respondJSON(w, solver.ExamplePrompts())
    })

    mux.HandleFunc("/solve", s.handleSolve)
    mux.HandleFunc("/solve/stream", s.handleSolveStream)
    mux.HandleFunc("/extract", s.handleExtract)
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
    req, ok := decodeQuestion(w, r)
    if !ok { return }
    text, status := s.Solver.Solve(r.Context(), req.Question)
    respondJSON(w, models.SolveResponse{
        Answer:   text,
        Segments: render.Normalize(text),
        Status:   status,
    })
}

// handleSolveStream streams solver progress as SSE: `snapshot` events carry
// the cumulative text so far, `status` events announce a backoff retry, a
// final `segments` event carries the normalized answer, then `done`.
func (s *Server) handleSolveStream(w http.ResponseWriter, r *http.Request) {
    req, ok := decodeQuestion(w, r)
    if !ok { return }
    flusher, canFlush := w.(http.Flusher)
    if !canFlush {
        http.Error(w, "streaming unsupported", http.StatusInternalServerError)
        return
    }
    w.Header().Set("Content-Type", "text/event-stream")
    w.Header().Set("Cache-Control", "no-cache")
    w.Header().Set("Connection", "keep-alive")

    writeEvent := func(ev Event) error {
        b, _ := json.Marshal(ev)
        if _, err := fmt.Fprintf(w, "data: %s\n\n", b); err != nil { return err }
        flusher.Flush()
        return nil
    }

    final := ""
    failed := false
    for u := range s.Solver.Stream(r.Context(), req.Question) {
        switch u.Kind {
        case solver.UpdateSnapshot:
            final = u.Text
            failed = u.Failed
            writeEvent(Event{Event: "snapshot", Payload: map[string]any{"text": u.Text, "failed": u.Failed}})
        case solver.UpdateRetry:
            writeEvent(Event{Event: "status", Payload: map[string]any{
                "state":    models.StatusRetrying,
                "attempt":  u.Attempt,
                "delay_ms": u.Delay.Milliseconds(),
            }})
        }
    }

    segments := render.Normalize(final)
    for _, err := range render.Flush(segments, func(seg models.Segment) error {
        return writeEvent(Event{Event: "segment", Payload: seg})
    }) {
        log.Printf("segment render error: %v", err)
    }
    status := models.StatusCompleted
    if failed { status = models.StatusFailed }
    writeEvent(Event{Event: "done", Payload: map[string]any{"status": status}})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodPost { w.WriteHeader(http.StatusMethodNotAllowed); return }
    var req struct {
        DataBase64 string `json:"data_base64"`
    }
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }
    text, err := extract.QuestionFromPDF(req.DataBase64)
    if err != nil {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }
    respondJSON(w, map[string]string{"question": text})
}

func decodeQuestion(w http.ResponseWriter, r *http.Request) (models.SolveRequest, bool) {
    var req models.SolveRequest
    if r.Method != http.MethodPost {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return req, false
    }
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return req, false
    }
    if req.Question == "" {
        http.Error(w, "missing question", http.StatusBadRequest)
        return req, false
    }
    return req, true
}

func respondJSON(w http.ResponseWriter, v any) {
    w.Header().Set("Content-Type", "application/json")
    enc := json.NewEncoder(w)
    enc.SetIndent("", "  ")
    enc.Encode(v)
}
