package main

import (
    "log"
    "net/http"
    "os"

    "github.com/joho/godotenv"

    "github.com/example/mathsolve/internal/api"
    "github.com/example/mathsolve/internal/providers/llm"
    "github.com/example/mathsolve/internal/solver"
)

func main() {
    _ = godotenv.Load()

    // refuse to serve without a credential: no input is accepted and no
    // model call is ever attempted
    client, err := llm.NewFromEnv()
    if err != nil { log.Fatalf("configuration error: %v", err) }

    addr := ":8080"
    if v := os.Getenv("PORT"); v != "" {
        addr = ":" + v
    }

    mux := http.NewServeMux()
    api.NewServer(solver.New(client)).RegisterRoutes(mux)

    log.Printf("server listening on %s", addr)
    if err := http.ListenAndServe(addr, cors(mux)); err != nil {
        log.Fatal(err)
    }
}

// simple CORS middleware for local dev
func cors(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Access-Control-Allow-Origin", "*")
        w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
        w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
        if r.Method == http.MethodOptions {
            w.WriteHeader(http.StatusNoContent)
            return
        }
        next.ServeHTTP(w, r)
    })
}
