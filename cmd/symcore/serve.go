package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sc "github.com/njchilds90/symcore"
)

const maxBodyBytes = 1 << 20

var serveCmd = &cobra.Command{
	Use:   "serve [flags]",
	Short: "serve the JSON tools over HTTP.",
	Long: `Expose the tools as an HTTP endpoint for agent frameworks:
	 POST /tool runs a tool call, GET /schema returns the tool schema and
	 GET /health is a liveness check.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		addr := fmt.Sprintf(":%d", getUint(cmd, "port"))
		srv := &http.Server{
			Addr:              addr,
			Handler:           newToolMux(),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		go func() {
			<-ctx.Done()
			shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdown); err != nil {
				log.Warnf("shutdown: %s", err)
			}
		}()
		log.Infof("symcore listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fatal(err)
		}
	},
}

func newToolMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/tool", handleTool)
	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, sc.ToolSchema())
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
	return mux
}

func handleTool(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			log.WithField("panic", rec).Errorf("tool call failed\n%s", debug.Stack())
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}()
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()
	//
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	var req sc.ToolRequest
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, sc.ToolResponse{Error: err.Error()})
		return
	}
	if dec.More() {
		writeJSON(w, http.StatusBadRequest, sc.ToolResponse{Error: "invalid JSON: trailing data"})
		return
	}
	resp := sc.HandleToolCall(req)
	log.WithField("tool", req.Tool).Debug(resp.String + resp.Error)
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("write response: %s", err)
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Uint("port", 8080, "port to listen on")
}
