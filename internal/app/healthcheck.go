package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

// healthHandler reports that the process is alive.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// statusHandler writes a JSON snapshot of the running dinner.
func (a *App) statusHandler(w http.ResponseWriter, r *http.Request) {
	s := a.currentSession()
	if s == nil {
		http.Error(w, "no dinner", http.StatusServiceUnavailable)
		return
	}
	a.writeJSON(w, s.Snapshot())
}

// philosopherHandler writes the snapshot of a single philosopher.
func (a *App) philosopherHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "philosopher id must be a number", http.StatusBadRequest)
		return
	}
	s := a.currentSession()
	if s == nil {
		http.Error(w, "no dinner", http.StatusServiceUnavailable)
		return
	}
	for _, p := range s.Snapshot().Philosophers {
		if p.ID == id {
			a.writeJSON(w, p)
			return
		}
	}
	http.Error(w, fmt.Sprintf("philosopher %d is not at the table", id), http.StatusNotFound)
}

func (a *App) writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	if err != nil {
		a.logger.Error("Encoding status failed.", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(bytes)
}

func (a *App) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", a.healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/status", a.statusHandler).Methods(http.MethodGet)
	r.HandleFunc("/status/{id}", a.philosopherHandler).Methods(http.MethodGet)
	return r
}

// healthCheckServer initializes and runs the health check HTTP server.
func (a *App) healthCheckServer() {
	a.logger.Debug("Configuring health check server.")
	if a.config.HealthcheckPort <= 0 {
		a.logger.Debug("Health check server not started: disabled")
		return
	}

	addr := fmt.Sprintf(":%d", a.config.HealthcheckPort)
	a.httpServer = &http.Server{
		Addr:              addr,
		Handler:           a.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		a.logger.Info("🩺 Health check server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		// ListenAndServe returns ErrServerClosed on graceful shutdown.
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Health check server failed unexpectedly", "error", err)
		}
	}()
}

func (a *App) closeHealthCheckServer() error {
	if a.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()

	a.logger.Info("🩺 Shutting down health check server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	a.logger.Debug("Health check server shut down gracefully.")
	return nil
}
