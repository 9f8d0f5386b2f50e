package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/estibuild/estibuild/plan"
)

// newHTTPServer creates an HTTP server with all endpoints
func newHTTPServer(app *App) http.Handler {
	mux := http.NewServeMux()

	// takeoff runs the pipeline over the startup drawing.
	takeoff := func() plan.TakeoffResult {
		return plan.Takeoff(app.Entities, app.Config)
	}

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[HTTP] /health request from %s", r.RemoteAddr)
		w.Header().Set("Content-Type", "application/json")
		status := struct {
			Status     string    `json:"status"`
			Timestamp  time.Time `json:"timestamp"`
			HasDrawing bool      `json:"hasDrawing"`
		}{
			Status:     "ok",
			Timestamp:  time.Now(),
			HasDrawing: len(app.Entities) > 0,
		}
		if err := json.NewEncoder(w).Encode(status); err != nil {
			log.Printf("Error encoding health status: %v", err)
		}
	})

	// Rendered plan endpoint (PNG)
	mux.HandleFunc("/plan.png", func(w http.ResponseWriter, r *http.Request) {
		if len(app.Entities) == 0 {
			http.Error(w, "No drawing loaded", http.StatusServiceUnavailable)
			return
		}

		result := takeoff()
		if len(result.Polygons) == 0 {
			log.Printf("Warning: drawing present but no rooms detected; endpoint=/plan.png")
			http.Error(w, "No rooms detected", http.StatusServiceUnavailable)
			return
		}

		renderer := newRenderer(app, result)
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-cache")
		if err := renderer.RenderToPNG(w); err != nil {
			log.Printf("Error encoding plan PNG: %v", err)
		}
	})

	// Rendered plan endpoint (SVG)
	mux.HandleFunc("/plan.svg", func(w http.ResponseWriter, r *http.Request) {
		if len(app.Entities) == 0 {
			http.Error(w, "No drawing loaded", http.StatusServiceUnavailable)
			return
		}

		result := takeoff()
		if len(result.Polygons) == 0 {
			log.Printf("Warning: drawing present but no rooms detected; endpoint=/plan.svg")
			http.Error(w, "No rooms detected", http.StatusServiceUnavailable)
			return
		}

		renderer := newRenderer(app, result)
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "no-cache")
		if err := renderer.RenderToSVG(w); err != nil {
			log.Printf("Error encoding plan SVG: %v", err)
		}
	})

	// Full takeoff result as JSON
	mux.HandleFunc("/estimate.json", func(w http.ResponseWriter, r *http.Request) {
		if len(app.Entities) == 0 {
			http.Error(w, "No drawing loaded", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")
		if err := json.NewEncoder(w).Encode(takeoff()); err != nil {
			log.Printf("Error encoding estimate JSON: %v", err)
		}
	})

	// Measurement sheet CSV
	mux.HandleFunc("/measurements.csv", func(w http.ResponseWriter, r *http.Request) {
		if len(app.Entities) == 0 {
			http.Error(w, "No drawing loaded", http.StatusServiceUnavailable)
			return
		}

		result := takeoff()
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Cache-Control", "no-cache")
		if err := plan.WriteMeasurementSheet(w, result.Aggregate); err != nil {
			log.Printf("Error writing measurement sheet: %v", err)
		}
	})

	// Abstract sheet CSV
	mux.HandleFunc("/abstract.csv", func(w http.ResponseWriter, r *http.Request) {
		if len(app.Entities) == 0 {
			http.Error(w, "No drawing loaded", http.StatusServiceUnavailable)
			return
		}

		result := takeoff()
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Cache-Control", "no-cache")
		if err := plan.WriteAbstractSheet(w, result.Aggregate, result.Materials); err != nil {
			log.Printf("Error writing abstract sheet: %v", err)
		}
	})

	// XLSX workbook with both sheets
	mux.HandleFunc("/report.xlsx", func(w http.ResponseWriter, r *http.Request) {
		if len(app.Entities) == 0 {
			http.Error(w, "No drawing loaded", http.StatusServiceUnavailable)
			return
		}

		result := takeoff()
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Cache-Control", "no-cache")
		if err := plan.WriteWorkbook(w, result.Aggregate, result.Materials); err != nil {
			log.Printf("Error writing workbook: %v", err)
		}
	})

	// Upload endpoint: entities in the request body, takeoff in the response
	mux.HandleFunc("/takeoff", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req struct {
			Entities []plan.Entity `json:"entities"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if len(req.Entities) == 0 {
			http.Error(w, "No entities in request", http.StatusBadRequest)
			return
		}

		result := plan.Takeoff(req.Entities, app.Config)
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			log.Printf("Error encoding takeoff JSON: %v", err)
		}
	})

	// Wrap with logging middleware
	return loggingMiddleware(mux)
}

// newRenderer builds a plan renderer reflecting the app configuration.
func newRenderer(app *App, result plan.TakeoffResult) *plan.PlanRenderer {
	renderer := plan.NewPlanRenderer(result.Polygons)
	renderer.Rooms = result.Aggregate.Rooms
	renderer.GridSpacing = app.Config.GridSpacing
	return renderer
}

// loggingMiddleware logs all HTTP requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[HTTP] %s %s from %s (%v)", r.Method, r.URL.Path, r.RemoteAddr, time.Since(start))
	})
}
