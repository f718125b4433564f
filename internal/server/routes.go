package server

import "net/http"

// setupRoutes registers all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/chat", s.app.ChatHandler.ServeChat)

	mux.HandleFunc("/health", s.app.APIHandler.ServeHealth)
	mux.HandleFunc("/health/live", s.app.APIHandler.ServeLiveness)
	mux.HandleFunc("/health/ready", s.app.APIHandler.ServeReadiness)
	mux.HandleFunc("/status", s.app.APIHandler.ServeStatus)
	mux.HandleFunc("/version", s.app.APIHandler.ServeVersion)

	mux.Handle("/metrics", s.app.Metrics.Handler())

	return mux
}
