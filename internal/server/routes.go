package server

import "net/http"

// NewRouter registers the API routes wrapped in request logging.
func NewRouter(s *ServerContext) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/parcels", s.HandleParcels)
	mux.HandleFunc("/api/validate", s.HandleValidate)
	mux.HandleFunc("/api/formats", s.HandleFormats)

	return RequestLogger(mux)
}
