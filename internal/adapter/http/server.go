package http

import (
	"net/http"

	"github.com/bnema/reelvault/internal/adapter/http/middleware"
)

type Server struct {
	mux      *http.ServeMux
	handlers *Handlers
	authSvc  AuthService
}

func NewServer(authSvc AuthService, videoSvc VideoService, assetsRoot string, maxThumbnailBytes, maxVideoBytes int64) *Server {
	s := &Server{
		mux:      http.NewServeMux(),
		handlers: NewHandlers(authSvc, videoSvc, maxThumbnailBytes, maxVideoBytes),
		authSvc:  authSvc,
	}

	s.registerRoutes(assetsRoot)
	return s
}

func (s *Server) registerRoutes(assetsRoot string) {
	s.mux.HandleFunc("POST /api/users", s.handlers.CreateUser())
	s.mux.HandleFunc("POST /api/login", s.handlers.Login())

	s.mux.HandleFunc("POST /api/video_meta", AuthMiddleware(s.authSvc, s.handlers.CreateVideo()))
	s.mux.HandleFunc("GET /api/video_meta", AuthMiddleware(s.authSvc, s.handlers.ListVideos()))
	s.mux.HandleFunc("GET /api/video_meta/{videoID}", s.handlers.GetVideo())
	s.mux.HandleFunc("DELETE /api/video_meta/{videoID}", AuthMiddleware(s.authSvc, s.handlers.DeleteVideo()))

	s.mux.HandleFunc("POST /api/thumbnail/{videoID}", AuthMiddleware(s.authSvc, s.handlers.UploadThumbnail()))
	s.mux.HandleFunc("GET /api/thumbnails/{videoID}", s.handlers.GetThumbnail())

	s.mux.HandleFunc("POST /api/video/{videoID}", AuthMiddleware(s.authSvc, s.handlers.UploadVideo()))

	// Disk-backed thumbnails are also reachable as plain static files.
	s.mux.Handle("GET /assets/", http.StripPrefix("/assets/",
		http.FileServer(http.Dir(assetsRoot))))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	middleware.SecurityHeaders(s.mux).ServeHTTP(w, r)
}
