package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
)

// AssetsWithCache wraps a file server with Cache-Control, Vary, and lazy
// per-file ETag handling.
func AssetsWithCache(dir string) http.Handler {
	srv := &assetServer{
		dir:   dir,
		fs:    http.FileServer(http.Dir(dir)),
		etags: map[string]string{},
	}
	return srv
}

type assetServer struct {
	dir string
	fs  http.Handler

	mu    sync.Mutex
	etags map[string]string
}

func (s *assetServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Vary", "Accept-Encoding")
	w.Header().Set("Cache-Control", "public, max-age=604800, stale-while-revalidate=86400")

	if et := s.etag(r.URL.Path); et != "" {
		w.Header().Set("ETag", et)
		if inm := r.Header.Get("If-None-Match"); inm != "" && inm == et {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	s.fs.ServeHTTP(w, r)
}

func (s *assetServer) etag(urlPath string) string {
	s.mu.Lock()
	if et, ok := s.etags[urlPath]; ok {
		s.mu.Unlock()
		return et
	}
	s.mu.Unlock()

	f, err := http.Dir(s.dir).Open(urlPath)
	if err != nil {
		return ""
	}
	defer f.Close()
	if info, err := f.Stat(); err != nil || info.IsDir() {
		return ""
	}

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return ""
	}
	et := `W/"` + hex.EncodeToString(h.Sum(nil)) + `"`

	s.mu.Lock()
	s.etags[urlPath] = et
	s.mu.Unlock()
	return et
}
