package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
)

// gzipWriter откладывает заголовки до первой записи тела: ответы без тела
// (204, 304, пустой 200) уходят без Content-Encoding и без gzip-рамки.
type gzipWriter struct {
	http.ResponseWriter
	zw      *gzip.Writer
	status  int
	started bool
}

func (g *gzipWriter) WriteHeader(status int) {
	if g.started || g.status != 0 {
		return
	}
	if status < http.StatusOK {
		g.ResponseWriter.WriteHeader(status)
		return
	}
	g.status = status
}

func (g *gzipWriter) Write(b []byte) (int, error) {
	if !g.started {
		g.start()
	}
	if g.zw == nil {
		return g.ResponseWriter.Write(b)
	}
	return g.zw.Write(b)
}

func (g *gzipWriter) start() {
	g.started = true
	if g.status == 0 {
		g.status = http.StatusOK
	}
	if bodyAllowed(g.status) {
		g.Header().Del("Content-Length")
		g.Header().Set("Content-Encoding", "gzip")
		g.Header().Add("Vary", "Accept-Encoding")
		g.zw = gzip.NewWriter(g.ResponseWriter)
	}
	g.ResponseWriter.WriteHeader(g.status)
}

// Close отправляет отложенный статус, если тело так и не было записано,
// и дописывает gzip-поток.
func (g *gzipWriter) Close() error {
	if !g.started {
		if g.status == 0 {
			return nil
		}
		g.started = true
		g.ResponseWriter.WriteHeader(g.status)
		return nil
	}
	if g.zw == nil {
		return nil
	}
	return g.zw.Close()
}

func bodyAllowed(status int) bool {
	return status != http.StatusNoContent && status != http.StatusNotModified
}

type gzipReader struct {
	io.ReadCloser
	zr *gzip.Reader
}

func (g *gzipReader) Read(p []byte) (int, error) {
	return g.zr.Read(p)
}

func (g *gzipReader) Close() error {
	if err := g.zr.Close(); err != nil {
		return err
	}
	return g.ReadCloser.Close()
}

// GzipMiddleware распаковывает тела запросов с Content-Encoding: gzip и сжимает
// ответы для клиентов, принимающих gzip.
func GzipMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			zr, err := gzip.NewReader(r.Body)
			if err != nil {
				http.Error(w, "invalid gzip body", http.StatusBadRequest)
				return
			}
			r.Body = &gzipReader{ReadCloser: r.Body, zr: zr}
			r.Header.Del("Content-Encoding")
		}

		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gw := &gzipWriter{ResponseWriter: w}
		defer gw.Close()

		next.ServeHTTP(gw, r)
	})
}
