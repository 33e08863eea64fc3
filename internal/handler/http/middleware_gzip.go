package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Compressors and decompressors are pooled: gzip state is expensive to
// allocate per request and Reset makes reuse safe.
var (
	compressorPool = sync.Pool{
		New: func() any { return gzip.NewWriter(nil) },
	}
	decompressorPool = sync.Pool{
		New: func() any { return new(gzip.Reader) },
	}
)

// withGZip transparently decompresses gzip request bodies and compresses
// responses for clients that advertise gzip in Accept-Encoding. A body that
// claims Content-Encoding: gzip but does not parse is answered with 400.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") && r.Body != nil {
			decompressor := decompressorPool.Get().(*gzip.Reader)
			if err := decompressor.Reset(r.Body); err != nil {
				decompressorPool.Put(decompressor)
				http.Error(w, "Invalid gzip data", http.StatusBadRequest)
				return
			}

			r.Body = &pooledBody{
				Reader: decompressor,
				release: func() {
					decompressor.Close()
					decompressorPool.Put(decompressor)
				},
			}
			// the handler below sees a plain body
			r.Header.Del("Content-Encoding")
		}

		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		compressor := compressorPool.Get().(*gzip.Writer)
		compressor.Reset(w)

		next.ServeHTTP(&compressedResponseWriter{ResponseWriter: w, compressor: compressor}, r)

		compressor.Close()
		compressorPool.Put(compressor)
	})
}

// pooledBody is a request body whose Close returns the underlying gzip
// reader to the pool instead of closing the wire stream.
type pooledBody struct {
	io.Reader
	release func()
}

func (b *pooledBody) Close() error {
	if b.release != nil {
		b.release()
	}
	return nil
}

// compressedResponseWriter routes the response body through a pooled gzip
// writer and stamps the Content-Encoding header before the status line.
type compressedResponseWriter struct {
	http.ResponseWriter
	compressor *gzip.Writer
}

func (w *compressedResponseWriter) WriteHeader(statusCode int) {
	w.Header().Set("Content-Encoding", "gzip")
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *compressedResponseWriter) Write(p []byte) (int, error) {
	return w.compressor.Write(p)
}
