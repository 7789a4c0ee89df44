package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type gzipBody struct {
	reader *gzip.Reader
	inner  io.ReadCloser
}

func (b gzipBody) Read(p []byte) (int, error) { return b.reader.Read(p) }

func (b gzipBody) Close() error {
	if err := b.reader.Close(); err != nil {
		_ = b.inner.Close()
		return err
	}
	return b.inner.Close()
}

// DecompressRequest transparently unpacks gzip encoded request bodies
// so handlers always bind plain JSON.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		encoding := c.GetHeader("Content-Encoding")
		if !strings.Contains(strings.ToLower(encoding), "gzip") {
			c.Next()
			return
		}

		reader, err := gzip.NewReader(c.Request.Body)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}

		c.Request.Body = gzipBody{reader: reader, inner: c.Request.Body}
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}
