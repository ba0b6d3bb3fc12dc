package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	minjs "github.com/tdewolff/minify/v2/js"
)

var minifiable = map[string]string{
	".css": "text/css",
	".js":  "application/javascript",
}

type asset struct {
	body        []byte
	contentType string
	etag        string
}

// assetBundle holds the minified stylesheets and scripts of the static
// directory. It is built once and only read afterwards.
type assetBundle struct {
	dir     string
	files   map[string]asset
	builtAt time.Time
}

func buildAssets(dir string) (*assetBundle, error) {
	m := minify.New()
	m.AddFunc("text/css", mincss.Minify)
	m.AddFunc("application/javascript", minjs.Minify)

	bundle := &assetBundle{
		dir:     dir,
		files:   make(map[string]asset),
		builtAt: time.Now(),
	}

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		mediaType, ok := minifiable[filepath.Ext(p)]
		if d.IsDir() || !ok || strings.Contains(filepath.Base(p), ".min.") {
			return nil
		}

		original, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		minified, err := m.Bytes(mediaType, original)
		if err != nil {
			return fmt.Errorf("failed to minify %s: %w", p, err)
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		sum := sha256.Sum256(minified)
		bundle.files["/"+filepath.ToSlash(rel)] = asset{
			body:        minified,
			contentType: mediaType + "; charset=utf-8",
			etag:        `"` + hex.EncodeToString(sum[:])[:16] + `"`,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build assets from %s: %w", dir, err)
	}

	return bundle, nil
}

// serve answers /static/*filepath from the bundle and falls back to the
// files on disk for anything it did not minify. Missing files and
// directories go to notFound.
func (b *assetBundle) serve(notFound gin.HandlerFunc) gin.HandlerFunc {
	files := http.StripPrefix("/static", http.FileServer(http.Dir(b.dir)))

	return func(c *gin.Context) {
		name := path.Clean(c.Param("filepath"))
		a, ok := b.files[name]
		if !ok {
			info, err := os.Stat(filepath.Join(b.dir, filepath.FromSlash(name)))
			if err != nil || info.IsDir() {
				notFound(c)
				return
			}
			files.ServeHTTP(c.Writer, c.Request)
			return
		}

		c.Header("Content-Type", a.contentType)
		c.Header("ETag", a.etag)
		c.Header("Cache-Control", "public, max-age=86400")
		http.ServeContent(c.Writer, c.Request, name, b.builtAt, bytes.NewReader(a.body))
	}
}
