package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSS = `/* comment */
body {
    margin: 0;
    color: #ffffff;
}
`

const testJS = `// comment
function greet(name) {
    var message = "hello " + name;
    return message;
}
`

func setupAssetDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "js"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "site.css"), []byte(testCSS), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "js", "site.js"), []byte(testJS), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "js", "vendor.min.js"), []byte("var a=1;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "robots.txt"), []byte("User-agent: *\n"), 0o644))
	return dir
}

func TestBuildAssets_MinifiesStylesAndScripts(t *testing.T) {
	bundle, err := buildAssets(setupAssetDir(t))
	require.NoError(t, err)

	css, ok := bundle.files["/css/site.css"]
	require.True(t, ok)
	assert.Less(t, len(css.body), len(testCSS))
	assert.NotContains(t, string(css.body), "comment")
	assert.Equal(t, "text/css; charset=utf-8", css.contentType)
	assert.NotEmpty(t, css.etag)

	js, ok := bundle.files["/js/site.js"]
	require.True(t, ok)
	assert.Less(t, len(js.body), len(testJS))
	assert.Equal(t, "application/javascript; charset=utf-8", js.contentType)

	_, ok = bundle.files["/js/vendor.min.js"]
	assert.False(t, ok, "already minified files are left alone")
	_, ok = bundle.files["/robots.txt"]
	assert.False(t, ok)
}

func TestBuildAssets_MissingDir(t *testing.T) {
	_, err := buildAssets(filepath.Join(t.TempDir(), "missing"))

	assert.Error(t, err)
}

func newAssetRouter(t *testing.T) (*gin.Engine, *assetBundle) {
	t.Helper()

	bundle, err := buildAssets(setupAssetDir(t))
	require.NoError(t, err)

	r := gin.New()
	r.GET("/static/*filepath", bundle.serve(func(c *gin.Context) {
		c.String(http.StatusNotFound, "not found")
	}))
	return r, bundle
}

func TestAssetBundle_Serve(t *testing.T) {
	r, bundle := newAssetRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/css/site.css", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(bundle.files["/css/site.css"].body), w.Body.String())
	assert.Equal(t, "text/css; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, bundle.files["/css/site.css"].etag, w.Header().Get("ETag"))
}

func TestAssetBundle_ServeNotModified(t *testing.T) {
	r, bundle := newAssetRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/static/js/site.js", nil)
	req.Header.Set("If-None-Match", bundle.files["/js/site.js"].etag)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestAssetBundle_ServeFallsBackToDisk(t *testing.T) {
	r, _ := newAssetRouter(t)

	tests := []struct {
		path string
		code int
		body string
	}{
		{"/static/robots.txt", http.StatusOK, "User-agent: *\n"},
		{"/static/js/vendor.min.js", http.StatusOK, "var a=1;"},
		{"/static/missing.css", http.StatusNotFound, "not found"},
		{"/static/css", http.StatusNotFound, "not found"},
		{"/static/../assets.go", http.StatusNotFound, "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestBuildAssets_SiteScript(t *testing.T) {
	bundle, err := buildAssets("static")
	require.NoError(t, err)

	js, ok := bundle.files["/js/main.js"]
	require.True(t, ok)
	assert.Contains(t, string(js.body), "back-to-top")
	assert.Contains(t, string(js.body), "IntersectionObserver")

	css, ok := bundle.files["/css/style.css"]
	require.True(t, ok)
	assert.Contains(t, string(css.body), ".back-to-top.visible")
}
