package main

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Masterminds/sprig/v3"
	"github.com/gin-gonic/gin"
)

// portfolio holds what the handlers share. Everything in it is either
// read-only or safe for concurrent use.
type portfolio struct {
	content  ContentProvider
	flashes  *FlashStore
	sessions *Sessions
	log      *slog.Logger
}

// newRouter builds the site: page routes, the contact form, static assets
// and the 404/500 pages.
func newRouter(cfg Config, content ContentProvider, flashes *FlashStore, log *slog.Logger) (*gin.Engine, error) {
	p := &portfolio{
		content:  content,
		flashes:  flashes,
		sessions: NewSessions(cfg.SecretKey),
		log:      log,
	}

	r := gin.New()
	r.RedirectTrailingSlash = false
	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("failed to configure trusted proxies: %w", err)
	}

	if err := loadTemplates(r, cfg); err != nil {
		return nil, err
	}

	r.Use(
		requestLogger(log, p.sessions),
		recovery(log, p.serverError),
		errorPages(p.serverError),
	)

	if cfg.Debug {
		r.Static("/static", cfg.StaticDir)
	} else {
		assets, err := buildAssets(cfg.StaticDir)
		if err != nil {
			return nil, err
		}
		r.GET("/static/*filepath", assets.serve(p.notFound))
		r.HEAD("/static/*filepath", assets.serve(p.notFound))
	}

	pages := []struct {
		path    string
		handler gin.HandlerFunc
	}{
		{"/", p.home},
		{"/about", p.about},
		{"/skills", p.skills},
		{"/projects", p.projects},
		{"/resume", p.resume},
		{"/contact", p.contact},
	}
	for _, page := range pages {
		r.GET(page.path, page.handler)
		r.HEAD(page.path, page.handler)
	}
	r.POST("/contact", p.submitContact)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.NoRoute(p.notFound)

	return r, nil
}

// loadTemplates parses the page templates once, or per request in debug mode.
func loadTemplates(r *gin.Engine, cfg Config) error {
	matches, err := filepath.Glob(cfg.TemplatesGlob)
	if err != nil {
		return fmt.Errorf("invalid templates glob %q: %w", cfg.TemplatesGlob, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no templates match %q", cfg.TemplatesGlob)
	}

	r.SetFuncMap(sprig.FuncMap())
	if cfg.Debug {
		r.LoadHTMLGlob(cfg.TemplatesGlob)
		return nil
	}

	templ, err := template.New("").Funcs(sprig.FuncMap()).ParseGlob(cfg.TemplatesGlob)
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	r.SetHTMLTemplate(templ)
	return nil
}

// render hands a page to the template engine together with the session's
// pending flash notices. HEAD requests leave the notices queued.
func (p *portfolio) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["page"] = strings.TrimSuffix(name, ".html")

	if c.Request.Method != http.MethodHead {
		if sessionID, ok := p.sessions.Lookup(c); ok {
			data["flashes"] = p.flashes.Drain(sessionID)
		}
	}

	c.HTML(status, name, data)
}

func (p *portfolio) notFound(c *gin.Context) {
	p.render(c, http.StatusNotFound, "404.html", nil)
}

func (p *portfolio) serverError(c *gin.Context) {
	p.render(c, http.StatusInternalServerError, "500.html", nil)
	if !c.Writer.Written() {
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
