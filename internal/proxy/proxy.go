package proxy

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aircooling/backoffice/internal/httperr"
	"github.com/aircooling/backoffice/internal/logging"
)

const DefaultTarget = "http://localhost:3000"

// Rule forwards every path starting with Prefix to Target, path and query
// unchanged.
type Rule struct {
	Prefix string
	Target string
}

// DefaultRules is the admin dashboard's table: all data calls go to the
// public site.
func DefaultRules(webAPIURL string) []Rule {
	if webAPIURL == "" {
		webAPIURL = DefaultTarget
	}
	return []Rule{
		{Prefix: "/api/", Target: webAPIURL},
	}
}

type route struct {
	prefix string
	proxy  *httputil.ReverseProxy
}

type Proxy struct {
	routes []route
	log    *zap.Logger
}

func New(rules []Rule, log *zap.Logger) (*Proxy, error) {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Proxy{log: log}

	for _, rule := range rules {
		target, err := url.Parse(rule.Target)
		if err != nil || target.Scheme == "" || target.Host == "" {
			return nil, fmt.Errorf("proxy rule %q: invalid target %q", rule.Prefix, rule.Target)
		}

		rp := &httputil.ReverseProxy{
			Rewrite: func(pr *httputil.ProxyRequest) {
				pr.SetURL(target)
				pr.SetXForwarded()
			},
			ErrorHandler: p.upstreamFailed,
		}
		p.routes = append(p.routes, route{prefix: rule.Prefix, proxy: rp})
	}
	return p, nil
}

func (p *Proxy) match(path string) *httputil.ReverseProxy {
	for _, r := range p.routes {
		if strings.HasPrefix(path, r.prefix) {
			return r.proxy
		}
	}
	return nil
}

// Handle forwards the request as-is. The correlation id travels upstream in
// X-Request-ID.
func (p *Proxy) Handle(c *gin.Context) {
	rp := p.match(c.Request.URL.Path)
	if rp == nil {
		httperr.NotFound(c, "not_found", "Route inconnue.")
		return
	}

	if id := logging.RequestID(c); id != "" {
		c.Request.Header.Set("X-Request-ID", id)
	}
	rp.ServeHTTP(c.Writer, c.Request)
}

func (p *Proxy) upstreamFailed(w http.ResponseWriter, r *http.Request, err error) {
	reqID := r.Header.Get("X-Request-ID")
	p.log.Error("proxy_upstream_failed",
		zap.String("request_id", reqID),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusBadGateway)
	_ = json.NewEncoder(w).Encode(httperr.Envelope{
		OK:        false,
		Error:     "Service indisponible.",
		Code:      "upstream_unavailable",
		RequestID: reqID,
	})
}
