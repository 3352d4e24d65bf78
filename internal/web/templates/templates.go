// Package templates renders the portal pages as templ components backed by
// embedded html/template markup.
package templates

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"dataforall/internal/platform/i18n"
)

//go:embed html/*.html
var files embed.FS

// shared partials every page can use.
var partials = []string{"html/layout.html", "html/navbar.html", "html/tracking.html"}

// Renderer holds the parsed page set.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses all pages against the localizer. A nil localizer renders keys.
func New(loc i18n.Localizer) (*Renderer, error) {
	funcs := template.FuncMap{
		"t": func(key string, args ...any) string { return i18n.T(loc, key, args...) },
	}
	base, err := template.New("base").Funcs(funcs).ParseFS(files, partials...)
	if err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}

	r := &Renderer{pages: map[string]*template.Template{}}
	for _, name := range []string{"home", "tracking_page", "login", "admin", "placeholder", "notfound"} {
		page, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone for %s: %w", name, err)
		}
		if _, err := page.ParseFS(files, "html/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = page
	}
	return r, nil
}

func (r *Renderer) page(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t, ok := r.pages[name]
		if !ok {
			return fmt.Errorf("unknown page %q", name)
		}
		return t.ExecuteTemplate(w, "layout", data)
	})
}

func (r *Renderer) Home(v HomeView) templ.Component { return r.page("home", v) }

func (r *Renderer) Tracking(v TrackingPageView) templ.Component { return r.page("tracking_page", v) }

func (r *Renderer) Login(v LoginView) templ.Component { return r.page("login", v) }

func (r *Renderer) Admin(v AdminView) templ.Component { return r.page("admin", v) }

func (r *Renderer) Placeholder(v PlaceholderView) templ.Component {
	return r.page("placeholder", v)
}

func (r *Renderer) NotFound(v NotFoundView) templ.Component { return r.page("notfound", v) }
