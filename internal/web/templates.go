package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"
)

// Templates manages HTML template rendering.
type Templates struct {
	templates map[string]*template.Template
	partials  map[string]*template.Template
	funcs     template.FuncMap
}

// NewTemplates creates a new template manager by loading templates from the given filesystem.
func NewTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{
		templates: make(map[string]*template.Template),
		partials:  make(map[string]*template.Template),
		funcs:     defaultFuncs(),
	}

	if err := t.load(templatesFS); err != nil {
		return nil, err
	}

	return t, nil
}

// Render renders a page template inside the "base" layout.
func (t *Templates) Render(w io.Writer, page string, data any) error {
	tmpl, ok := t.templates[page]
	if !ok {
		return fmt.Errorf("template %q not found", page)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}

// RenderPartial renders a partial template without the layout.
func (t *Templates) RenderPartial(w io.Writer, partial string, data any) error {
	tmpl, ok := t.partials[partial]
	if !ok {
		return fmt.Errorf("partial %q not found", partial)
	}
	return tmpl.ExecuteTemplate(w, partial, data)
}

// load parses layouts/*.html, partials/*.html and pages/*.html. Every page
// is parsed with all layouts and partials; partials are also parsed alone
// and must {{define}} a template named after their file.
func (t *Templates) load(templatesFS fs.FS) error {
	layouts, err := fs.Glob(templatesFS, "layouts/*.html")
	if err != nil {
		return fmt.Errorf("finding layouts: %w", err)
	}

	partials, err := fs.Glob(templatesFS, "partials/*.html")
	if err != nil {
		return fmt.Errorf("finding partials: %w", err)
	}

	pages, err := fs.Glob(templatesFS, "pages/*.html")
	if err != nil {
		return fmt.Errorf("finding pages: %w", err)
	}

	common := append(layouts, partials...)

	for _, page := range pages {
		name := templateName(page)
		files := append([]string{page}, common...)

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}
		t.templates[name] = tmpl
	}

	for _, partial := range partials {
		name := templateName(partial)

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, partial)
		if err != nil {
			return fmt.Errorf("parsing partial %s: %w", name, err)
		}
		t.partials[name] = tmpl
	}

	return nil
}

func templateName(file string) string {
	return strings.TrimSuffix(path.Base(file), ".html")
}

// tierColors shade emotion bars from the strongest tier down.
var tierColors = []string{"#7c3aed", "#a78bfa", "#ddd6fe"}

func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		// percent formats a [0,1] score as a CSS width, e.g. "85%".
		"percent": func(score float64) template.CSS {
			return template.CSS(fmt.Sprintf("%.0f%%", score*100))
		},

		// tierColor returns the bar color of an intensity tier.
		"tierColor": func(tier int) template.CSS {
			if tier < 0 || tier >= len(tierColors) {
				return template.CSS(tierColors[len(tierColors)-1])
			}
			return template.CSS(tierColors[tier])
		},

		// moodColor returns an HSL color from intensity and valence. Valence
		// maps to hue (cool indigo to warm gold), intensity to saturation.
		"moodColor": func(intensity, valence float64) template.CSS {
			hue := 250 - (valence * 205)
			saturation := 40 + (intensity * 50)
			return template.CSS(fmt.Sprintf("hsl(%.0f, %.0f%%, 55%%)", hue, saturation))
		},

		"formatTime": func(t time.Time) string {
			return t.Format("Jan 2, 2006 15:04")
		},
	}
}
