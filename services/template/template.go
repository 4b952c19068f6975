package template

import (
	"html/template"
	"path/filepath"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/yargevad/filepathx"
)

const (
	templatesDir = "templates"
	viewsDir     = "views"
	layoutsDir   = "layouts"
	partialsDir  = "partials"
	ext          = ".html"
)

// Context is the render context every view receives.
type Context interface {
	GetGinContext() *gin.Context
}

// View renders one registered template by name.
type View[C Context] struct {
	name string
}

func (s *View[C]) HTML(code int, ctx C) {
	ctx.GetGinContext().HTML(code, s.name, ctx)
}

// Builder hands out views from one registered pattern.
type Builder[C Context] interface {
	Build(name string) *View[C]
	WithHelper(h any) Builder[C]
	WithLayout(name string) Builder[C]
}

type viewSet[C Context] struct {
	pattern string
	layout  string
	helpers []any
}

func (s *viewSet[C]) WithHelper(h any) Builder[C] {
	s.helpers = append(s.helpers, h)
	return s
}

func (s *viewSet[C]) WithLayout(name string) Builder[C] {
	s.layout = name
	return s
}

func (s *viewSet[C]) Build(name string) *View[C] {
	return &View[C]{
		name: name,
	}
}

// Manager collects view registrations and compiles them into a multitemplate
// renderer on Init. Helper methods become template funcs under their
// lowerCamel name.
type Manager[C Context] struct {
	re      multitemplate.Renderer
	dir     string
	helpers []any
	sets    []*viewSet[C]
}

func NewManager[C Context](re multitemplate.Renderer) *Manager[C] {
	return &Manager[C]{
		re:  re,
		dir: templatesDir,
	}
}

func (s *Manager[C]) WithHelper(h any) *Manager[C] {
	s.helpers = append(s.helpers, h)
	return s
}

// MustRegisterViews records a glob pattern (relative to templates/views,
// without extension) for later compilation. It panics on a malformed
// pattern, which is a programming error.
func (s *Manager[C]) MustRegisterViews(pattern string) Builder[C] {
	if _, err := filepath.Match(strings.ReplaceAll(pattern, "**", "*"), ""); err != nil {
		panic(errors.Wrapf(err, "bad view pattern %v", pattern))
	}
	set := &viewSet[C]{
		pattern: pattern,
	}
	s.sets = append(s.sets, set)
	return set
}

// Init compiles every registered view together with its layout, the shared
// partials and the helper funcs. Must be called once, after all handlers
// have registered their views.
func (s *Manager[C]) Init() error {
	partials, err := filepathx.Glob(filepath.Join(s.dir, partialsDir, "**", "*"+ext))
	if err != nil {
		return errors.Wrap(err, "failed to glob partials")
	}
	seen := map[string]struct{}{}
	for _, set := range s.sets {
		views, err := filepathx.Glob(filepath.Join(s.dir, viewsDir, set.pattern+ext))
		if err != nil {
			return errors.Wrapf(err, "failed to glob views %v", set.pattern)
		}
		if len(views) == 0 {
			return errors.Errorf("no views match pattern %v", set.pattern)
		}
		funcs := helperFuncs(append(append([]any{}, s.helpers...), set.helpers...))
		for _, v := range views {
			name := s.viewName(v)
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			files := make([]string, 0, len(partials)+2)
			if set.layout != "" {
				files = append(files, filepath.Join(s.dir, layoutsDir, set.layout+ext))
			}
			files = append(files, partials...)
			files = append(files, v)
			s.re.AddFromFilesFuncs(name, funcs, files...)
		}
	}
	return nil
}

func (s *Manager[C]) viewName(path string) string {
	rel, err := filepath.Rel(filepath.Join(s.dir, viewsDir), path)
	if err != nil {
		rel = path
	}
	return strings.TrimSuffix(filepath.ToSlash(rel), ext)
}

func helperFuncs(helpers []any) template.FuncMap {
	funcs := template.FuncMap{}
	for _, h := range helpers {
		v := reflect.ValueOf(h)
		t := v.Type()
		for i := 0; i < t.NumMethod(); i++ {
			m := t.Method(i)
			if !m.IsExported() {
				continue
			}
			funcs[lowerFirst(m.Name)] = v.Method(i).Interface()
		}
	}
	return funcs
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}
