package core

import (
	"regexp"
	"sort"
	"unicode"

	"github.com/osteele/liquid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// varRe finds the variable names a Liquid template references. Liquid
// identifiers are ASCII, which is why bindings also carry diacritic-folded
// field names (eräpäivä -> erapaiva).
var varRe = regexp.MustCompile(`\{\{-?\s*([a-zA-Z_][a-zA-Z0-9_]*)`)

// foldTransformer strips combining marks: NFD decomposition, remove marks,
// recompose.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldKey returns the ASCII-folded spelling of a field name for use as a
// template placeholder. Fields that are already ASCII fold to themselves.
func FoldKey(key string) string {
	folded, _, err := transform.String(foldTransformer, key)
	if err != nil {
		return key
	}
	return folded
}

// Renderer expands message templates against one record at a time.
type Renderer struct {
	engine *liquid.Engine
}

// NewRenderer creates a renderer with a plain Liquid engine.
func NewRenderer() *Renderer {
	return &Renderer{engine: liquid.NewEngine()}
}

// Render substitutes every placeholder in the template with the matching
// record field. A placeholder with no corresponding field is a
// TemplateError, checked up front so the error surfaces before any send.
func (r *Renderer) Render(template string, rec Record) (string, error) {
	bindings := make(map[string]any, 2*len(rec))
	for k, v := range rec {
		bindings[k] = v
		if folded := FoldKey(k); folded != k {
			bindings[folded] = v
		}
	}

	if missing := missingVars(template, bindings); len(missing) > 0 {
		return "", Templatef("template references unknown fields: %v", missing)
	}

	out, err := r.engine.ParseAndRenderString(template, bindings)
	if err != nil {
		return "", Templatef("cannot render template: %v", err)
	}
	return out, nil
}

func missingVars(template string, bindings map[string]any) []string {
	seen := make(map[string]bool)
	for _, m := range varRe.FindAllStringSubmatch(template, -1) {
		name := m[1]
		if _, ok := bindings[name]; !ok && !seen[name] {
			seen[name] = true
		}
	}
	missing := make([]string, 0, len(seen))
	for name := range seen {
		missing = append(missing, name)
	}
	sort.Strings(missing)
	return missing
}
