package render

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/template"
)

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// Renderer expands env helpers inside YAML config templates.
type Renderer struct {
	// Lookup resolves variables; nil uses os.LookupEnv.
	Lookup LookupFunc
}

// envTracker records variables referenced through env that were not set.
type envTracker struct {
	missing map[string]struct{}
}

func (t *envTracker) markMissing(key string) {
	if t.missing == nil {
		t.missing = map[string]struct{}{}
	}
	t.missing[key] = struct{}{}
}

func (t *envTracker) list() []string {
	out := make([]string, 0, len(t.missing))
	for key := range t.missing {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// RenderFile loads and renders a YAML template file.
func RenderFile(path string) ([]byte, error) {
	return Renderer{}.RenderFile(path)
}

// RenderBytes renders a YAML template from raw bytes.
func RenderBytes(name string, raw []byte) ([]byte, error) {
	return Renderer{}.RenderBytes(name, raw)
}

// RenderFile loads and renders a YAML template file.
func (r Renderer) RenderFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return r.RenderBytes(path, raw)
}

// RenderBytes renders a YAML template from raw bytes.
func (r Renderer) RenderBytes(name string, raw []byte) ([]byte, error) {
	lookup := r.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if strings.TrimSpace(name) == "" {
		name = "config"
	}

	tracker := &envTracker{}
	tmpl, err := template.New(name).Funcs(funcMap(lookup, tracker)).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	execErr := tmpl.Execute(&buf, map[string]any{})
	if missing := tracker.list(); len(missing) > 0 {
		return nil, fmt.Errorf("missing env vars: %s", strings.Join(missing, ", "))
	}
	if execErr != nil {
		return nil, fmt.Errorf("render template: %w", execErr)
	}
	return buf.Bytes(), nil
}
