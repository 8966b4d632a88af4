package router

import (
	"context"
	"fmt"
	"sort"

	"github.com/xpanvictor/vidquiz/pkg/assistant"
)

// New builds a multiplexer over the given completers keyed by their Name.
// def selects the completer used when callers do not ask for one.
func New(def string, completers []assistant.Completer) (*Mux, error) {
	adm := make(map[string]AdapterPack, len(completers))
	for _, c := range completers {
		adm[c.Name()] = AdapterPack{Name: c.Name(), Completer: c}
	}
	if _, ok := adm[def]; !ok {
		return nil, fmt.Errorf("default backend %q is not configured", def)
	}
	return &Mux{Default: def, AdapterMap: adm}, nil
}

// Select returns the named completer, or the default for an empty name.
func (m *Mux) Select(name string) (assistant.Completer, error) {
	if name == "" {
		name = m.Default
	}
	pack, ok := m.AdapterMap[name]
	if !ok {
		return nil, fmt.Errorf("llm backend %q is not configured", name)
	}
	return pack.Completer, nil
}

// Complete routes to the default completer; Mux is itself a Completer.
func (m *Mux) Complete(ctx context.Context, prompt string) (string, error) {
	c, err := m.Select("")
	if err != nil {
		return "", err
	}
	return c.Complete(ctx, prompt)
}

func (m *Mux) Name() string { return m.Default }

func (m *Mux) Model() string {
	if c, err := m.Select(""); err == nil {
		return c.Model()
	}
	return ""
}

// Backends lists the configured backend names in order.
func (m *Mux) Backends() []string {
	names := make([]string, 0, len(m.AdapterMap))
	for name := range m.AdapterMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
