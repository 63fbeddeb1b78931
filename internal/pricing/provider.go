package pricing

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
)

// Source produces a cost document, typically from the admin-editable store.
type Source interface {
	Document(ctx context.Context, base Document) (Document, error)
}

// Provider publishes the current Table. Readers get either the old or the
// new table, never a partially updated one.
type Provider struct {
	current atomic.Pointer[Table]
}

// NewProvider returns a Provider serving t.
func NewProvider(t *Table) *Provider {
	p := &Provider{}
	p.current.Store(t)
	return p
}

// Current returns the table in effect.
func (p *Provider) Current() *Table {
	return p.current.Load()
}

// Replace swaps in t.
func (p *Provider) Replace(t *Table) error {
	if t == nil {
		return errors.New("replace with nil cost table")
	}
	p.current.Store(t)
	return nil
}

// Refresh rebuilds the table from src layered over base and swaps it in. The
// current table is kept when src fails or yields an invalid document.
func (p *Provider) Refresh(ctx context.Context, src Source, base Document) (*Table, error) {
	doc, err := src.Document(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("load cost document: %w", err)
	}
	t, err := NewTable(doc)
	if err != nil {
		return nil, fmt.Errorf("build cost table: %w", err)
	}
	p.current.Store(t)
	return t, nil
}
