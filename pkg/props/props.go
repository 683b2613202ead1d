// Package props holds generic gnuplot "set" properties.
//
// A [Properties] store is an insertion-ordered map from a gnuplot setting
// name to its argument text. It renders to one command per entry:
//
//	p := props.New()
//	p.Set("grid", "")
//	p.Set("key", "left top")
//	p.Unset("border")
//	p.Lines() // ["set grid", "set key left top", "unset border"]
//
// Values are emitted verbatim; the store does not validate gnuplot syntax.
package props

import (
	"github.com/matzehuels/plotscript/pkg/errors"
)

type entry struct {
	key   string
	value string
	unset bool
}

// Properties is an insertion-ordered set of gnuplot settings.
// The zero value is ready to use.
type Properties struct {
	entries []entry
	index   map[string]int
}

// New returns an empty store.
func New() *Properties {
	return &Properties{}
}

// Set records "set key value". Setting an existing key replaces its value
// in place, so the key keeps its original position.
func (p *Properties) Set(key, value string) error {
	if err := errors.ValidatePropertyKey(key); err != nil {
		return err
	}
	p.put(entry{key: key, value: value})
	return nil
}

// Unset records "unset key", replacing any earlier Set of the same key.
func (p *Properties) Unset(key string) error {
	if err := errors.ValidatePropertyKey(key); err != nil {
		return err
	}
	p.put(entry{key: key, unset: true})
	return nil
}

func (p *Properties) put(e entry) {
	if p.index == nil {
		p.index = make(map[string]int)
	}
	if i, ok := p.index[e.key]; ok {
		p.entries[i] = e
		return
	}
	p.index[e.key] = len(p.entries)
	p.entries = append(p.entries, e)
}

// Get returns the value stored for key. ok is false for missing and unset keys.
func (p *Properties) Get(key string) (value string, ok bool) {
	i, found := p.index[key]
	if !found || p.entries[i].unset {
		return "", false
	}
	return p.entries[i].value, true
}

// Delete forgets key entirely.
func (p *Properties) Delete(key string) {
	i, ok := p.index[key]
	if !ok {
		return
	}
	p.entries = append(p.entries[:i], p.entries[i+1:]...)
	delete(p.index, key)
	for j := i; j < len(p.entries); j++ {
		p.index[p.entries[j].key] = j
	}
}

// Len returns the number of recorded entries.
func (p *Properties) Len() int { return len(p.entries) }

// Keys returns the keys in insertion order.
func (p *Properties) Keys() []string {
	keys := make([]string, len(p.entries))
	for i, e := range p.entries {
		keys[i] = e.key
	}
	return keys
}

// Lines renders the store in insertion order.
func (p *Properties) Lines() []string {
	lines := make([]string, 0, len(p.entries))
	for _, e := range p.entries {
		switch {
		case e.unset:
			lines = append(lines, "unset "+e.key)
		case e.value == "":
			lines = append(lines, "set "+e.key)
		default:
			lines = append(lines, "set "+e.key+" "+e.value)
		}
	}
	return lines
}
