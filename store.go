// File: lixenwraith/localconfig/store.go
package localconfig

// DefaultSection is the section whose keys every other section inherits.
const DefaultSection = "DEFAULT"

// entry is one key line; raw is the value exactly as parsed or rendered.
type entry struct {
	key string
	raw string
}

// section keeps its entries in insertion order.
type section struct {
	name    string
	entries []*entry
}

// alias is the target of a dot path: a section, or a key within it when e is set.
type alias struct {
	sec *section
	e   *entry
}

// store is the parsed representation shared by Document and Config:
// ordered sections, a comment map and the alias table.
type store struct {
	defaults *section
	sections []*section
	aliases  map[string]alias
	comments map[string]string
	trailing string
}

func newStore() *store {
	s := &store{
		defaults: &section{name: DefaultSection},
		aliases:  make(map[string]alias),
		comments: make(map[string]string),
	}
	s.aliases[dotPath(DefaultSection, "")] = alias{sec: s.defaults}
	return s
}

// section resolves a section by any spelling that normalizes to its alias.
func (s *store) section(name string) *section {
	if a, ok := s.aliases[dotPath(name, "")]; ok && a.e == nil {
		return a.sec
	}
	return nil
}

// ensureSection returns the existing section for name or appends a new one.
func (s *store) ensureSection(name string) *section {
	if sec := s.section(name); sec != nil {
		return sec
	}
	sec := &section{name: name}
	s.sections = append(s.sections, sec)
	s.aliases[dotPath(name, "")] = alias{sec: sec}
	return sec
}

// lookup finds key in sec without default-section fallback.
func (s *store) lookup(sec *section, key string) *entry {
	if a, ok := s.aliases[dotPath(sec.name, key)]; ok && a.sec == sec {
		return a.e
	}
	return nil
}

// resolve finds key in sec, falling back to the default section.
func (s *store) resolve(sec *section, key string) *entry {
	if e := s.lookup(sec, key); e != nil {
		return e
	}
	if sec != s.defaults {
		return s.lookup(s.defaults, key)
	}
	return nil
}

// set overwrites an existing key with the same alias or appends a new one.
func (s *store) set(sec *section, key, raw string) *entry {
	if e := s.lookup(sec, key); e != nil {
		e.raw = raw
		return e
	}
	e := &entry{key: key, raw: raw}
	sec.entries = append(sec.entries, e)
	s.aliases[dotPath(sec.name, key)] = alias{sec: sec, e: e}
	return e
}

// remove deletes key from sec and its comment.
func (s *store) remove(sec *section, key string) bool {
	e := s.lookup(sec, key)
	if e == nil {
		return false
	}
	for i, cur := range sec.entries {
		if cur == e {
			sec.entries = append(sec.entries[:i], sec.entries[i+1:]...)
			break
		}
	}
	path := dotPath(sec.name, e.key)
	delete(s.aliases, path)
	delete(s.comments, path)
	return true
}

// removeSection drops a non-default section with its keys, aliases and comments.
func (s *store) removeSection(sec *section) bool {
	if sec == s.defaults {
		return false
	}
	for i, cur := range s.sections {
		if cur != sec {
			continue
		}
		s.sections = append(s.sections[:i], s.sections[i+1:]...)
		for _, e := range sec.entries {
			path := dotPath(sec.name, e.key)
			delete(s.aliases, path)
			delete(s.comments, path)
		}
		path := dotPath(sec.name, "")
		delete(s.aliases, path)
		delete(s.comments, path)
		return true
	}
	return false
}

// all returns the default section followed by the others in insertion order.
func (s *store) all() []*section {
	out := make([]*section, 0, len(s.sections)+1)
	out = append(out, s.defaults)
	return append(out, s.sections...)
}

// merge applies src on top of s: same-identity values and comments are overwritten,
// sections are unioned and anything only in s survives.
func (s *store) merge(src *store) {
	for _, srcSec := range src.all() {
		dst := s.ensureSection(srcSec.name)
		if c, ok := src.comments[dotPath(srcSec.name, "")]; ok {
			s.comments[dotPath(dst.name, "")] = c
		}
		for _, e := range srcSec.entries {
			s.set(dst, e.key, e.raw)
			if c, ok := src.comments[dotPath(srcSec.name, e.key)]; ok {
				s.comments[dotPath(dst.name, e.key)] = c
			}
		}
	}
	if src.trailing != "" {
		s.trailing = src.trailing
	}
}
