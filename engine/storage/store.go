// Package storage keeps small typed preferences: lives, achievement
// progress and leaderboard scores.
package storage

// Store is a flat key/value preferences store. Getters return def for
// missing keys. Setters report persistence failures.
type Store interface {
	GetFloat(key string, def float32) float32
	SetFloat(key string, value float32) error
	GetInt(key string, def int) int
	SetInt(key string, value int) error
	GetBool(key string, def bool) bool
	SetBool(key string, value bool) error
	GetString(key string, def string) string
	SetString(key string, value string) error
	Has(key string) bool
	Delete(key string) error
}

type document struct {
	Floats  map[string]float64 `toml:"floats"`
	Ints    map[string]int64   `toml:"ints"`
	Bools   map[string]bool    `toml:"bools"`
	Strings map[string]string  `toml:"strings"`
}

func newDocument() document {
	return document{
		Floats:  make(map[string]float64),
		Ints:    make(map[string]int64),
		Bools:   make(map[string]bool),
		Strings: make(map[string]string),
	}
}

// fill makes sure sections missing from a decoded file are usable.
func (d *document) fill() {
	if d.Floats == nil {
		d.Floats = make(map[string]float64)
	}
	if d.Ints == nil {
		d.Ints = make(map[string]int64)
	}
	if d.Bools == nil {
		d.Bools = make(map[string]bool)
	}
	if d.Strings == nil {
		d.Strings = make(map[string]string)
	}
}

func (d *document) has(key string) bool {
	if _, ok := d.Floats[key]; ok {
		return true
	}
	if _, ok := d.Ints[key]; ok {
		return true
	}
	if _, ok := d.Bools[key]; ok {
		return true
	}
	_, ok := d.Strings[key]
	return ok
}

// clear removes key from every section; a key carries one type at a time.
func (d *document) clear(key string) {
	delete(d.Floats, key)
	delete(d.Ints, key)
	delete(d.Bools, key)
	delete(d.Strings, key)
}

// MemoryStore never persists. Tests and the offline game use it.
type MemoryStore struct {
	doc document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{doc: newDocument()}
}

func (s *MemoryStore) GetFloat(key string, def float32) float32 {
	if v, ok := s.doc.Floats[key]; ok {
		return float32(v)
	}
	return def
}

func (s *MemoryStore) SetFloat(key string, value float32) error {
	s.doc.clear(key)
	s.doc.Floats[key] = float64(value)
	return nil
}

func (s *MemoryStore) GetInt(key string, def int) int {
	if v, ok := s.doc.Ints[key]; ok {
		return int(v)
	}
	return def
}

func (s *MemoryStore) SetInt(key string, value int) error {
	s.doc.clear(key)
	s.doc.Ints[key] = int64(value)
	return nil
}

func (s *MemoryStore) GetBool(key string, def bool) bool {
	if v, ok := s.doc.Bools[key]; ok {
		return v
	}
	return def
}

func (s *MemoryStore) SetBool(key string, value bool) error {
	s.doc.clear(key)
	s.doc.Bools[key] = value
	return nil
}

func (s *MemoryStore) GetString(key string, def string) string {
	if v, ok := s.doc.Strings[key]; ok {
		return v
	}
	return def
}

func (s *MemoryStore) SetString(key string, value string) error {
	s.doc.clear(key)
	s.doc.Strings[key] = value
	return nil
}

func (s *MemoryStore) Has(key string) bool {
	return s.doc.has(key)
}

func (s *MemoryStore) Delete(key string) error {
	s.doc.clear(key)
	return nil
}
