package content

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/math"
)

// Data is the key/value view of a record. Numbers use the invariant
// format: '.' decimal separator, no grouping.
type Data struct {
	tag    string
	fields map[string][]string
}

// NewData builds a Data from explicit fields, mostly for code that creates
// entities without a level file.
func NewData(tag string, fields map[string][]string) Data {
	if fields == nil {
		fields = map[string][]string{}
	}
	return Data{tag: tag, fields: fields}
}

func (d Data) Tag() string {
	return d.tag
}

func (d Data) Has(key string) bool {
	_, ok := d.fields[key]
	return ok
}

// With returns a copy of d with key set to values.
func (d Data) With(key string, values ...string) Data {
	fields := make(map[string][]string, len(d.fields)+1)
	for k, v := range d.fields {
		fields[k] = v
	}
	fields[key] = values
	return Data{tag: d.tag, fields: fields}
}

func (d Data) values(key string, n int) ([]string, bool, error) {
	v, ok := d.fields[key]
	if !ok {
		return nil, false, nil
	}
	if len(v) < n {
		return nil, true, fmt.Errorf("%s: field `%s` wants %d values, got %d: %w", d.tag, key, n, len(v), core.ErrInvalidValue)
	}
	return v, true, nil
}

func (d Data) missing(key string) error {
	return fmt.Errorf("%s: field `%s`: %w", d.tag, key, core.ErrMissingField)
}

func (d Data) parseFloat(key, s string) (float32, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, fmt.Errorf("%s: field `%s` value %q: %w", d.tag, key, s, core.ErrInvalidNumber)
	}
	return float32(f), nil
}

func (d Data) String(key, def string) (string, error) {
	v, ok, err := d.values(key, 1)
	if err != nil || !ok {
		return def, err
	}
	return v[0], nil
}

func (d Data) RequireString(key string) (string, error) {
	if !d.Has(key) {
		return "", d.missing(key)
	}
	return d.String(key, "")
}

func (d Data) Float(key string, def float32) (float32, error) {
	v, ok, err := d.values(key, 1)
	if err != nil || !ok {
		return def, err
	}
	return d.parseFloat(key, v[0])
}

func (d Data) RequireFloat(key string) (float32, error) {
	if !d.Has(key) {
		return 0, d.missing(key)
	}
	return d.Float(key, 0)
}

func (d Data) Int(key string, def int) (int, error) {
	v, ok, err := d.values(key, 1)
	if err != nil || !ok {
		return def, err
	}
	i, err := strconv.Atoi(strings.TrimSpace(v[0]))
	if err != nil {
		return def, fmt.Errorf("%s: field `%s` value %q: %w", d.tag, key, v[0], core.ErrInvalidNumber)
	}
	return i, nil
}

func (d Data) RequireInt(key string) (int, error) {
	if !d.Has(key) {
		return 0, d.missing(key)
	}
	return d.Int(key, 0)
}

func (d Data) Bool(key string, def bool) (bool, error) {
	v, ok, err := d.values(key, 1)
	if err != nil || !ok {
		return def, err
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v[0]))
	if err != nil {
		return def, fmt.Errorf("%s: field `%s` value %q: %w", d.tag, key, v[0], core.ErrInvalidValue)
	}
	return b, nil
}

func (d Data) Vec2(key string, def math.Vec2) (math.Vec2, error) {
	v, ok, err := d.values(key, 2)
	if err != nil || !ok {
		return def, err
	}
	x, err := d.parseFloat(key, v[0])
	if err != nil {
		return def, err
	}
	y, err := d.parseFloat(key, v[1])
	if err != nil {
		return def, err
	}
	return math.NewVec2(x, y), nil
}

func (d Data) RequireVec2(key string) (math.Vec2, error) {
	if !d.Has(key) {
		return math.Vec2{}, d.missing(key)
	}
	return d.Vec2(key, math.Vec2{})
}

func (d Data) Vec4(key string, def math.Vec4) (math.Vec4, error) {
	v, ok, err := d.values(key, 4)
	if err != nil || !ok {
		return def, err
	}
	var out [4]float32
	for i := range out {
		if out[i], err = d.parseFloat(key, v[i]); err != nil {
			return def, err
		}
	}
	return math.NewVec4(out[0], out[1], out[2], out[3]), nil
}

// Reader wraps Data and keeps the first error, so constructors can read a
// run of keys and check once.
type Reader struct {
	data Data
	err  error
}

func (d Data) Reader() *Reader {
	return &Reader{data: d}
}

func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) Has(key string) bool {
	return r.data.Has(key)
}

func (r *Reader) keep(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

func (r *Reader) String(key, def string) string {
	v, err := r.data.String(key, def)
	r.keep(err)
	return v
}

func (r *Reader) RequireString(key string) string {
	v, err := r.data.RequireString(key)
	r.keep(err)
	return v
}

func (r *Reader) Float(key string, def float32) float32 {
	v, err := r.data.Float(key, def)
	r.keep(err)
	return v
}

func (r *Reader) RequireFloat(key string) float32 {
	v, err := r.data.RequireFloat(key)
	r.keep(err)
	return v
}

func (r *Reader) Int(key string, def int) int {
	v, err := r.data.Int(key, def)
	r.keep(err)
	return v
}

func (r *Reader) RequireInt(key string) int {
	v, err := r.data.RequireInt(key)
	r.keep(err)
	return v
}

func (r *Reader) Bool(key string, def bool) bool {
	v, err := r.data.Bool(key, def)
	r.keep(err)
	return v
}

func (r *Reader) Vec2(key string, def math.Vec2) math.Vec2 {
	v, err := r.data.Vec2(key, def)
	r.keep(err)
	return v
}

func (r *Reader) RequireVec2(key string) math.Vec2 {
	v, err := r.data.RequireVec2(key)
	r.keep(err)
	return v
}

func (r *Reader) Vec4(key string, def math.Vec4) math.Vec4 {
	v, err := r.data.Vec4(key, def)
	r.keep(err)
	return v
}
