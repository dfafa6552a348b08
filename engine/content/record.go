// Package content reads the line-oriented level format: one record per line,
// comma-separated fields, each field a key followed by pipe-separated values.
package content

import (
	"strings"
)

type Field struct {
	Key    string
	Values []string
}

// Record is one parsed line. Tag is the part of the first field before the
// first pipe, Args holds the rest of that field.
type Record struct {
	Line   int
	Tag    string
	Args   []string
	Fields []Field
}

func ParseRecord(line string) Record {
	line = strings.TrimRight(line, "\r")
	parts := strings.Split(line, ",")

	head := strings.Split(parts[0], "|")
	rec := Record{
		Tag:  strings.TrimSpace(head[0]),
		Args: head[1:],
	}
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		kv := strings.Split(part, "|")
		rec.Fields = append(rec.Fields, Field{Key: strings.TrimSpace(kv[0]), Values: kv[1:]})
	}
	return rec
}

// Parse splits content on '\n' and parses every line that carries data.
// Line numbers are 1-based and refer to the source text.
func Parse(text string) []Record {
	var records []Record
	for i, line := range strings.Split(text, "\n") {
		if line == "" || line == "\r" {
			continue
		}
		rec := ParseRecord(line)
		rec.Line = i + 1
		records = append(records, rec)
	}
	return records
}

// Data returns the typed view over the record's fields. Later duplicates of
// a key win.
func (r Record) Data() Data {
	d := Data{tag: r.Tag, fields: make(map[string][]string, len(r.Fields))}
	for _, f := range r.Fields {
		d.fields[f.Key] = f.Values
	}
	return d
}
