// SPDX-License-Identifier: Apache-2.0

package index

// Definition describes a search index derived from a table schema.
type Definition struct {
	Name   string  `json:"name" yaml:"name"`
	Fields []Field `json:"fields" yaml:"fields"`
}

type Field struct {
	Name          string `json:"name" yaml:"name"`
	Type          Type   `json:"type" yaml:"type"`
	IsKey         bool   `json:"key" yaml:"key"`
	IsSearchable  bool   `json:"searchable" yaml:"searchable"`
	IsFilterable  bool   `json:"filterable" yaml:"filterable"`
	IsRetrievable bool   `json:"retrievable" yaml:"retrievable"`
}

// KeyField returns the first key field of the definition, or nil if there
// is none.
func (d *Definition) KeyField() *Field {
	if d == nil {
		return nil
	}
	for i := range d.Fields {
		if d.Fields[i].IsKey {
			return &d.Fields[i]
		}
	}
	return nil
}

func (d *Definition) KeyFieldCount() int {
	if d == nil {
		return 0
	}
	count := 0
	for _, f := range d.Fields {
		if f.IsKey {
			count++
		}
	}
	return count
}

func (d *Definition) FieldNames() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		names = append(names, f.Name)
	}
	return names
}
