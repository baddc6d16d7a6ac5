// SPDX-License-Identifier: Apache-2.0

package searchservice

import "github.com/xataio/sqlindexer/pkg/index"

// Mapper renders semantic index types as the field types of a search service.
type Mapper interface {
	FieldType(index.Type) (string, error)
}

// NewIndex converts the index definition on input into a create index body
// using the mapper for field types.
func NewIndex(def *index.Definition, mapper Mapper) (*Index, error) {
	idx := &Index{
		Name:   def.Name,
		Fields: make([]IndexField, 0, len(def.Fields)),
	}
	for _, f := range def.Fields {
		fieldType, err := mapper.FieldType(f.Type)
		if err != nil {
			return nil, err
		}
		idx.Fields = append(idx.Fields, IndexField{
			Name:        f.Name,
			Type:        fieldType,
			Key:         f.IsKey,
			Searchable:  f.IsSearchable,
			Filterable:  f.IsFilterable,
			Retrievable: f.IsRetrievable,
		})
	}
	return idx, nil
}
