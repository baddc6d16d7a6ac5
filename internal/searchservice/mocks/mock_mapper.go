// SPDX-License-Identifier: Apache-2.0

package mocks

import "github.com/xataio/sqlindexer/pkg/index"

type Mapper struct {
	FieldTypeFn func(index.Type) (string, error)
}

func (m *Mapper) FieldType(t index.Type) (string, error) {
	return m.FieldTypeFn(t)
}
