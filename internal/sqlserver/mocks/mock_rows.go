// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"errors"
	"fmt"
)

type Rows struct {
	NextFn  func(i uint) bool
	ScanFn  func(i uint, dest ...any) error
	ErrFn   func() error
	CloseFn func() error

	nextCalls uint
}

func (m *Rows) Next() bool {
	m.nextCalls++
	return m.NextFn(m.nextCalls)
}

func (m *Rows) Scan(dest ...any) error {
	return m.ScanFn(m.nextCalls, dest...)
}

func (m *Rows) Err() error {
	if m.ErrFn != nil {
		return m.ErrFn()
	}
	return nil
}

func (m *Rows) Close() error {
	if m.CloseFn != nil {
		return m.CloseFn()
	}
	return nil
}

// NewStringRows returns rows yielding the string values on input, one slice
// per row.
func NewStringRows(values [][]string) *Rows {
	return &Rows{
		NextFn: func(i uint) bool {
			return int(i) <= len(values)
		},
		ScanFn: func(i uint, dest ...any) error {
			row := values[i-1]
			if len(dest) != len(row) {
				return fmt.Errorf("scan: expected %d destinations, got %d", len(row), len(dest))
			}
			for j := range dest {
				s, ok := dest[j].(*string)
				if !ok {
					return errors.New("scan: destination is not a *string")
				}
				*s = row[j]
			}
			return nil
		},
	}
}
