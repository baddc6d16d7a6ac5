// SPDX-License-Identifier: Apache-2.0

package mocks

type Bar struct {
	SetFn      func(int) error
	DescribeFn func(string)
	CloseFn    func() error
}

func (b *Bar) Set(n int) error {
	if b.SetFn != nil {
		return b.SetFn(n)
	}
	return nil
}

func (b *Bar) Describe(d string) {
	if b.DescribeFn != nil {
		b.DescribeFn(d)
	}
}

func (b *Bar) Close() error {
	if b.CloseFn != nil {
		return b.CloseFn()
	}
	return nil
}
