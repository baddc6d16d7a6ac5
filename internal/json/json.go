// SPDX-License-Identifier: Apache-2.0

package json

import (
	"io"

	json "github.com/bytedance/sonic"
)

type Decoder interface {
	Decode(v any) error
}

func Unmarshal(b []byte, v any) error {
	return json.Unmarshal(b, v)
}

func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func MarshalIndent(v any) ([]byte, error) {
	return json.ConfigStd.MarshalIndent(v, "", "  ")
}

func NewDecoder(r io.Reader) Decoder {
	return json.ConfigStd.NewDecoder(r)
}
