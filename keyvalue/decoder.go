// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package keyvalue

import "fmt"

// Decoder assembles records with a fixed configuration.
//
// Use [New] or [MustNew] to create a configured Decoder, or use the
// package-level functions ([Decode], [FromPairs]) for zero configuration.
//
// Decoder is safe for concurrent use by multiple goroutines.
//
// Example:
//
//	dec := keyvalue.MustNew(
//	    keyvalue.WithLogger(logger),
//	    keyvalue.WithConverter(keyvalue.EnumConverter(ModeFast, ModeSafe)),
//	)
//
//	info, err := keyvalue.DecodeWith[Info](dec, pairs)
type Decoder struct {
	cfg *config
}

// New creates a [Decoder] with the given options.
// It returns an error if the configuration is invalid.
func New(opts ...Option) (*Decoder, error) {
	cfg := applyOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Decoder{cfg: cfg}, nil
}

// MustNew is like [New] but panics on invalid configuration.
func MustNew(opts ...Option) *Decoder {
	d, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("keyvalue.MustNew: %v", err))
	}

	return d
}

// Decode assembles pairs, in the order given, into out.
func (d *Decoder) Decode(pairs Pairs, out any) error {
	return decodeStream(NewStream(pairs), out, d.cfg)
}

// DecodeSorted stably sorts pairs by key before assembling them into out.
func (d *Decoder) DecodeSorted(pairs Pairs, out any) error {
	return decodeStream(NewStream(pairs.Sorted()), out, d.cfg)
}

// Encode converts a tagged struct to pairs using the Decoder's tag.
func (d *Decoder) Encode(v any) (Pairs, error) {
	return encode(v, d.cfg)
}

// DecodeWith assembles pairs, in the order given, into a T using d's configuration.
func DecodeWith[T any](d *Decoder, pairs Pairs) (T, error) {
	var result T
	if err := d.Decode(pairs, &result); err != nil {
		return result, err
	}

	return result, nil
}
