// Package determinism provides the primitives that keep quotes reproducible:
// fixed-order cache keys, sorted copies and billing rounding.
package determinism

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// StableID is a hash-based identifier that's deterministic
type StableID string

// KeyBuilder serializes named fields in the order they are written.
// Callers must always write the same fields in the same order.
type KeyBuilder struct {
	namespace string
	b         strings.Builder
}

// NewKeyBuilder starts a key in a namespace
func NewKeyBuilder(namespace string) *KeyBuilder {
	k := &KeyBuilder{namespace: namespace}
	k.b.WriteString(namespace)
	return k
}

func (k *KeyBuilder) field(name, value string) *KeyBuilder {
	k.b.WriteByte(0)
	k.b.WriteString(name)
	k.b.WriteByte('=')
	k.b.WriteString(value)
	return k
}

// String appends a string field, quoted so separators inside values stay unambiguous
func (k *KeyBuilder) String(name, v string) *KeyBuilder {
	return k.field(name, strconv.Quote(v))
}

// Int appends an integer field
func (k *KeyBuilder) Int(name string, v int) *KeyBuilder {
	return k.field(name, strconv.Itoa(v))
}

// Float appends a float field using the shortest exact representation
func (k *KeyBuilder) Float(name string, v float64) *KeyBuilder {
	return k.field(name, strconv.FormatFloat(v, 'g', -1, 64))
}

// OptionalFloat appends a float field that may be absent
func (k *KeyBuilder) OptionalFloat(name string, v *float64) *KeyBuilder {
	if v == nil {
		return k.field(name, "-")
	}
	return k.Float(name, *v)
}

// Bool appends a boolean field
func (k *KeyBuilder) Bool(name string, v bool) *KeyBuilder {
	return k.field(name, strconv.FormatBool(v))
}

// Strings appends a list of strings in the given order
func (k *KeyBuilder) Strings(name string, v []string) *KeyBuilder {
	parts := make([]string, len(v))
	for i, s := range v {
		parts[i] = strconv.Quote(s)
	}
	return k.field(name, "["+strings.Join(parts, ",")+"]")
}

// Ints appends a list of integers in the given order
func (k *KeyBuilder) Ints(name string, v []int) *KeyBuilder {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return k.field(name, "["+strings.Join(parts, ",")+"]")
}

// Canonical returns the serialized key
func (k *KeyBuilder) Canonical() string {
	return k.b.String()
}

// ID returns the SHA-256 of the serialized key
func (k *KeyBuilder) ID() StableID {
	sum := sha256.Sum256([]byte(k.b.String()))
	return StableID(hex.EncodeToString(sum[:]))
}

// SortedStrings returns a sorted copy of s
func SortedStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	sort.Strings(out)
	return out
}

// SortedKeys returns the keys of m in sorted order
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CeilToMultiple rounds v up to the next multiple of unit
func CeilToMultiple(v decimal.Decimal, unit int64) int64 {
	u := decimal.NewFromInt(unit)
	return v.Div(u).Ceil().Mul(u).IntPart()
}

// RoundWhole rounds v half away from zero to a whole unit
func RoundWhole(v decimal.Decimal) int64 {
	return v.Round(0).IntPart()
}
