// Package optional 区分JSON字段"未提供"与"提供了零值/null"
package optional

import (
	"bytes"
	"encoding/json"
)

// Value 可选字段
// Set: 请求体中出现了该键（包括显式null）
// Null: 值为null
type Value[T any] struct {
	Set  bool
	Null bool
	V    T
}

// Of 构造已赋值的可选字段
func Of[T any](v T) Value[T] {
	return Value[T]{Set: true, V: v}
}

// UnmarshalJSON 只有键出现时才会被调用，因此Set=true
func (o *Value[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.V = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.V)
}

// MarshalJSON 未设置或null时输出null
func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.V)
}

// Present 键存在且不为null
func (o Value[T]) Present() bool {
	return o.Set && !o.Null
}

// Get 返回值与是否存在
func (o Value[T]) Get() (T, bool) {
	return o.V, o.Present()
}

// OrElse 不存在时返回默认值
func (o Value[T]) OrElse(def T) T {
	if o.Present() {
		return o.V
	}
	return def
}
