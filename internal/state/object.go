package state

import (
	"bytes"
	"encoding/json"
)

// Field is one key and value of an Object.
type Field struct {
	Key   string
	Value any
}

// Object is a JSON object that keeps its keys in insertion order. Nested
// objects are Objects as well.
type Object []Field

// Set returns o with key bound to value. An existing key keeps its position
// and gets the new value; a new key is appended. Like append, the result may
// share storage with o.
func (o Object) Set(key string, value any) Object {
	for i := range o {
		if o[i].Key == key {
			o[i].Value = value
			return o
		}
	}
	return append(o, Field{Key: key, Value: value})
}

// Lookup returns the value stored under key.
func (o Object) Lookup(key string) (any, bool) {
	for _, f := range o {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Get returns the value stored under key, or nil.
func (o Object) Get(key string) any {
	v, _ := o.Lookup(key)
	return v
}

// Keys returns the keys in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, f := range o {
		keys[i] = f.Key
	}
	return keys
}

// Clone returns a deep copy. A nil Object clones to an empty one.
func (o Object) Clone() Object {
	out := make(Object, len(o))
	for i, f := range o {
		out[i] = Field{Key: f.Key, Value: cloneValue(f.Value)}
	}
	return out
}

// MarshalJSON writes the fields in order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
