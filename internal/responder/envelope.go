package responder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	"ollamastub/internal/state"
)

const (
	toolCallOpen  = "<tool_call>"
	toolCallClose = "</tool_call>"
)

// FormatToolCall renders the three-line tool-call envelope for an action.
func FormatToolCall(name string, arguments state.Object) string {
	return toolCallOpen + "\n" + MarshalAction(name, arguments) + "\n" + toolCallClose
}

// MarshalAction renders {"name": ..., "arguments": ...} with name first and
// the arguments in their insertion order. Nil arguments render as {}.
func MarshalAction(name string, arguments state.Object) string {
	var b strings.Builder
	b.WriteString(`{"name": `)
	writeString(&b, name)
	b.WriteString(`, "arguments": `)
	writeValue(&b, arguments)
	b.WriteByte('}')
	return b.String()
}

// Marshal renders v as single-line JSON with ", " and ": " separators and
// ASCII-only output. Objects keep their key order; Go map keys are sorted.
// Values of types other than the JSON primitives, objects, maps, and slices
// are first passed through encoding/json.
func Marshal(v any) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v any) {
	switch t := v.(type) {
	case nil:
		b.WriteString("null")
	case string:
		writeString(b, t)
	case bool:
		if t {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case json.Number:
		writeNumber(b, t)
	case int:
		b.WriteString(strconv.Itoa(t))
	case int64:
		b.WriteString(strconv.FormatInt(t, 10))
	case int32:
		b.WriteString(strconv.FormatInt(int64(t), 10))
	case uint64:
		b.WriteString(strconv.FormatUint(t, 10))
	case float64:
		writeFloat(b, t)
	case float32:
		writeFloat(b, float64(t))
	case state.Object:
		writeFields(b, t)
	case map[string]any:
		writeObject(b, t)
	case map[string]string:
		m := make(map[string]any, len(t))
		for k, s := range t {
			m[k] = s
		}
		writeObject(b, m)
	case []any:
		writeArray(b, t)
	case []string:
		items := make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
		writeArray(b, items)
	default:
		writeReflected(b, v)
	}
}

func writeObject(b *strings.Builder, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make(state.Object, len(keys))
	for i, k := range keys {
		fields[i] = state.Field{Key: k, Value: m[k]}
	}
	writeFields(b, fields)
}

func writeFields(b *strings.Builder, fields state.Object) {
	b.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		writeString(b, f.Key)
		b.WriteString(": ")
		writeValue(b, f.Value)
	}
	b.WriteByte('}')
}

func writeArray(b *strings.Builder, items []any) {
	b.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		writeValue(b, item)
	}
	b.WriteByte(']')
}

// writeNumber renders a number literal as it reads back in Python: a
// literal without fraction or exponent is an integer, anything else a float.
func writeNumber(b *strings.Builder, n json.Number) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, ok := new(big.Int).SetString(s, 10); ok {
			b.WriteString(i.String())
			return
		}
	} else if f, err := strconv.ParseFloat(s, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		writeFloat(b, f)
		return
	}
	b.WriteString(s)
}

func writeFloat(b *strings.Builder, f float64) {
	switch {
	case math.IsNaN(f):
		b.WriteString("NaN")
	case math.IsInf(f, 1):
		b.WriteString("Infinity")
	case math.IsInf(f, -1):
		b.WriteString("-Infinity")
	default:
		b.WriteString(formatFloat(f))
	}
}

// formatFloat follows Python's repr for finite floats: positional notation
// for magnitudes in [1e-4, 1e16) with at least one fractional digit, and
// exponent notation outside that range.
func formatFloat(f float64) string {
	if abs := math.Abs(f); f != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			switch {
			case r < 0x20:
				fmt.Fprintf(b, `\u%04x`, r)
			case r < 0x7f:
				b.WriteRune(r)
			case r > 0xFFFF:
				hi, lo := utf16.EncodeRune(r)
				fmt.Fprintf(b, `\u%04x\u%04x`, hi, lo)
			default:
				fmt.Fprintf(b, `\u%04x`, r)
			}
		}
	}
	b.WriteByte('"')
}

// writeReflected handles structs, typed maps and slices by round-tripping
// through encoding/json into the loosely typed tree.
func writeReflected(b *strings.Builder, v any) {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
		b.WriteString("null")
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		writeString(b, fmt.Sprintf("%v", v))
		return
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		writeString(b, string(raw))
		return
	}
	writeValue(b, tree)
}
