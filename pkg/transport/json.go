package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ParseJSON reads one JSON document, keeping object member order and telling
// integers apart from floats. Blank input yields an empty object.
func ParseJSON(r io.Reader) (*Element, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Object(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := parseJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, syntaxError("unexpected data after top-level value at offset %d", dec.InputOffset())
	}
	return root, nil
}

func parseJSONValue(dec *json.Decoder) (*Element, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, syntaxError("%v", err)
	}

	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return jsonNumber(t)
	case json.Delim:
		switch t {
		case '{':
			obj := Object()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, syntaxError("%v", err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, syntaxError("object key %v is not a string", keyTok)
				}
				v, err := parseJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, syntaxError("%v", err)
			}
			return obj, nil
		case '[':
			arr := Array()
			for dec.More() {
				v, err := parseJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Items = append(arr.Items, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, syntaxError("%v", err)
			}
			return arr, nil
		}
	}
	return nil, syntaxError("unexpected token %v", tok)
}

func jsonNumber(n json.Number) (*Element, error) {
	text := n.String()
	if !strings.ContainsAny(text, ".eE") {
		if i, err := n.Int64(); err == nil {
			return Int(i), nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return nil, syntaxError("number %s: %v", text, err)
	}
	return Float(f), nil
}

// WriteJSON encodes e as indented JSON followed by a newline.
func WriteJSON(w io.Writer, e *Element) error {
	var buf bytes.Buffer
	if err := writeJSONElement(&buf, e, 0); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

func writeJSONElement(buf *bytes.Buffer, e *Element, depth int) error {
	if e == nil {
		buf.WriteString("null")
		return nil
	}

	switch e.Kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(e.Bool))
	case KindInt:
		buf.WriteString(strconv.FormatInt(e.Int, 10))
	case KindFloat:
		if math.IsNaN(e.Float) || math.IsInf(e.Float, 0) {
			return fmt.Errorf("transport: %v cannot be encoded as JSON", e.Float)
		}
		buf.WriteString(FormatFloat(e.Float))
	case KindString:
		return writeJSONString(buf, e.Str)
	case KindArray:
		if len(e.Items) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, item := range e.Items {
			writeIndent(buf, depth+1)
			if err := writeJSONElement(buf, item, depth+1); err != nil {
				return err
			}
			if i < len(e.Items)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte(']')
	case KindObject:
		if len(e.Members) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for i, m := range e.Members {
			writeIndent(buf, depth+1)
			if err := writeJSONString(buf, m.Name); err != nil {
				return err
			}
			buf.WriteString(": ")
			if err := writeJSONElement(buf, m.Value, depth+1); err != nil {
				return fmt.Errorf("%s: %w", m.Name, err)
			}
			if i < len(e.Members)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte('}')
	default:
		return fmt.Errorf("transport: unknown element kind %s", e.Kind)
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}

// FormatFloat keeps a fractional marker on integral floats so they read back
// as floats rather than integers.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}
