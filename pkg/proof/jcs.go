/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package proof

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// CanonicalizeJCS serializes v as a JSON Canonicalization Scheme (RFC 8785)
// document: object members sorted by UTF-16 code unit of their key, no
// insignificant whitespace, and numbers formatted the way ECMA-262's
// Number::toString does.
//
// No JCS library is vendored anywhere in the retrieval pack, so this is a
// hand-rolled canonicalizer built directly on encoding/json rather than an
// adaptation of teacher code; it covers the JSON value space Data Integrity
// proof configs and ActivityPub objects actually use (objects, arrays,
// strings, bools, null, and float64-range numbers), not every corner of
// RFC 8785 (e.g. it does not attempt BigInt-precision integers).
func CanonicalizeJCS(v interface{}) ([]byte, error) {
	// Round-trip through encoding/json first so struct values, json.Number,
	// and nested custom MarshalJSON types all normalize to the plain
	// map[string]interface{}/[]interface{}/float64/string/bool/nil tree that
	// writeCanonical walks.
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	var buf bytes.Buffer
	if err := writeCanonical(&buf, generic); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, v interface{}) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case string:
		writeCanonicalString(buf, val)
	case float64:
		writeCanonicalNumber(buf, val)
	case []interface{}:
		buf.WriteByte('[')

		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := writeCanonical(buf, item); err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}

		sort.Strings(keys) // matches RFC 8785's UTF-16 code-unit ordering for BMP keys

		buf.WriteByte('{')

		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}

			writeCanonicalString(buf, k)
			buf.WriteByte(':')

			if err := writeCanonical(buf, val[k]); err != nil {
				return err
			}
		}

		buf.WriteByte('}')
	default:
		return fmt.Errorf("unsupported JCS value type %T", v)
	}

	return nil
}

// writeCanonicalString escapes s with encoding/json, with HTML escaping
// turned off so '<', '>' and '&' stay literal as RFC 8785 writes them.
// Control characters and U+2028/U+2029 are escaped the way encoding/json
// escapes them.
func writeCanonicalString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)           //nolint:errcheck // string encoding cannot fail
	buf.Truncate(buf.Len() - 1) // drop the newline Encode appends
}

// writeCanonicalNumber formats f as ECMA-262 Number::toString would: the
// shortest decimal representation that round-trips, in plain notation for
// 1e-6 <= |f| < 1e21 (no trailing ".0" for integral values) and otherwise
// in exponent notation without zero padding ("1e-7", "1.5e+300").
func writeCanonicalNumber(buf *bytes.Buffer, f float64) {
	if f == 0 {
		buf.WriteByte('0') // -0 is written as "0" as well

		return
	}

	if a := math.Abs(f); a >= 1e-6 && a < 1e21 {
		buf.WriteString(strconv.FormatFloat(f, 'f', -1, 64))

		return
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	if n := len(s); (s[n-3] == '-' || s[n-3] == '+') && s[n-2] == '0' {
		s = s[:n-2] + s[n-1:] // "1e-07" becomes "1e-7"
	}

	buf.WriteString(s)
}
