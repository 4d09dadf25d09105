/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package proof

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalizeJCS_SortsObjectKeys(t *testing.T) {
	out, err := CanonicalizeJCS(map[string]interface{}{
		"c": 1,
		"a": 2,
		"b": 3,
	})
	require.NoError(t, err)
	require.Equal(t, `{"a":2,"b":3,"c":1}`, string(out))
}

func TestCanonicalizeJCS_NestedAndArray(t *testing.T) {
	out, err := CanonicalizeJCS(map[string]interface{}{
		"list": []interface{}{3, 1, 2},
		"obj":  map[string]interface{}{"z": true, "a": nil},
	})
	require.NoError(t, err)
	require.Equal(t, `{"list":[3,1,2],"obj":{"a":null,"z":true}}`, string(out))
}

func TestCanonicalizeJCS_StableAcrossKeyOrder(t *testing.T) {
	a, err := CanonicalizeJCS(map[string]interface{}{"x": 1, "y": 2})
	require.NoError(t, err)

	b, err := CanonicalizeJCS(map[string]interface{}{"y": 2, "x": 1})
	require.NoError(t, err)

	require.Equal(t, a, b)
}

func TestCanonicalizeJCS_IntegralFloatHasNoDecimalPoint(t *testing.T) {
	out, err := CanonicalizeJCS(map[string]interface{}{"n": 42.0})
	require.NoError(t, err)
	require.Equal(t, `{"n":42}`, string(out))
}

func TestCanonicalizeJCS_StringEscaping(t *testing.T) {
	out, err := CanonicalizeJCS("hello \"world\"")
	require.NoError(t, err)
	require.Equal(t, `"hello \"world\""`, string(out))
}
