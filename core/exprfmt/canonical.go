// Package exprfmt produces a deterministic binary form of parsed
// expressions, for style-sheet caches that key compiled properties by
// expression identity rather than by raw JSON text.
package exprfmt

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/stylex-lang/stylex/runtime/expr"
)

// operatorNode is implemented by every expression node that carries an
// operator identity. Core-owned literal/assertion/coercion nodes and the
// builtin operators all do.
type operatorNode interface {
	OperatorName() string
}

// CanonicalNode is the encoding-side form of one expression node.
type CanonicalNode struct {
	Op    string          `cbor:"1,keyasint"`
	Type  string          `cbor:"2,keyasint"`
	Value any             `cbor:"3,keyasint,omitempty"`
	Args  []CanonicalNode `cbor:"4,keyasint,omitempty"`
}

// Canonicalize converts a parsed expression into its canonical node form.
func Canonicalize(e expr.Expression) (CanonicalNode, error) {
	named, ok := e.(operatorNode)
	if !ok {
		return CanonicalNode{}, fmt.Errorf("expression node %T has no operator identity", e)
	}
	node := CanonicalNode{
		Op:   named.OperatorName(),
		Type: e.Type().String(),
	}
	if lit, ok := e.(*expr.Literal); ok {
		node.Value = lit.Value()
		return node, nil
	}
	var walkErr error
	e.ForEachChild(func(child expr.Expression) {
		if walkErr != nil {
			return
		}
		childNode, err := Canonicalize(child)
		if err != nil {
			walkErr = err
			return
		}
		node.Args = append(node.Args, childNode)
	})
	if walkErr != nil {
		return CanonicalNode{}, walkErr
	}
	return node, nil
}

// MarshalBinary produces the deterministic CBOR encoding of the node,
// byte-for-byte stable across runs.
func (n CanonicalNode) MarshalBinary() ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR encoder: %w", err)
	}
	// Alias to keep CBOR from re-entering MarshalBinary.
	type canonicalNodeAlias CanonicalNode
	data, err := encMode.Marshal(canonicalNodeAlias(n))
	if err != nil {
		return nil, fmt.Errorf("CBOR encoding failed: %w", err)
	}
	return data, nil
}

// Fingerprint returns the hex SHA-256 of the expression's canonical
// encoding. Two structurally identical trees fingerprint identically.
func Fingerprint(e expr.Expression) (string, error) {
	node, err := Canonicalize(e)
	if err != nil {
		return "", err
	}
	data, err := node.MarshalBinary()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
