package zorkvm

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// ValueKind discriminates the variant held by a StateValue.
type ValueKind uint8

const (
	// KindNone marks an unset StateValue.
	KindNone ValueKind = iota
	KindBool
	KindInt
	KindString
	KindRef
	KindBlob
)

// StateValue is a tagged sum over {bool, int, string, id-reference, codable-blob}.
// Zero value is KindNone and reads as "absent" everywhere a StateValue is consulted.
type StateValue struct {
	kind   ValueKind
	b      bool
	i      int
	s      string
	ref    ItemID
	hasRef bool
	blob   []byte
}

// BoolValue constructs a StateValue holding a bool.
func BoolValue(b bool) StateValue { return StateValue{kind: KindBool, b: b} }

// IntValue constructs a StateValue holding an int.
func IntValue(i int) StateValue { return StateValue{kind: KindInt, i: i} }

// StringValue constructs a StateValue holding a string.
func StringValue(s string) StateValue { return StateValue{kind: KindString, s: s} }

// RefValue constructs a StateValue holding an ItemID reference.
func RefValue(id ItemID) StateValue { return StateValue{kind: KindRef, ref: id, hasRef: true} }

// BlobValue constructs a StateValue holding an opaque gob-encoded blob.
func BlobValue(b []byte) StateValue { return StateValue{kind: KindBlob, blob: append([]byte(nil), b...)} }

// Kind reports which variant this StateValue holds.
func (v StateValue) Kind() ValueKind { return v.kind }

// IsZero reports whether this is the absent/unset value.
func (v StateValue) IsZero() bool { return v.kind == KindNone }

// Bool returns the boolean payload. Panics if Kind() != KindBool.
func (v StateValue) Bool() bool {
	if v.kind != KindBool {
		panic(fmt.Sprintf("zorkvm: StateValue.Bool() called on %v", v.kind))
	}
	return v.b
}

// Int returns the integer payload. Panics if Kind() != KindInt.
func (v StateValue) Int() int {
	if v.kind != KindInt {
		panic(fmt.Sprintf("zorkvm: StateValue.Int() called on %v", v.kind))
	}
	return v.i
}

// String returns the string payload, or "" for KindNone. Panics for any
// other non-string kind.
func (v StateValue) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindNone:
		return ""
	default:
		panic(fmt.Sprintf("zorkvm: StateValue.String() called on %v", v.kind))
	}
}

// Ref returns the ItemID payload. Panics if Kind() != KindRef.
func (v StateValue) Ref() ItemID {
	if v.kind != KindRef {
		panic(fmt.Sprintf("zorkvm: StateValue.Ref() called on %v", v.kind))
	}
	return v.ref
}

// Blob returns the raw byte payload. Panics if Kind() != KindBlob.
func (v StateValue) Blob() []byte {
	if v.kind != KindBlob {
		panic(fmt.Sprintf("zorkvm: StateValue.Blob() called on %v", v.kind))
	}
	return v.blob
}

// stateValueWire is the exported mirror of StateValue's private fields,
// used only to get gob (which ignores unexported fields) to round-trip the
// tagged union through a save file.
type stateValueWire struct {
	Kind   ValueKind
	B      bool
	I      int
	S      string
	Ref    ItemID
	HasRef bool
	Blob   []byte
}

// GobEncode implements gob.GobEncoder.
func (v StateValue) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	w := stateValueWire{Kind: v.kind, B: v.b, I: v.i, S: v.s, Ref: v.ref, HasRef: v.hasRef, Blob: v.blob}
	if err := gob.NewEncoder(&buf).Encode(w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (v *StateValue) GobDecode(data []byte) error {
	var w stateValueWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	*v = StateValue{kind: w.Kind, b: w.B, i: w.I, s: w.S, ref: w.Ref, hasRef: w.HasRef, blob: w.Blob}
	return nil
}

// Equal reports whether two StateValues hold the same kind and payload.
// Used by the change model's no-op contract (§4.1/§4.3): a change that would
// set a property to a value it already Equal-s is a no-op.
func (v StateValue) Equal(other StateValue) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNone:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindString:
		return v.s == other.s
	case KindRef:
		return v.ref == other.ref
	case KindBlob:
		if len(v.blob) != len(other.blob) {
			return false
		}
		for i := range v.blob {
			if v.blob[i] != other.blob[i] {
				return false
			}
		}
		return true
	}
	return false
}
