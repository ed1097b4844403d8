package types

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/unicode/norm"
)

// TypeID returns the deterministic textual encoding of t's canonical form
// followed by a fixed-width hex digest, used to name every monomorphic
// helper synthesized in C4 (equal_T, hash_T, ctx_T, concrete_list_T).
// The RC helpers (clone_T, drop_T, ...) are named by record name instead.
//
// The grammar is pinned and forms part of the ABI: "[E]" for lists,
// "{K:V}" for maps, "(\(A,B) R)" for functions, "record(N)" for records,
// "(A|B)" for unions, primitive names otherwise. Record and alias names
// are NFC-normalized before hashing (golang.org/x/text/unicode/norm, the
// same normalization applied to source bytes at the lexer boundary) so
// two differently-encoded-but-visually-identical identifiers produce the
// same id.
func TypeID(t Type, aliases AliasTable) (string, error) {
	c, err := Canonicalize(t, aliases)
	if err != nil {
		return "", err
	}
	encoded := encodeTypeID(c)
	normalized := norm.NFC.String(encoded)
	sum := xxhash.Sum64String(normalized)
	return fmt.Sprintf("%s#%016x", encoded, sum), nil
}

func encodeTypeID(t Type) string {
	switch v := t.(type) {
	case Any:
		return "any"
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case None:
		return "none"
	case Error:
		return "error"
	case *Record:
		return fmt.Sprintf("record(%s)", norm.NFC.String(v.Name))
	case *Reference:
		return fmt.Sprintf("ref(%s)", norm.NFC.String(v.Name))
	case *List:
		return fmt.Sprintf("[%s]", encodeTypeID(v.Element))
	case *Map:
		return fmt.Sprintf("{%s:%s}", encodeTypeID(v.Key), encodeTypeID(v.Value))
	case *Function:
		args := ""
		for i, a := range v.Args {
			if i > 0 {
				args += ","
			}
			args += encodeTypeID(a)
		}
		return fmt.Sprintf("(\\(%s) %s)", args, encodeTypeID(v.Result))
	case *Union:
		return fmt.Sprintf("(%s|%s)", encodeTypeID(v.Left), encodeTypeID(v.Right))
	default:
		panic(fmt.Sprintf("types: encodeTypeID: unhandled type %T", t))
	}
}
