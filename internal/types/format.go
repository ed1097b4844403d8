package types

import "fmt"

// Format renders t in surface syntax for diagnostics, using originalNames
// to map a qualified record/alias name back to the name the user wrote
// (e.g. after definition-qualification prefixed it with a module path).
// Format does not canonicalize: it shows the type as annotated, including
// any Reference the user actually wrote, since the point is to match what
// appeared in source.
func Format(t Type, originalNames map[string]string) string {
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
		return displayName(v.Name, originalNames)
	case *Reference:
		return displayName(v.Name, originalNames)
	case *List:
		return fmt.Sprintf("[%s]", Format(v.Element, originalNames))
	case *Map:
		return fmt.Sprintf("{%s: %s}", Format(v.Key, originalNames), Format(v.Value, originalNames))
	case *Function:
		args := ""
		for i, a := range v.Args {
			if i > 0 {
				args += ", "
			}
			args += Format(a, originalNames)
		}
		return fmt.Sprintf("\\(%s) %s", args, Format(v.Result, originalNames))
	case *Union:
		return fmt.Sprintf("%s | %s", Format(v.Left, originalNames), Format(v.Right, originalNames))
	default:
		panic(fmt.Sprintf("types: Format: unhandled type %T", t))
	}
}

func displayName(qualified string, originalNames map[string]string) string {
	if originalNames != nil {
		if orig, ok := originalNames[qualified]; ok {
			return orig
		}
	}
	return qualified
}
