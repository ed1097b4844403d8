// Package diag renders structured error reports for a human reading a
// terminal. It is consumed by debug tooling only (cmd/corecheck) — library
// packages never print; they return *errors.Report values.
package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/sunholo/corelang/internal/errors"
)

var (
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// Render formats a Report as a single colored diagnostic line, e.g.
//
//	math/gcd.ail:12:3: error[TypesNotMatched] type: cannot unify Number with String
//
// (the position prefix appears only when the Position names a file),
// followed by an indented rendering of any structured Data fields.
func Render(r *errors.Report) string {
	var b strings.Builder

	if r.Position != nil && r.Position.File != "" {
		fmt.Fprintf(&b, "%s: ", cyan(r.Position.String()))
	}
	fmt.Fprintf(&b, "%s %s: %s\n", red("error["+r.Code+"]"), bold(r.Phase), r.Message)

	if len(r.Data) > 0 {
		keys := sortedKeys(r.Data)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s %s = %v\n", yellow("·"), k, r.Data[k])
		}
	}
	return b.String()
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}
