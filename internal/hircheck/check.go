package hircheck

import (
	"github.com/sunholo/corelang/internal/hir"
	"github.com/sunholo/corelang/internal/types"
)

// CheckModule runs the full HIR validation/inference pipeline in the
// order each pass depends on: recursive-alias detection must succeed
// before Canonicalize can be called safely anywhere else; inference must
// run before the two structural checks below, since they read the types
// inference annotated.
func CheckModule(mod *hir.Module, aliases types.AliasTable, records types.RecordTable) error {
	if err := CheckRecursiveAliases(aliases); err != nil {
		return err
	}

	c := &Checker{Aliases: aliases, Records: records}
	if err := c.Infer(mod); err != nil {
		return err
	}
	if err := c.CheckUnusedErrors(mod); err != nil {
		return err
	}
	if err := c.CheckVariantInFFI(mod); err != nil {
		return err
	}
	return nil
}
