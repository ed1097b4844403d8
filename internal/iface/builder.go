package iface

import (
	"crypto/sha256"
	"fmt"
	"sort"

	"github.com/sunholo/corelang/internal/ast"
	"github.com/sunholo/corelang/internal/hir"
	"github.com/sunholo/corelang/internal/schema"
	"github.com/sunholo/corelang/internal/types"
)

// Build extracts mod's interface artifact: every Public type definition,
// type alias, and function definition, serialized deterministically and
// stamped with a digest over the canonical encoding.
// aliases resolves Reference nodes encountered while rendering a type to
// text; pass nil if mod has none.
func Build(mod *hir.Module, aliases types.AliasTable) (*Iface, error) {
	out := &Iface{
		Module: mod.Path,
		Schema: Schema,
	}

	for _, td := range mod.TypeDefinitions {
		if !td.Public {
			continue
		}
		fields := make([]FieldExport, len(td.Fields))
		for i, f := range td.Fields {
			typStr, err := renderType(f.Type, aliases)
			if err != nil {
				return nil, fmt.Errorf("iface: field %s.%s: %w", td.Name, f.Name, err)
			}
			fields[i] = FieldExport{Name: f.Name, Type: typStr}
		}
		out.TypeDefinitions = append(out.TypeDefinitions, TypeDefinitionExport{
			Name:         td.Name,
			OriginalName: td.OriginalName,
			Fields:       fields,
			Open:         td.Open,
			External:     td.External,
			Public:       td.Public,
			Position:     renderPosition(td.Position),
		})
	}

	for _, ta := range mod.TypeAliases {
		if !ta.Public {
			continue
		}
		targetStr, err := renderType(ta.Target, aliases)
		if err != nil {
			return nil, fmt.Errorf("iface: alias %s: %w", ta.Name, err)
		}
		out.TypeAliases = append(out.TypeAliases, TypeAliasExport{
			Name:         ta.Name,
			OriginalName: ta.OriginalName,
			Target:       targetStr,
			External:     ta.External,
			Public:       ta.Public,
			Position:     renderPosition(ta.Position),
		})
	}

	for _, fd := range mod.FunctionDefinitions {
		if !fd.Public {
			continue
		}
		fnType := &types.Function{Result: fd.Lambda.ResultType}
		for _, arg := range fd.Lambda.Arguments {
			fnType.Args = append(fnType.Args, arg.Type)
		}
		typStr, err := renderType(fnType, aliases)
		if err != nil {
			return nil, fmt.Errorf("iface: function %s: %w", fd.Name, err)
		}
		out.FunctionDeclarations = append(out.FunctionDeclarations, FunctionDeclarationExport{
			Name:     fd.Name,
			Type:     typStr,
			Position: renderPosition(fd.Position),
		})
	}

	sortExports(out)

	digest, err := computeDigest(out)
	if err != nil {
		return nil, fmt.Errorf("iface: computing digest: %w", err)
	}
	out.Digest = digest
	return out, nil
}

// renderType produces the deterministic textual form of t stored in an
// interface artifact: aliases are resolved (an importer should never
// need the defining module's own alias table to understand the shape),
// everything else falls back to t.String(), which every types.Type
// implementation renders without map-order nondeterminism.
func renderType(t types.Type, aliases types.AliasTable) (string, error) {
	if t == nil {
		return "", nil
	}
	resolved, err := types.Resolve(t, aliases)
	if err != nil {
		return "", err
	}
	return resolved.String(), nil
}

func renderPosition(p ast.Pos) Position {
	return Position{Line: p.Line, Column: p.Column, File: p.File}
}

// sortExports orders every section by name so that two builds over the
// same (possibly differently-ordered) declaration set serialize
// identically.
func sortExports(i *Iface) {
	sort.Slice(i.TypeDefinitions, func(a, b int) bool {
		return i.TypeDefinitions[a].Name < i.TypeDefinitions[b].Name
	})
	sort.Slice(i.TypeAliases, func(a, b int) bool {
		return i.TypeAliases[a].Name < i.TypeAliases[b].Name
	})
	sort.Slice(i.FunctionDeclarations, func(a, b int) bool {
		return i.FunctionDeclarations[a].Name < i.FunctionDeclarations[b].Name
	})
}

// computeDigest hashes the canonical JSON encoding of i (with Digest
// itself cleared, so the digest never depends on its own prior value).
func computeDigest(i *Iface) (string, error) {
	clone := *i
	clone.Digest = ""
	data, err := schema.MarshalDeterministic(clone)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum), nil
}
