// Package manifest implements the dependency manifest of : for
// one compiled module, it maps each imported module path to its
// interface artifact path, plus an ordered list of prelude interface
// artifact paths the module implicitly depends on.
package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/sunholo/corelang/internal/schema"
)

// Dependency is one imported module's resolved artifact location.
type Dependency struct {
	ModulePath   string `json:"module_path"`
	ArtifactPath string `json:"artifact_path"`
}

// Manifest is the complete dependency manifest for one module.
type Manifest struct {
	Module  string       `json:"module"`
	Schema  string       `json:"schema"`
	Depends []Dependency `json:"depends"`
	Prelude []string     `json:"prelude"`
	Digest  string       `json:"digest"`
}

// Build constructs the manifest for modulePath: depends maps an imported
// module path to its interface artifact path, prelude is the ordered
// list of prelude interface artifact paths (order matters — it is the
// resolution order for a prelude-provided name shadowed in more than one
// prelude module — so it is carried through unsorted).
func Build(modulePath string, depends map[string]string, prelude []string) *Manifest {
	m := &Manifest{
		Module: modulePath,
		Schema: schema.ManifestV1,
	}
	for path, artifact := range depends {
		m.Depends = append(m.Depends, Dependency{ModulePath: path, ArtifactPath: artifact})
	}
	sort.Slice(m.Depends, func(a, b int) bool { return m.Depends[a].ModulePath < m.Depends[b].ModulePath })
	m.Prelude = append([]string(nil), prelude...)
	m.Digest = computeDigest(m)
	return m
}

func computeDigest(m *Manifest) string {
	clone := *m
	clone.Digest = ""
	data, err := schema.MarshalDeterministic(clone)
	if err != nil {
		// Dependency and Prelude are both plain-scalar slices; marshaling
		// a Manifest built by Build can't fail.
		panic(fmt.Sprintf("manifest: marshal canonical form: %v", err))
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum)
}

// Lookup returns the artifact path recorded for an imported module path.
func (m *Manifest) Lookup(modulePath string) (string, bool) {
	for _, d := range m.Depends {
		if d.ModulePath == modulePath {
			return d.ArtifactPath, true
		}
	}
	return "", false
}

// Marshal renders m as byte-stable JSON.
func (m *Manifest) Marshal() ([]byte, error) {
	return schema.MarshalDeterministic(m)
}

// Unmarshal parses a previously-serialized dependency manifest.
func Unmarshal(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
