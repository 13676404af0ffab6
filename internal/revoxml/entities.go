package revoxml

import (
	"encoding/xml"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// maxEntityDepth bounds nested entity references inside entity values.
const maxEntityDepth = 8

var (
	entityDecl = regexp.MustCompile(`<!ENTITY\s+([A-Za-z_][\w.\-]*)\s+(?:"([^"]*)"|'([^']*)')\s*>`)
	entityRef  = regexp.MustCompile(`&(#x[0-9A-Fa-f]+|#[0-9]+|[A-Za-z_][\w.\-]*);`)
)

// LoadEntities reads the general entity declarations of every *.dtd and
// *.ent file in dir and returns them merged over xml.HTMLEntity, with
// character and entity references inside values already expanded.
// Parameter and external entities are skipped.
func LoadEntities(dir string) (map[string]string, error) {
	var files []string
	for _, pattern := range []string{"*.dtd", "*.ent"} {
		m, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		files = append(files, m...)
	}
	if len(files) == 0 {
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("entity dir: %w", err)
		}
	}

	raw := make(map[string]string)
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		for name, value := range ParseEntities(string(data)) {
			raw[name] = value
		}
	}

	out := maps.Clone(xml.HTMLEntity)
	for name := range raw {
		out[name] = expand(raw[name], raw, 0)
	}
	return out, nil
}

// ParseEntities extracts the general entity declarations of one DTD
// document, unexpanded.
func ParseEntities(dtd string) map[string]string {
	out := make(map[string]string)
	for _, m := range entityDecl.FindAllStringSubmatch(dtd, -1) {
		value := m[2]
		if value == "" {
			value = m[3]
		}
		out[m[1]] = value
	}
	return out
}

func expand(value string, table map[string]string, depth int) string {
	if !strings.Contains(value, "&") {
		return value
	}
	return entityRef.ReplaceAllStringFunc(value, func(ref string) string {
		name := ref[1 : len(ref)-1]
		if num, ok := strings.CutPrefix(name, "#"); ok {
			base := 10
			if hex, ok := strings.CutPrefix(num, "x"); ok {
				num, base = hex, 16
			}
			r, err := strconv.ParseUint(num, base, 32)
			if err != nil {
				return ref
			}
			return string(rune(r))
		}
		if depth >= maxEntityDepth {
			return ref
		}
		if v, ok := table[name]; ok {
			return expand(v, table, depth+1)
		}
		if v, ok := xml.HTMLEntity[name]; ok {
			return v
		}
		return ref
	})
}
