package confhcl

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/TheVinhLuong102/thinc/conf"
	"github.com/TheVinhLuong102/thinc/internal/ctxlog"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Parse evaluates configuration source into a node tree. filename selects
// the syntax: a ".json" suffix means HCL's JSON flavor, anything else native
// HCL. It also labels parse diagnostics.
func Parse(ctx context.Context, src []byte, filename string) (*conf.Node, error) {
	parser := hclparse.NewParser()
	var file *hcl.File
	var diags hcl.Diagnostics
	if strings.HasSuffix(filename, ".json") {
		file, diags = parser.ParseJSON(src, filename)
	} else {
		file, diags = parser.ParseHCL(src, filename)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, diags)
	}
	return translate(ctx, file, filename)
}

// LoadFile parses a single configuration file.
func LoadFile(ctx context.Context, path string) (*conf.Node, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("loading configuration file", "path", path)

	parser := hclparse.NewParser()
	var file *hcl.File
	var diags hcl.Diagnostics
	if strings.HasSuffix(path, ".json") {
		file, diags = parser.ParseJSONFile(path)
	} else {
		file, diags = parser.ParseHCLFile(path)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
	}
	return translate(ctx, file, path)
}

// LoadDir recursively finds every .hcl and .json file under dir, parses each,
// and merges their top-level sections into a single tree. Files are applied
// in sorted path order; a later file's section replaces an earlier one with
// the same key.
func LoadDir(ctx context.Context, dir string) (*conf.Node, error) {
	logger := ctxlog.FromContext(ctx)

	paths, err := findConfigFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	if len(paths) == 0 {
		logger.Warn("no configuration files found", "dir", dir)
	}

	merged := conf.Mapping()
	for _, path := range paths {
		node, err := LoadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		for _, key := range node.Keys() {
			if merged.Child(key) != nil {
				logger.Warn("duplicate configuration section, overriding", "section", key, "path", path)
			}
			merged.SetChild(key, node.Child(key))
		}
	}
	logger.Debug("configuration directory loaded", "dir", dir, "files", len(paths), "sections", merged.Len())
	return merged, nil
}

// translate evaluates the file's top-level attributes and classifies the
// result into a node tree.
func translate(ctx context.Context, file *hcl.File, filename string) (*conf.Node, error) {
	logger := ctxlog.FromContext(ctx)

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, diags)
	}

	values := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		value, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate %q in %s: %w", name, filename, diags)
		}
		values[name] = value
	}

	obj := cty.EmptyObjectVal
	if len(values) > 0 {
		obj = cty.ObjectVal(values)
	}
	node, err := conf.FromCtyValue(obj)
	if err != nil {
		return nil, fmt.Errorf("in %s: %w", filename, err)
	}
	logger.Debug("configuration file translated", "path", filename, "sections", node.Len())
	return node, nil
}

// findConfigFiles returns the sorted paths of all .hcl and .json files under
// root.
func findConfigFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(d.Name()) {
		case ".hcl", ".json":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
