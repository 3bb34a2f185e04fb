package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"opnsense-manager/core/reconcile"
	"opnsense-manager/feature/objects"

	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"
)

// parseSetFlags turns key=value pairs into typed field values. Values are read
// as YAML scalars, so "true" is a bool and "24" an int.
func parseSetFlags(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set value %q (expected key=value)", pair)
		}

		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		if value == nil {
			value = raw
		}
		out[key] = value
	}
	return out, nil
}

// readFieldFile reads a YAML mapping of field values.
func readFieldFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	fields := map[string]any{}
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return fields, nil
}

// readDeclarations decodes every YAML document of r into a declaration.
func readDeclarations(r io.Reader) ([]objects.Declaration, error) {
	dec := yaml.NewDecoder(r)

	var decls []objects.Declaration
	for i := 1; ; i++ {
		var doc map[string]any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		if doc == nil {
			continue
		}

		d, err := objects.DecodeDeclaration(doc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		decls = append(decls, d)
	}
	return decls, nil
}

// renderResult writes the result as YAML, followed by a unified diff when asked.
func renderResult(w io.Writer, res *reconcile.Result, showDiff bool) error {
	data, err := yaml.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}

	if !showDiff || res.Diff.Empty() {
		return nil
	}
	text, err := unifiedDiff(res.Diff)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}

// unifiedDiff renders both sides of a diff as YAML and compares them line by line.
func unifiedDiff(d reconcile.Diff) (string, error) {
	before, err := sideYAML(d.Before)
	if err != nil {
		return "", err
	}
	after, err := sideYAML(d.After)
	if err != nil {
		return "", err
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "before",
		ToFile:   "after",
		Context:  3,
	})
}

func sideYAML(r reconcile.Record) (string, error) {
	if len(r) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return "", fmt.Errorf("failed to encode diff: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderYAML writes any value as YAML.
func renderYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = w.Write(data)
	return err
}
