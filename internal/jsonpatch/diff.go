// Package jsonpatch computes RFC 6902 patches between two JSON documents.
// The engine uses it to tell the presentation layer which outputs moved
// after an edit, so numbers are compared with a small tolerance.
package jsonpatch

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"budget-engine/internal/model"
)

// Tolerance below which two numbers are treated as equal.
const Tolerance = 1e-9

// Between marshals a and b and diffs the resulting documents.
func Between(a, b any) ([]model.PatchOp, error) {
	da, err := normalise(a)
	if err != nil {
		return nil, fmt.Errorf("normalise source: %w", err)
	}
	db, err := normalise(b)
	if err != nil {
		return nil, fmt.Errorf("normalise target: %w", err)
	}
	ops := Diff(da, db, "")
	if ops == nil {
		ops = []model.PatchOp{}
	}
	return ops, nil
}

func normalise(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Diff returns the operations that turn a into b. Both must be decoded JSON
// (maps, slices, float64, string, bool, nil). Object keys are visited in
// sorted order so the output is deterministic. Path is "" for the root.
func Diff(a, b any, path string) []model.PatchOp {
	if a == nil && b == nil {
		return nil
	}
	if a == nil || b == nil {
		return []model.PatchOp{replaceOp(path, b)}
	}

	switch av := a.(type) {
	case map[string]any:
		if bv, ok := b.(map[string]any); ok {
			return diffObjects(av, bv, path)
		}
	case []any:
		if bv, ok := b.([]any); ok {
			return diffArrays(av, bv, path)
		}
	case float64:
		if bv, ok := b.(float64); ok {
			if math.Abs(av-bv) <= Tolerance {
				return nil
			}
			return []model.PatchOp{replaceOp(path, b)}
		}
	}

	if a != b {
		return []model.PatchOp{replaceOp(path, b)}
	}
	return nil
}

func diffObjects(a, b map[string]any, path string) []model.PatchOp {
	var ops []model.PatchOp

	for _, k := range sortedKeys(a) {
		if _, ok := b[k]; !ok {
			ops = append(ops, removeOp(path+"/"+escapeKey(k)))
		}
	}

	for _, k := range sortedKeys(b) {
		childPath := path + "/" + escapeKey(k)
		av, inA := a[k]
		if !inA {
			ops = append(ops, addOp(childPath, b[k]))
			continue
		}
		ops = append(ops, Diff(av, b[k], childPath)...)
	}

	return ops
}

func diffArrays(a, b []any, path string) []model.PatchOp {
	var ops []model.PatchOp

	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		ops = append(ops, Diff(a[i], b[i], path+"/"+strconv.Itoa(i))...)
	}

	// remove from the end so earlier indices stay valid
	for i := len(a) - 1; i >= n; i-- {
		ops = append(ops, removeOp(path+"/"+strconv.Itoa(i)))
	}
	for i := n; i < len(b); i++ {
		ops = append(ops, addOp(path+"/"+strconv.Itoa(i), b[i]))
	}

	return ops
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func replaceOp(path string, value any) model.PatchOp {
	return model.PatchOp{Op: "replace", Path: path, Value: value}
}

func addOp(path string, value any) model.PatchOp {
	return model.PatchOp{Op: "add", Path: path, Value: value}
}

func removeOp(path string) model.PatchOp {
	return model.PatchOp{Op: "remove", Path: path}
}

// escapeKey escapes a JSON Pointer token per RFC 6901.
func escapeKey(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}
