package jsonpatch

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"contribution-engine/internal/model"
)

// Between computes the RFC 6902 patches that turn before into after (fwd)
// and after back into before (bwd). Both values are compared in their JSON
// form, so field names in the patch paths are the JSON names.
func Between(before, after any) (fwd, bwd []model.PatchOperation, err error) {
	a, err := toDocument(before)
	if err != nil {
		return nil, nil, fmt.Errorf("encode before: %w", err)
	}
	b, err := toDocument(after)
	if err != nil {
		return nil, nil, fmt.Errorf("encode after: %w", err)
	}
	fwd, bwd = diff(a, b, "")
	if fwd == nil {
		fwd = []model.PatchOperation{}
	}
	if bwd == nil {
		bwd = []model.PatchOperation{}
	}
	return fwd, bwd, nil
}

func toDocument(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func diff(a, b any, path string) (fwd, bwd []model.PatchOperation) {
	if a == nil && b == nil {
		return nil, nil
	}
	if a == nil || b == nil {
		return []model.PatchOperation{replaceOp(path, b)},
			[]model.PatchOperation{replaceOp(path, a)}
	}

	aMap, aIsMap := a.(map[string]any)
	bMap, bIsMap := b.(map[string]any)
	if aIsMap && bIsMap {
		return diffObjects(aMap, bMap, path)
	}

	// Arrays and scalars are replaced whole.
	if reflect.DeepEqual(a, b) {
		return nil, nil
	}
	return []model.PatchOperation{replaceOp(path, b)},
		[]model.PatchOperation{replaceOp(path, a)}
}

func diffObjects(a, b map[string]any, path string) (fwd, bwd []model.PatchOperation) {
	for _, k := range sortedKeys(a) {
		if _, ok := b[k]; !ok {
			childPath := path + "/" + escapeKey(k)
			fwd = append(fwd, removeOp(childPath))
			bwd = append(bwd, addOp(childPath, a[k]))
		}
	}

	for _, k := range sortedKeys(b) {
		childPath := path + "/" + escapeKey(k)
		av, inA := a[k]
		if !inA {
			fwd = append(fwd, addOp(childPath, b[k]))
			bwd = append(bwd, removeOp(childPath))
			continue
		}
		subFwd, subBwd := diff(av, b[k], childPath)
		fwd = append(fwd, subFwd...)
		bwd = append(bwd, subBwd...)
	}

	return fwd, bwd
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func replaceOp(path string, value any) model.PatchOperation {
	return model.PatchOperation{Op: "replace", Path: path, Value: value}
}

func addOp(path string, value any) model.PatchOperation {
	return model.PatchOperation{Op: "add", Path: path, Value: value}
}

func removeOp(path string) model.PatchOperation {
	return model.PatchOperation{Op: "remove", Path: path}
}

// escapeKey escapes a JSON Pointer token per RFC 6901.
func escapeKey(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}
