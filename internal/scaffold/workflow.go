package scaffold

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

const typecheckJob = "typecheck"

// RewriteWorkflow drops the typecheck job from a CI workflow and removes
// it from the deploy job's dependency list. Key order survives the round
// trip via ordered maps; comments do not, which is acceptable for a
// one-time rewrite.
func RewriteWorkflow(data []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("failed to parse workflow: %w", err)
	}

	root, ok := doc.(yaml.MapSlice)
	if !ok {
		return nil, fmt.Errorf("workflow root is not a mapping")
	}

	jobs, ok := sliceValue(root, "jobs")
	if !ok {
		return nil, fmt.Errorf("workflow has no jobs section")
	}

	jobs = deleteKey(jobs, typecheckJob)

	if deploy, ok := sliceValue(jobs, "deploy"); ok {
		if needs, ok := mapValue(deploy, "needs"); ok {
			deploy = setValue(deploy, "needs", filterNeeds(needs))
			jobs = setValue(jobs, "deploy", deploy)
		}
	}

	root = setValue(root, "jobs", jobs)

	out, err := yaml.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("failed to encode workflow: %w", err)
	}
	return out, nil
}

func mapValue(ms yaml.MapSlice, key string) (interface{}, bool) {
	for _, item := range ms {
		if k, ok := item.Key.(string); ok && k == key {
			return item.Value, true
		}
	}
	return nil, false
}

func sliceValue(ms yaml.MapSlice, key string) (yaml.MapSlice, bool) {
	v, ok := mapValue(ms, key)
	if !ok {
		return nil, false
	}
	slice, ok := v.(yaml.MapSlice)
	return slice, ok
}

func setValue(ms yaml.MapSlice, key string, value interface{}) yaml.MapSlice {
	for i, item := range ms {
		if k, ok := item.Key.(string); ok && k == key {
			ms[i].Value = value
			return ms
		}
	}
	return append(ms, yaml.MapItem{Key: key, Value: value})
}

func deleteKey(ms yaml.MapSlice, key string) yaml.MapSlice {
	kept := make(yaml.MapSlice, 0, len(ms))
	for _, item := range ms {
		if k, ok := item.Key.(string); ok && k == key {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

// filterNeeds removes the typecheck entry from a needs list; a scalar
// needs value is returned unchanged unless it names typecheck itself.
func filterNeeds(needs interface{}) interface{} {
	switch v := needs.(type) {
	case []interface{}:
		kept := make([]interface{}, 0, len(v))
		for _, entry := range v {
			if s, ok := entry.(string); ok && s == typecheckJob {
				continue
			}
			kept = append(kept, entry)
		}
		return kept
	case string:
		if v == typecheckJob {
			return []interface{}{}
		}
		return v
	default:
		return needs
	}
}
