package dexit

// RunContext is the value threaded through execution: parameters available
// to interpolation, and per-module default arguments merged under each
// task's own args. Copied (deep) on descent into each test set and test;
// Params is mutated in place only by a task's `set` step, scoped to the
// context instance that owns it.
type RunContext struct {
	Params   map[string]interface{}
	Defaults map[string]map[string]interface{}
}

// NewRunContext returns an empty root context.
func NewRunContext() RunContext {
	return RunContext{
		Params:   map[string]interface{}{},
		Defaults: map[string]map[string]interface{}{},
	}
}

// Child returns a deep copy of ctx with defaults and params overlaid by the
// given overrides, right-biased (override wins on key collision, merged
// recursively for nested maps).
func (ctx RunContext) Child(defaults, params map[string]interface{}) RunContext {
	child := RunContext{
		Params:   deepCopyMap(ctx.Params),
		Defaults: deepCopyDefaults(ctx.Defaults),
	}
	for module, values := range defaults {
		if nested, ok := values.(map[string]interface{}); ok {
			child.Defaults[module] = deepMergeMap(child.Defaults[module], nested)
		}
	}
	child.Params = deepMergeMap(child.Params, params)
	return child
}

func deepCopyMap(m map[string]interface{}) map[string]interface{} {
	return deepMergeMap(map[string]interface{}{}, m)
}

func deepCopyDefaults(d map[string]map[string]interface{}) map[string]map[string]interface{} {
	out := make(map[string]map[string]interface{}, len(d))
	for k, v := range d {
		out[k] = deepCopyMap(v)
	}
	return out
}

// deepMergeMap merges override into base, right-biased on scalars,
// recursive on nested maps, and concatenating when both sides hold slices.
// base is never mutated; a new map is returned.
func deepMergeMap(base, override map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		existing, hasExisting := out[k]
		if !hasExisting {
			out[k] = v
			continue
		}
		out[k] = deepMergeValue(existing, v)
	}
	return out
}

func deepMergeValue(base, override interface{}) interface{} {
	baseMap, baseIsMap := base.(map[string]interface{})
	overrideMap, overrideIsMap := override.(map[string]interface{})
	if baseIsMap && overrideIsMap {
		return deepMergeMap(baseMap, overrideMap)
	}

	baseSlice, baseIsSlice := base.([]interface{})
	overrideSlice, overrideIsSlice := override.([]interface{})
	if baseIsSlice && overrideIsSlice {
		combined := make([]interface{}, 0, len(baseSlice)+len(overrideSlice))
		combined = append(combined, baseSlice...)
		combined = append(combined, overrideSlice...)
		return combined
	}

	return override
}

// DeepMerge exposes the same right-biased merge used for RunContext
// construction, for callers (the Runner's runArgs assembly) that need to
// merge two arbitrary maps outside a RunContext.
func DeepMerge(base, override map[string]interface{}) map[string]interface{} {
	return deepMergeMap(base, override)
}
