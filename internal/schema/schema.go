package schema

import "dexit/pkg/dexit"

// DocumentSchemaID is the $id the composed schema is compiled under.
const DocumentSchemaID = "dexit://test-document"

// Compose builds the unified JSON Schema document for the current set of
// loaded modules: the fixed TestSet/Test/Task skeleton, with the task
// schema's anyOf populated from every (module, command) pair and the
// defaults schema's properties populated from each module's
// DefaultsSchema.
func Compose(modules []*dexit.Module) map[string]interface{} {
	return map[string]interface{}{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"$id":     DocumentSchemaID,
		"$defs": map[string]interface{}{
			"task":     taskSchema(modules),
			"test":     testSchema(),
			"defaults": defaultsSchema(modules),
		},
		"type":     "object",
		"required": []interface{}{"name"},
		"properties": map[string]interface{}{
			"name":        map[string]interface{}{"type": "string"},
			"description": map[string]interface{}{"type": "string"},
			"tags":        stringArray(),
			"defaults":    ref("defaults"),
			"params":      map[string]interface{}{"type": "object"},
			"beforeAll":   taskArray(),
			"afterAll":    taskArray(),
			"beforeEach":  taskArray(),
			"afterEach":   taskArray(),
			"executionOrder": map[string]interface{}{
				"enum":    []interface{}{dexit.ExecutionOrderAsync, dexit.ExecutionOrderSync},
				"default": dexit.ExecutionOrderAsync,
			},
			"skip":  map[string]interface{}{"type": "boolean", "default": false},
			"tests": map[string]interface{}{"type": "array", "items": ref("test")},
		},
	}
}

func testSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"description", "tasks"},
		"properties": map[string]interface{}{
			"name":        map[string]interface{}{"type": "string"},
			"description": map[string]interface{}{"type": "string"},
			"tags":        stringArray(),
			"defaults":    ref("defaults"),
			"params":      map[string]interface{}{"type": "object"},
			"skip":        map[string]interface{}{"type": "boolean", "default": false},
			"tasks":       taskArray(),
		},
	}
}

// taskSchema builds the task shape with an anyOf branch per registered
// command, each discriminated on `do` being exactly that command's id.
func taskSchema(modules []*dexit.Module) map[string]interface{} {
	branches := make([]interface{}, 0)
	for _, m := range modules {
		for cmdName, cmd := range m.Commands {
			id := m.Name + "." + cmdName
			branch := map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"do": map[string]interface{}{"enum": []interface{}{id}},
				},
			}
			if cmd.ArgsSchema != nil {
				branch["properties"].(map[string]interface{})["args"] = cmd.ArgsSchema
			}
			if cmd.ExpectSchema != nil {
				branch["properties"].(map[string]interface{})["expect"] = cmd.ExpectSchema
			}
			branches = append(branches, branch)
		}
	}

	task := map[string]interface{}{
		"type":                 "object",
		"required":             []interface{}{"do"},
		"additionalProperties": false,
		"properties": map[string]interface{}{
			"id":              map[string]interface{}{"type": "string"},
			"description":     map[string]interface{}{"type": "string"},
			"do":              map[string]interface{}{"type": "string"},
			"args":            map[string]interface{}{"type": "object", "default": map[string]interface{}{}},
			"expect":          map[string]interface{}{"type": "object"},
			"set":             map[string]interface{}{"type": "object"},
			"runBeforeAsync":  map[string]interface{}{"type": "string"},
			"continueOnError": map[string]interface{}{"type": "boolean", "default": false},
		},
	}
	if len(branches) > 0 {
		task["anyOf"] = branches
	}
	return task
}

// defaultsSchema composes the per-module defaults shape, plus a catch-all
// pattern accepting generic module defaults for modules that did not
// declare a DefaultsSchema.
func defaultsSchema(modules []*dexit.Module) map[string]interface{} {
	properties := map[string]interface{}{}
	for _, m := range modules {
		if m.DefaultsSchema != nil {
			properties[m.Name] = m.DefaultsSchema
		}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"patternProperties": map[string]interface{}{
			".*": map[string]interface{}{"type": "object"},
		},
	}
}

func ref(name string) map[string]interface{} {
	return map[string]interface{}{"$ref": "#/$defs/" + name}
}

func stringArray() map[string]interface{} {
	return map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}}
}

func taskArray() map[string]interface{} {
	return map[string]interface{}{"type": "array", "items": ref("task")}
}
