package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dexit/pkg/dexit"
)

// New builds the core module: sleep, echo, and fail.
func New() *dexit.Module {
	return &dexit.Module{
		Name:        "core",
		Description: "Built-in commands with no external dependencies, useful for writing self-contained fixtures.",
		Commands: map[string]*dexit.Command{
			"sleep": sleepCommand(),
			"echo":  echoCommand(),
			"fail":  failCommand(),
		},
	}
}

func sleepCommand() *dexit.Command {
	return &dexit.Command{
		Description: "Sleeps for durationMs milliseconds, then returns.",
		ArgsSchema: map[string]interface{}{
			"type":       "object",
			"required":   []interface{}{"durationMs"},
			"properties": map[string]interface{}{"durationMs": map[string]interface{}{"type": "number", "minimum": 0}},
		},
		Run: func(ctx context.Context, args map[string]interface{}, notifyReady dexit.NotifyReady) (interface{}, error) {
			notifyReady()
			var durationMs float64
			switch v := args["durationMs"].(type) {
			case float64:
				durationMs = v
			case int:
				durationMs = float64(v)
			}
			timer := time.NewTimer(time.Duration(durationMs) * time.Millisecond)
			defer timer.Stop()
			select {
			case <-timer.C:
				return map[string]interface{}{"slept": durationMs}, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		},
		GetLabel: func(runArgs, expectArgs map[string]interface{}) string {
			return fmt.Sprintf("sleep %vms", runArgs["durationMs"])
		},
	}
}

func echoCommand() *dexit.Command {
	return &dexit.Command{
		Description: "Returns its args unchanged as the task result.",
		Run: func(ctx context.Context, args map[string]interface{}, notifyReady dexit.NotifyReady) (interface{}, error) {
			notifyReady()
			return args, nil
		},
		Expect: func(expectArgs map[string]interface{}, result interface{}) []dexit.AssertionError {
			return checkExpectation(expectArgs, result)
		},
		GetLabel: func(runArgs, expectArgs map[string]interface{}) string {
			return "echo"
		},
	}
}

func failCommand() *dexit.Command {
	return &dexit.Command{
		Description: "Always fails with message (default \"deliberate failure\"), for exercising error-path fixtures.",
		ArgsSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{"message": map[string]interface{}{"type": "string"}},
		},
		Run: func(ctx context.Context, args map[string]interface{}, notifyReady dexit.NotifyReady) (interface{}, error) {
			notifyReady()
			message, _ := args["message"].(string)
			if message == "" {
				message = "deliberate failure"
			}
			return nil, fmt.Errorf("%s", message)
		},
		GetLabel: func(runArgs, expectArgs map[string]interface{}) string {
			return "fail"
		},
	}
}

// checkExpectation supports the two generic assertion shapes a fixture
// needs to exercise the expect phase without a real module installed:
// equals (deep-ish comparison against a scalar or map) and contains (a
// substring check against the result's string form).
func checkExpectation(expectArgs map[string]interface{}, result interface{}) []dexit.AssertionError {
	var errs []dexit.AssertionError

	if want, ok := expectArgs["equals"]; ok {
		if !deepEqual(want, result) {
			errs = append(errs, dexit.AssertionError{
				Message:  "result does not equal expected value",
				Expected: want,
				Actual:   result,
			})
		}
	}

	if want, ok := expectArgs["contains"].(string); ok {
		if !strings.Contains(fmt.Sprintf("%v", result), want) {
			errs = append(errs, dexit.AssertionError{
				Message:  fmt.Sprintf("result does not contain %q", want),
				Expected: want,
				Actual:   result,
			})
		}
	}

	return errs
}

func deepEqual(a, b interface{}) bool {
	return fmt.Sprintf("%#v", a) == fmt.Sprintf("%#v", b)
}
