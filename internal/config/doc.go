// Package config loads and merges the configuration for a dexit run.
//
// Configuration comes from three layers, applied in order with each layer
// overriding the one before it:
//
//  1. built-in defaults (GetDefaultConfig)
//  2. the `dexit:` key of a project manifest file (dexit.yaml), if present
//  3. CLI flags, passed as Overrides
//
// # Usage
//
//	cfg, err := config.Load(config.DefaultManifestPath(), config.Overrides{
//		TestsPath: &testsPathFlag,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
package config
