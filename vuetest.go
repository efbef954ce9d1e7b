// Package vuetest generates Vitest spec scaffolds for Vue single-file components.
//
// Every data-test attribute found in a component becomes one test case asserting
// that the element is rendered. The spec file is written next to the component.
//
// # Generation
//
// Generate specs for every component under src:
//
//	result, err := vuetest.Generate(ctx, vuetest.Config{
//		Paths: []string{"src/**/*.vue"},
//		Generation: testgen.Config{
//			ExtraImports:     "import { createPinia } from 'pinia'",
//			SelectorTemplate: "byTestId($attr)",
//		},
//	})
//
// # Listing markers
//
// List data-test attributes with their positions:
//
//	refs, stats, err := vuetest.ScanFiles([]string{"src"}, ".gitignore")
//
// # CLI Tool
//
// The vuetest command wraps both operations:
//
//	go install github.com/Pr0ny/vue-template-tester/cmd/vuetest@latest
package vuetest
