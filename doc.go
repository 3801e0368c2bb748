// Package knot provides a set of explicit dependency injection approaches for Go.
//
// This repository explores a progression of small, opinionated patterns:
//
//   - v1: setter injection via runtime injectors + dependency introspection
//   - v2: constructor injection + lifetime-aware providers (singleton/transient)
//   - v3: method injection (collaborators supplied per call, never retained)
//   - v4: code-generated facades + graph composition roots + optional-deps registries (knotgen)
//
// The goal is to keep wiring explicit (usually in your composition root / main),
// avoid reflection-based containers, and keep the surface area intentionally small.
//
// Start with the examples in the repo for end-to-end wiring style.
//
// See subpackages:
//   - di: library package used by the examples / generator output
//   - cmd/knotgen: code generator for v4 style wiring
//   - examples/*: runnable examples for each version
package knot
