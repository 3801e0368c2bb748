// Command knotgen generates facades and graph composition roots for explicit wiring.
//
// knotgen keeps dependency injection explicit while removing the boilerplate
// that grows with an application:
//
//   - Per-service builder facades (from *.inject.json) validate that required
//     dependencies were injected before any business method runs.
//   - Optional dependencies are resolved cleanly via a di.Registry at build
//     time, so they never leak into constructors.
//   - Whole-app composition roots (from graph.json) wire and build every
//     service in one generated, reviewable function.
//
// There are no container graphs, no reflection injection, no runtime magic and
// no lifecycle framework. The generated code is plain Go you could have written
// by hand.
//
// # What knotgen generates
//
// A) Per-service facade/builder (facade subcommand, *.inject.json)
//
// For each service, knotgen generates a facade around your concrete
// implementation:
//
//   - New<Facade>(...) constructs the underlying *Impl via your constructor
//   - InjectX(...) / TryInjectX(...) for required deps (overwrite policy:
//     error | ignore | overwrite)
//   - Build()/MustBuild() validates required deps
//   - BuildWith(reg di.Registry) applies optional deps from the registry, then validates
//   - Missing()/Explain() report the wiring state for debug UX
//   - UnsafeImpl() returns the underlying pointer for composition-root wiring only
//   - optional safe method wrappers that enforce per-method "requires" deps
//
// B) Graph composition root (graph subcommand, graph.json)
//
// knotgen generates functions like BuildApp(cfg, reg) that:
//
//   - create builders for each service
//   - wire the graph explicitly (including cycles, via UnsafeImpl)
//   - call Build() or BuildWith(reg) per service
//   - return a result struct containing the built service pointers
//
// # Optional deps via Registry
//
// Builders resolve optional dependencies through the minimal interface:
//
//	type Registry interface {
//		Resolve(cfg any, key string) (val any, ok bool, err error)
//	}
//
// Generated builders look up registry keys (e.g. "v4.auditor"), apply hits via
// a setter or field assignment, and can fall back to a default expression when
// the key is missing.
//
// # Typical go:generate usage
//
// Per service:
//
//	//go:generate go run ../../cmd/knotgen facade --spec specs/users.inject.json --out users.gen.go
//
// For a graph:
//
//	//go:generate go run ../../cmd/knotgen graph --spec specs/graph.json --out graph.gen.go
//
// Then:
//
//	go generate ./...
//
// # Cycle wiring note
//
// knotgen does not solve cycles automatically. Cycles remain explicit:
// UnsafeImpl() exists to enable composition-root wiring before
// Build()/BuildWith() validation completes. Do not call business methods on
// the underlying implementation before Build().
//
// See examples/v4 for end-to-end usage.
package main
