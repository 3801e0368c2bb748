// Package di provides small, explicit dependency wiring helpers for Go.
//
// This package intentionally supports the three classic supply styles:
//
//   - constructor injection: Construct1..Construct3. The consumer receives its
//     collaborators as constructor arguments and never builds them itself.
//     Best default: dependencies are visible in the signature and the value is
//     complete at creation time.
//
//   - setter injection: Setting + With/WithAll. Collaborators are assigned
//     after construction, with guardrails (duplicate keys, nil wiring) and a
//     Deps bag for introspection. Use it for optional or late-bound
//     collaborators and for breaking construction cycles.
//
//   - method injection: Call/Apply. A collaborator is passed to a single
//     operation and never retained. Use it when the dependency varies per
//     call.
//
// Providers (lifetime.go) invert control over creation itself: Singleton and
// Transient lifetimes decide whether consumers share one instance or get a
// fresh one. Registries (registery.go, yamlregistry.go) supply optional
// dependencies at build time without leaking them into constructors.
//
// All wiring stays reflection-free and explicit in your composition root
// (main/bootstrap). There is no automatic container or graph resolution; the
// cmd/knotgen generator exists for projects that want builder facades and
// composition roots emitted from specs instead of written by hand.
//
// Import
//
//	"github.com/amhaddad/knot/di"
package di
