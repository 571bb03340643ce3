// Package contentmodel provides an in-memory content type engine.
//
// A Registry maps type identifiers to Types. A Type declares attributes
// (static defaults or computed values) and named actions, and produces
// Instances through Init. Instances resolve attributes and actions through
// their own store, their Type's descriptors and finally an optional parent
// Instance.
//
// Attribute Resolution
//
// Instance.Get resolves the first segment of a dot-separated path in order:
// own value, computed attribute (memoized into the own store on first use),
// static default, parent instance. Remaining segments descend into the
// resolved value as plain data (maps, structs, slices). Missing attributes
// resolve to nil; the engine never returns an error for an absent value.
//
// Events
//
// Registries, Types and Instances each carry an Emitter. Types emit "define",
// "init" and "remove"; instances emit "init", "remove", "change" and
// "change <name>". Instance.Remove notifies instance listeners before type
// listeners. Type.Changed broadcasts "change <name>" to every live instance.
//
// The engine is single-threaded: callers that share a Registry across
// goroutines must serialise access themselves (see the api subpackage).
package contentmodel
