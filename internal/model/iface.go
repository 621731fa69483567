package model

// Resolver turns a raw, user-supplied code into a Resolution.
// Implementations never fail: unknown or empty codes resolve to DEFAULT.
type Resolver interface {
	Resolve(raw string) Resolution
}

// CodeLister lists the codes a catalog knows, DEFAULT excluded.
type CodeLister interface {
	Codes() []string
}

// Catalog is the read-only lookup surface shared by all front-ends.
type Catalog interface {
	Resolver
	CodeLister
	Lookup(code string) (Record, bool)
}
