package levels

import "sort"

// Domain names a parameter mapping.
type Domain string

const (
	DomainArithmetic Domain = "arithmetic"
	DomainFractions  Domain = "fractions"
	DomainDecimals   Domain = "decimals"
	DomainGrid       Domain = "grid"
)

// Mapper is the type-erased form of a domain mapping.
type Mapper func(level float64) Params

var mappers = map[Domain]Mapper{
	DomainArithmetic: func(l float64) Params { return Arithmetic(l) },
	DomainFractions:  func(l float64) Params { return Fractions(l) },
	DomainDecimals:   func(l float64) Params { return Decimals(l) },
	DomainGrid:       func(l float64) Params { return Grid(l) },
}

// Lookup returns the mapper registered for domain.
func Lookup(domain Domain) (Mapper, bool) {
	m, ok := mappers[domain]
	return m, ok
}

// Domains returns all registered domains sorted by name.
func Domains() []Domain {
	out := make([]Domain, 0, len(mappers))
	for d := range mappers {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
