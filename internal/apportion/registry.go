package apportion

import (
	"fmt"
	"strings"
)

// Method enumerates the registered apportionment methods.
type Method int

const (
	MethodLargestRemainder Method = iota + 1
	MethodFixedDivisorFloor
	MethodGeometricPriority
	MethodRoundedDivisor
)

// AllMethods lists every method in registry order.
var AllMethods = []Method{
	MethodLargestRemainder,
	MethodFixedDivisorFloor,
	MethodGeometricPriority,
	MethodRoundedDivisor,
}

var methodInfo = map[Method]struct {
	key        string
	historical string
}{
	MethodLargestRemainder:  {"largest-remainder", "Hamilton"},
	MethodFixedDivisorFloor: {"fixed-divisor-floor", "Jefferson"},
	MethodGeometricPriority: {"geometric-priority", "Huntington-Hill"},
	MethodRoundedDivisor:    {"rounded-divisor", "Webster"},
}

// String returns the canonical key used on the command line and in the API.
func (m Method) String() string {
	if info, ok := methodInfo[m]; ok {
		return info.key
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// Historical returns the name the method is commonly known by.
func (m Method) Historical() string {
	return methodInfo[m].historical
}

// MarshalText encodes the method as its canonical key.
func (m Method) MarshalText() ([]byte, error) {
	if _, ok := methodInfo[m]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText accepts any name understood by ParseMethod.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMethod resolves a canonical key, a historical name ("Hamilton") or a
// historical function name ("HamiltonApportionment"). Matching ignores case
// and the characters '-', '_' and ' '.
func ParseMethod(name string) (Method, error) {
	want := normalizeMethodName(name)
	if want == "" {
		return 0, fmt.Errorf("%w: empty name", ErrUnknownMethod)
	}
	for _, m := range AllMethods {
		info := methodInfo[m]
		hist := normalizeMethodName(info.historical)
		switch want {
		case normalizeMethodName(info.key), hist, hist + "apportionment":
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// ParseMethods parses a comma-separated list. The word "all" selects every
// method; duplicates are dropped while keeping first occurrence order.
func ParseMethods(list string) ([]Method, error) {
	var out []Method
	seen := make(map[Method]struct{})
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.EqualFold(part, "all") {
			return append([]Method(nil), AllMethods...), nil
		}
		m, err := ParseMethod(part)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no methods selected", ErrUnknownMethod)
	}
	return out, nil
}

func normalizeMethodName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(name)))
}

// Option configures a Registry.
type Option func(*registryConfig)

type registryConfig struct {
	divisorFloor   int64
	exactGeometric bool
}

// WithDivisorFloor overrides DefaultDivisorFloor for the divisor searches.
func WithDivisorFloor(floor int64) Option {
	return func(cfg *registryConfig) {
		cfg.divisorFloor = floor
	}
}

// WithExactGeometricTotal makes GeometricPriority stop at the requested total.
func WithExactGeometricTotal(enabled bool) Option {
	return func(cfg *registryConfig) {
		cfg.exactGeometric = enabled
	}
}

// Registry maps each Method to its implementation.
type Registry struct {
	methods map[Method]Apportioner
}

// NewRegistry builds a Registry holding every method.
func NewRegistry(opts ...Option) *Registry {
	cfg := registryConfig{divisorFloor: DefaultDivisorFloor}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Registry{
		methods: map[Method]Apportioner{
			MethodLargestRemainder:  LargestRemainder{},
			MethodFixedDivisorFloor: FixedDivisorFloor{Floor: cfg.divisorFloor},
			MethodGeometricPriority: GeometricPriority{ExactTotal: cfg.exactGeometric},
			MethodRoundedDivisor:    RoundedDivisor{Floor: cfg.divisorFloor},
		},
	}
}

// Get returns the implementation registered for m.
func (r *Registry) Get(m Method) (Apportioner, error) {
	impl, ok := r.methods[m]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, m)
	}
	return impl, nil
}

// Methods returns the registered methods in enum order.
func (r *Registry) Methods() []Method {
	out := make([]Method, 0, len(r.methods))
	for _, m := range AllMethods {
		if _, ok := r.methods[m]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Apportion runs method m on dist.
func (r *Registry) Apportion(m Method, dist Distribution, seats int) (Result, error) {
	impl, err := r.Get(m)
	if err != nil {
		return Result{}, err
	}
	return impl.Apportion(dist, seats)
}
