package recognition

// CancellationErrorCodeProperty is the property key under which the
// cancellation error code name is stored.
const CancellationErrorCodeProperty = "CancellationErrorCode"

// Properties is a string keyed property bag attached to results and events.
// The zero value is ready to use.
type Properties struct {
	values map[string]string
}

// NewProperties returns an empty property bag.
func NewProperties() Properties {
	return Properties{values: make(map[string]string)}
}

// Set stores value under key.
func (p *Properties) Set(key, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	p.values[key] = value
}

// Get returns the value stored under key and whether it was present.
func (p Properties) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// GetOr returns the value stored under key, or def when absent.
func (p Properties) GetOr(key, def string) string {
	if v, ok := p.values[key]; ok {
		return v
	}
	return def
}

// Len returns the number of stored properties.
func (p Properties) Len() int {
	return len(p.values)
}

// Clone returns a deep copy of the bag.
func (p Properties) Clone() Properties {
	c := NewProperties()
	for k, v := range p.values {
		c.values[k] = v
	}
	return c
}

// Map returns a copy of the bag as a plain map.
func (p Properties) Map() map[string]string {
	m := make(map[string]string, len(p.values))
	for k, v := range p.values {
		m[k] = v
	}
	return m
}

// WithErrorCode returns a bag holding the encoded cancellation error code.
func WithErrorCode(code CancellationErrorCode) Properties {
	p := NewProperties()
	p.Set(CancellationErrorCodeProperty, code.String())
	return p
}

// ErrorCodeFromProperties decodes the cancellation error code stored in p.
// Missing or unknown values decode to NoError.
func ErrorCodeFromProperties(p Properties) CancellationErrorCode {
	name, ok := p.Get(CancellationErrorCodeProperty)
	if !ok {
		return NoError
	}
	code, _ := ParseCancellationErrorCode(name)
	return code
}
