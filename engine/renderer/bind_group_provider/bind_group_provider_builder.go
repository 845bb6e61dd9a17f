package bind_group_provider

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithLabel sets the debug label of the provider and the bind groups it creates.
//
// Parameters:
//   - label: the debug label
//
// Returns:
//   - BindGroupProviderOption: a function that sets the label for this provider
func WithLabel(label string) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.label = label
	}
}

// WithCacheLimit bounds how many bind groups are cached before the cache is flushed.
//
// Parameters:
//   - limit: the maximum number of cached bind groups, values below 1 are ignored
//
// Returns:
//   - BindGroupProviderOption: a function that sets the cache limit for this provider
func WithCacheLimit(limit int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		if limit > 0 {
			p.limit = limit
		}
	}
}
