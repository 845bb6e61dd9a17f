package bind_group_provider

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	mu     *sync.Mutex
	label  string
	device *wgpu.Device

	// layout is owned by the provider and released with it.
	layout *wgpu.BindGroupLayout

	// groups caches every bind group created against layout, keyed by the identity of the
	// resources it binds.
	groups map[string]*wgpu.BindGroup

	// limit bounds len(groups). Reaching it flushes the cache.
	limit int
}

// BindGroupProvider creates bind groups against a single layout and caches them by the
// resources they bind, so a material's texture set or a shadow map is only turned into a
// bind group once.
//
// Usage pattern:
//  1. The backend creates a layout for one bind group slot of a program
//  2. The backend wraps it with NewBindGroupProvider
//  3. At draw time the backend asks BindGroup for the key of the resources to bind; the
//     entries callback only runs on a cache miss
type BindGroupProvider interface {
	// Release releases the layout and every cached bind group.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroupLayout returns the layout every bind group of this provider is created against.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the layout
	BindGroupLayout() *wgpu.BindGroupLayout

	// BindGroup returns the cached bind group for key, creating it from entries on a miss.
	//
	// Parameters:
	//   - key: identity of the bound resources, see Key
	//   - entries: builds the bind group entries, called only on a miss
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group
	//   - error: error if the bind group could not be created
	BindGroup(key string, entries func() []wgpu.BindGroupEntry) (*wgpu.BindGroup, error)

	// Len returns the number of cached bind groups.
	//
	// Returns:
	//   - int: the cache size
	Len() int
}

// Compile-time check that bindGroupProvider implements BindGroupProvider
var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new BindGroupProvider over layout.
//
// Parameters:
//   - device: the device bind groups are created on
//   - layout: the layout, owned by the provider from now on
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BindGroupProvider: a new instance of BindGroupProvider configured with the provided options
func NewBindGroupProvider(device *wgpu.Device, layout *wgpu.BindGroupLayout, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		mu:     &sync.Mutex{},
		device: device,
		layout: layout,
		groups: make(map[string]*wgpu.BindGroup),
		limit:  DefaultCacheLimit,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// DefaultCacheLimit is the number of bind groups a provider keeps before flushing.
const DefaultCacheLimit = 1024

// Key builds a cache key from the identities of the bound resources.
//
// Parameters:
//   - resources: pointers to the views, samplers or buffers being bound
//
// Returns:
//   - string: the key
func Key(resources ...any) string {
	var sb strings.Builder
	for i, r := range resources {
		if i > 0 {
			sb.WriteByte('|')
		}
		fmt.Fprintf(&sb, "%p", r)
	}
	return sb.String()
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.layout
}

func (p *bindGroupProvider) BindGroup(key string, entries func() []wgpu.BindGroupEntry) (*wgpu.BindGroup, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if bg, ok := p.groups[key]; ok {
		return bg, nil
	}
	if len(p.groups) >= p.limit {
		p.flush()
	}

	bg, err := p.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   p.label + " Bind Group",
		Layout:  p.layout,
		Entries: entries(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s bind group: %w", p.label, err)
	}
	p.groups[key] = bg
	return bg, nil
}

func (p *bindGroupProvider) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.groups)
}

func (p *bindGroupProvider) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.flush()
	if p.layout != nil {
		p.layout.Release()
		p.layout = nil
	}
}

func (p *bindGroupProvider) flush() {
	for key, bg := range p.groups {
		bg.Release()
		delete(p.groups, key)
	}
}
