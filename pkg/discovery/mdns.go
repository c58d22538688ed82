package discovery

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/enbility/zeroconf/v3"
)

// BrowserConfig configures browser behavior.
type BrowserConfig struct {
	// Interface specifies which network interface to browse on.
	// Empty string means all interfaces.
	Interface string
}

// Browser browses for MotionMount services using mDNS.
type Browser struct {
	config BrowserConfig
}

// NewBrowser creates a new mDNS browser.
func NewBrowser(config BrowserConfig) *Browser {
	return &Browser{config: config}
}

// Browse searches for MotionMount devices until ctx is cancelled. Services
// are aggregated by instance name - addresses from multiple interfaces are
// combined into a single emitted entry.
func (b *Browser) Browse(ctx context.Context) (<-chan *Service, error) {
	out := make(chan *Service)

	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)
	opts := b.browserOptions()

	go func() {
		defer close(out)

		seen := make(map[string]*Service)

		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				svc := entryToService(entry)
				if svc == nil {
					continue
				}

				existing, found := seen[svc.InstanceName]
				if found {
					existing.Addresses = mergeAddresses(existing.Addresses, svc.Addresses)
					continue
				}

				seen[svc.InstanceName] = svc
				select {
				case out <- svc:
				case <-ctx.Done():
					return
				}

			case entry, ok := <-removed:
				if !ok {
					continue
				}
				// A mount that disappears may come back with fresh
				// addresses; forget it so it is re-emitted.
				delete(seen, entry.Instance)

			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		_ = zeroconf.Browse(ctx, ServiceType, Domain, entries, removed, opts...)
	}()

	return out, nil
}

// FindFirst browses until the first device is found or the timeout expires.
func (b *Browser) FindFirst(ctx context.Context, timeout time.Duration) (*Service, error) {
	if timeout == 0 {
		timeout = DefaultBrowseTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	found, err := b.Browse(ctx)
	if err != nil {
		return nil, err
	}

	select {
	case svc, ok := <-found:
		if !ok {
			return nil, fmt.Errorf("no MotionMount found within %v", timeout)
		}
		return svc, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("no MotionMount found within %v", timeout)
	}
}

// browserOptions builds zeroconf client options from the config.
func (b *Browser) browserOptions() []zeroconf.ClientOption {
	if b.config.Interface == "" {
		return nil
	}
	iface, err := net.InterfaceByName(b.config.Interface)
	if err != nil {
		return nil
	}
	return []zeroconf.ClientOption{zeroconf.SelectIfaces([]net.Interface{*iface})}
}

// entryToService converts a zeroconf entry into a Service.
func entryToService(entry *zeroconf.ServiceEntry) *Service {
	if entry == nil {
		return nil
	}

	// IPv4 first: the device control endpoint is IPv4-reachable and
	// callers take the first address.
	addresses := make([]string, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	for _, ip := range entry.AddrIPv4 {
		addresses = append(addresses, ip.String())
	}
	for _, ip := range entry.AddrIPv6 {
		addresses = append(addresses, ip.String())
	}

	return &Service{
		InstanceName: entry.Instance,
		Host:         entry.HostName,
		Port:         uint16(entry.Port),
		Addresses:    addresses,
	}
}

// mergeAddresses appends addresses from b that are not already in a.
func mergeAddresses(a, b []string) []string {
	present := make(map[string]struct{}, len(a))
	for _, addr := range a {
		present[addr] = struct{}{}
	}
	for _, addr := range b {
		if _, ok := present[addr]; !ok {
			a = append(a, addr)
		}
	}
	return a
}
