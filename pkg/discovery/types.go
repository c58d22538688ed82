package discovery

import (
	"fmt"
	"time"
)

// mDNS service parameters for MotionMount devices.
const (
	// ServiceType is the mDNS service type devices advertise.
	ServiceType = "_tvm._tcp"

	// Domain is the mDNS domain.
	Domain = "local."

	// DefaultBrowseTimeout bounds FindFirst when the caller's context
	// carries no deadline.
	DefaultBrowseTimeout = 10 * time.Second
)

// Service describes a discovered MotionMount.
type Service struct {
	// InstanceName is the advertised instance, typically "MM<serial>".
	InstanceName string

	// Host is the device hostname (e.g. "MMF8A55F.local.").
	Host string

	// Port is the control port, usually 23.
	Port uint16

	// Addresses holds the resolved IP addresses, IPv4 first.
	Addresses []string
}

// Addr returns the first resolved "address:port" pair, suitable for the
// transport client. Falls back to the hostname when no address resolved.
func (s *Service) Addr() string {
	if len(s.Addresses) > 0 {
		return fmt.Sprintf("%s:%d", s.Addresses[0], s.Port)
	}
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
