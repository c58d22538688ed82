package discovery

import (
	"net"
	"testing"

	"github.com/enbility/zeroconf/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryToService(t *testing.T) {
	entry := &zeroconf.ServiceEntry{
		ServiceRecord: zeroconf.ServiceRecord{
			Instance: "TVM 7675",
			Service:  ServiceType,
			Domain:   Domain,
		},
	}
	entry.HostName = "tvm-7675.local."
	entry.Port = 23
	entry.AddrIPv4 = []net.IP{net.ParseIP("192.168.1.34")}
	entry.AddrIPv6 = []net.IP{net.ParseIP("fe80::1")}

	svc := entryToService(entry)
	require.NotNil(t, svc)

	assert.Equal(t, "TVM 7675", svc.InstanceName)
	assert.Equal(t, "tvm-7675.local.", svc.Host)
	assert.Equal(t, uint16(23), svc.Port)
	// IPv4 addresses come first.
	assert.Equal(t, []string{"192.168.1.34", "fe80::1"}, svc.Addresses)
}

func TestEntryToServiceNil(t *testing.T) {
	assert.Nil(t, entryToService(nil))
}

func TestServiceAddr(t *testing.T) {
	svc := &Service{
		Host:      "tvm-7675.local.",
		Port:      23,
		Addresses: []string{"192.168.1.34", "fe80::1"},
	}
	assert.Equal(t, "192.168.1.34:23", svc.Addr())

	// Falls back to the hostname when no address was resolved.
	svc.Addresses = nil
	assert.Equal(t, "tvm-7675.local.:23", svc.Addr())
}

func TestMergeAddresses(t *testing.T) {
	merged := mergeAddresses(
		[]string{"192.168.1.34"},
		[]string{"192.168.1.34", "10.0.0.7"},
	)
	assert.Equal(t, []string{"192.168.1.34", "10.0.0.7"}, merged)
}

func TestBrowserOptionsUnknownInterface(t *testing.T) {
	b := NewBrowser(BrowserConfig{Interface: "no-such-interface"})
	assert.Nil(t, b.browserOptions())
}
