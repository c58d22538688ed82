// Package discovery finds MotionMount devices on the local network.
//
// Devices advertise the "_tvm._tcp" service over mDNS. Browsing resolves
// each advertisement to an instance name, host and port; the address/port
// pair feeds straight into the mount session's Connect.
package discovery
