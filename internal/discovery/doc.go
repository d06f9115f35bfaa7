// Package discovery finds devices in setup mode over mDNS.
//
// A device announces its setup API as an "_http._tcp" service whose TXT
// record carries an "apsetup" key. A "configured=true" entry means the device
// has already joined a network and only its name and webhook can change.
//
// # Usage Example
//
//	devices, err := discovery.ScanForDevices(3 * time.Second)
//	if err != nil {
//	    return err
//	}
//	for _, d := range devices {
//	    fmt.Printf("%s at %s\n", d.Instance, d.BaseURL())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Devices must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
