// Package urls builds the addresses a device answers on once it has joined
// the user's network.
//
// A configured device advertises itself over mDNS as <deviceName>.local, so
// both the console's success notification and the post-save redirect are
// derived from the device name alone:
//
//	urls.DeviceLink("kitchen")     // "http://kitchen.local"
//	urls.LocalHostname("kitchen")  // "kitchen.local"
package urls
