// Package gateway is the HTTP client for a device in setup mode.
//
// A device in setup mode serves three JSON endpoints:
//
//	GET  /browse.json   wireless networks the device can see
//	GET  /config.json   the device's current configuration
//	POST /save          new configuration; 422 with a plain-text reason on rejection
//
// # Usage Example
//
//	client := gateway.NewClient("192.168.4.1", 80)
//
//	cfg, err := client.FetchConfig(ctx)
//	if err != nil {
//	    fmt.Println(gateway.GetShortErrorMessage(err))
//	    return err
//	}
//
//	if !cfg.APConfigured {
//	    aps, err := client.Browse(ctx)
//	    ...
//	}
//
//	err = client.Save(ctx, gateway.NewSaveRequest("kitchen", "http://hooks.local/k").
//	    WithNetwork("home", "secret"))
//	if gateway.IsRejectedError(err) {
//	    // the device refused the values; err carries its reason
//	}
//
// # Error Handling
//
// Every failure is a *DeviceError. Transport failures are classified as
// timeout, connection refused, DNS or unreachable. A 422 from /save is
// ErrTypeRejected and carries the response body as its message; any other
// non-200 status is ErrTypeHTTP. Requests are not retried.
//
// # Thread Safety
//
// A Client may be used from several goroutines. Rebase may be called while
// requests are in flight; requests already started keep their original URL.
package gateway
