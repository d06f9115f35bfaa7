// Package config keeps the console's device registry.
//
// The registry is a YAML file recording each device configured from this
// machine (keyed by device name: webhook, network, last address, last seen)
// and console preferences such as the discovery timeout and the post-save
// delay.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/apsetup/config.yaml or $HOME/.config/apsetup/config.yaml
//   - macOS: $HOME/.config/apsetup/config.yaml
//   - Windows: %LOCALAPPDATA%\apsetup\config.yaml
//
// # Security
//
// Network passkeys are never written to the registry.
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    return err
//	}
//	registry.RecordSave("setup", "kitchen", "http://hooks.local/k", "home", "http://192.168.4.1")
//	if err := registry.Save(); err != nil {
//	    return err
//	}
package config
