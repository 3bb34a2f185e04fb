// Package interfaces implements the virtual IP object type (interfaces/vip_settings).
package interfaces
