//go:build !linux

package source

import "github.com/pkg/errors"

// Tablets lists pen-capable devices; only implemented for evdev platforms.
func Tablets() ([]Tablet, error) {
	return nil, errors.New("source: tablet enumeration requires linux")
}
