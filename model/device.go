// SPDX-License-Identifier: EPL-2.0

package model

import (
	"fmt"
	"strings"
)

// Device selects the hardware a model runs on.
type Device int

const (
	DeviceCPU Device = iota
	DeviceCUDA
	DeviceMetal
)

var deviceNames = map[Device]string{
	DeviceCPU:   "cpu",
	DeviceCUDA:  "cuda",
	DeviceMetal: "metal",
}

func (d Device) String() string {
	if name, ok := deviceNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Device(%d)", int(d))
}

// DeviceNames lists the accepted device names in a stable order.
func DeviceNames() []string {
	return []string{"cpu", "cuda", "metal"}
}

// ParseDevice maps "cpu", "cuda" or "metal" to a Device.
func ParseDevice(name string) (Device, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for d, n := range deviceNames {
		if n == name {
			return d, nil
		}
	}
	return DeviceCPU, fmt.Errorf("%w: %q", ErrUnsupportedDevice, name)
}
