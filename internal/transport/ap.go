package transport

import (
	"errors"
	"fmt"
	"net"

	"go.uber.org/zap"
)

// APConfig describes the Wi-Fi access point the device advertises.
type APConfig struct {
	SSID     string
	Password string
	IP       net.IP
	Gateway  net.IP
	Netmask  net.IPMask
}

// DefaultAPConfig matches the firmware's hardcoded address block.
func DefaultAPConfig() APConfig {
	return APConfig{
		SSID:     "Kluchnik",
		Password: "kluchnik-trng",
		IP:       net.IPv4(192, 168, 1, 4),
		Gateway:  net.IPv4(192, 168, 1, 1),
		Netmask:  net.IPv4Mask(255, 255, 255, 0),
	}
}

var ErrBadAPConfig = errors.New("invalid access point configuration")

// Validate checks that cfg could be brought up on real radio hardware.
func (c APConfig) Validate() error {
	if c.SSID == "" {
		return fmt.Errorf("%w: empty SSID", ErrBadAPConfig)
	}
	// WPA2 requires a passphrase of at least 8 characters.
	if len(c.Password) < 8 {
		return fmt.Errorf("%w: passphrase shorter than 8 characters", ErrBadAPConfig)
	}
	if c.IP == nil || c.Gateway == nil || c.Netmask == nil {
		return fmt.Errorf("%w: missing address block", ErrBadAPConfig)
	}
	if !c.IP.Mask(c.Netmask).Equal(c.Gateway.Mask(c.Netmask)) {
		return fmt.Errorf("%w: ip and gateway are in different subnets", ErrBadAPConfig)
	}
	return nil
}

// StartAccessPoint validates cfg and brings the access point up. Host builds
// carry no radio, so after validation the bring-up is recorded in the log and
// the caller binds the host network stack instead.
func StartAccessPoint(cfg APConfig, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log.Info("access point up",
		zap.String("ssid", cfg.SSID),
		zap.String("ip", cfg.IP.String()),
		zap.String("gateway", cfg.Gateway.String()))
	return nil
}
