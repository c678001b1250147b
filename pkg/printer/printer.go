// Package printer provides drivers for ESC/POS thermal receipt printers.
package printer

import (
	"fmt"
	"net"
	"os"
	"time"
)

// Printer sends raw ESC/POS jobs to receipt hardware. Every driver opens
// the underlying device per job, so a session can print for hours without
// holding a handle on a printer someone unplugged.
type Printer interface {
	Print(data []byte) error
	Close() error
	IsConnected() bool
}

// NewPrinterFromConfig builds the driver named by printerType: "usb" writes
// to a device file, "network" dials a raw-socket printer, "none" (or empty)
// swallows jobs for terminals without receipt hardware.
func NewPrinterFromConfig(printerType, devicePath, address string) (Printer, error) {
	switch printerType {
	case "usb":
		if devicePath == "" {
			return nil, fmt.Errorf("printer: usb printer requires a device path")
		}
		return &usbPrinter{path: devicePath}, nil
	case "network":
		if address == "" {
			return nil, fmt.Errorf("printer: network printer requires an address")
		}
		return &networkPrinter{address: address}, nil
	case "none", "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q", printerType)
	}
}

// usbPrinter writes jobs to a USB device file such as /dev/usb/lp0.
type usbPrinter struct {
	path string
}

func (p *usbPrinter) Print(data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) Close() error {
	return nil
}

func (p *usbPrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

const (
	networkDialTimeout  = 5 * time.Second
	networkWriteTimeout = 10 * time.Second
	networkCheckTimeout = 2 * time.Second
)

// networkPrinter dials a raw-socket printer, e.g. 192.168.1.100:9100.
type networkPrinter struct {
	address string
}

func (p *networkPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, networkDialTimeout)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(networkWriteTimeout))

	if _, err = conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Close() error {
	return nil
}

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, networkCheckTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

type nullPrinter struct{}

// NewNullPrinter returns a printer that discards every job. Used when no
// receipt hardware is configured; the front-end still gets the HTML receipt.
func NewNullPrinter() Printer {
	return &nullPrinter{}
}

func (p *nullPrinter) Print(data []byte) error {
	return nil
}

func (p *nullPrinter) Close() error {
	return nil
}

func (p *nullPrinter) IsConnected() bool {
	return false
}
