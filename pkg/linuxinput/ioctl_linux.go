//go:build linux

package linuxinput

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// Linux _IOC request encoding.
const (
	iocNRShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30

	iocWrite uint32 = 1
	iocRead  uint32 = 2
)

func ioc(dir, typ, nr, size uint32) uintptr {
	return uintptr(dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNRShift | size<<iocSizeShift)
}

func iow(typ, nr, size uint32) uintptr  { return ioc(iocWrite, typ, nr, size) }
func ior(typ, nr, size uint32) uintptr  { return ioc(iocRead, typ, nr, size) }
func iowr(typ, nr, size uint32) uintptr { return ioc(iocRead|iocWrite, typ, nr, size) }

// AbsInfo mirrors struct input_absinfo.
type AbsInfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

// InputID mirrors struct input_id.
type InputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// BusUSB is the bus type reported for the virtual device.
const BusUSB uint16 = 0x03

// UinputSetup mirrors struct uinput_setup.
type UinputSetup struct {
	ID           InputID
	Name         [UinputMaxNameSize]byte
	FFEffectsMax uint32
}

// UinputAbsSetup mirrors struct uinput_abs_setup.
type UinputAbsSetup struct {
	Code uint16
	_    [2]byte
	Info AbsInfo
}

// uinput ioctl requests ('U').
var (
	UIDevCreate  = ioc(0, 'U', 1, 0)
	UIDevDestroy = ioc(0, 'U', 2, 0)
	UIDevSetup   = iow('U', 3, uint32(unsafe.Sizeof(UinputSetup{})))
	UIAbsSetup   = iow('U', 4, uint32(unsafe.Sizeof(UinputAbsSetup{})))

	UISetEvBit  = iow('U', 100, 4)
	UISetKeyBit = iow('U', 101, 4)
	UISetAbsBit = iow('U', 103, 4)
	UISetFFBit  = iow('U', 107, 4)

	UIBeginFFUpload = iowr('U', 200, uint32(unsafe.Sizeof(FFUpload{})))
	UIEndFFUpload   = iow('U', 201, uint32(unsafe.Sizeof(FFUpload{})))
	UIBeginFFErase  = iowr('U', 202, uint32(unsafe.Sizeof(FFErase{})))
	UIEndFFErase    = iow('U', 203, uint32(unsafe.Sizeof(FFErase{})))
)

// evdev ioctl requests ('E').
func EviocgName(size uint32) uintptr { return ior('E', 0x06, size) }
func EviocgBit(ev, size uint32) uintptr {
	return ior('E', 0x20+ev, size)
}
func EviocgAbs(axis uint32) uintptr {
	return ior('E', 0x40+axis, uint32(unsafe.Sizeof(AbsInfo{})))
}

// Ioctl issues an ioctl with an untyped argument pointer.  arg may be nil
// for requests that take no payload.
func Ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// IoctlInt issues an ioctl whose argument is a plain integer value, as used
// by the UI_SET_*BIT family.
func IoctlInt(fd int, req uintptr, arg uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, arg)
	if errno != 0 {
		return errno
	}
	return nil
}
