//go:build linux

package device

import (
	"math"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"

	"github.com/pensteer/pensteer/pkg/config"
	"github.com/pensteer/pensteer/pkg/linuxinput"
)

func init() {
	register(config.DeviceUInput, newUInput)
}

const uinputPath = "/dev/uinput"

// ffEffectsMax is the number of simultaneous effect slots advertised to the
// kernel.  We only ever track one, but games expect a few slots to exist.
const ffEffectsMax = 10

// uinputDevice presents the wheel to the kernel through /dev/uinput.
type uinputDevice struct {
	fd         int
	resolution float32

	pendingWheel int32
	wheelStaged  bool
	pendingHorn  bool
	hornStaged   bool

	tracker effectTracker
}

// Buttons advertised purely so third-party detection heuristics see a
// plausible controller.  Only BtnThumbR (the horn) is ever pressed.
var cosmeticButtons = []uint16{
	linuxinput.BtnThumbL,
	linuxinput.BtnNorth,
	linuxinput.BtnEast,
	linuxinput.BtnSouth,
	linuxinput.BtnWest,
}

// Effect kinds advertised but not implemented, again for detection.
var cosmeticEffects = []uint16{
	linuxinput.FFAutocenter,
	linuxinput.FFPeriodic,
	linuxinput.FFRumble,
	linuxinput.FFDamper,
	linuxinput.FFInertia,
	linuxinput.FFRamp,
	linuxinput.FFSine,
	linuxinput.FFSquare,
	linuxinput.FFTriangle,
	linuxinput.FFSawUp,
	linuxinput.FFSawDown,
}

func newUInput(cfg *config.Config) (Interface, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	fd, err := unix.Open(uinputPath, unix.O_RDWR|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", uinputPath)
	}
	d := &uinputDevice{fd: fd, resolution: float32(cfg.DeviceResolution)}

	if err := d.setup(cfg); err != nil {
		unix.Close(fd)
		return nil, err
	}

	log.Info().
		Str("name", cfg.DeviceName).
		Uint32("resolution", cfg.DeviceResolution).
		Msg("Created uinput device")
	return d, nil
}

func (d *uinputDevice) setup(cfg *config.Config) error {
	// Horn button plus cosmetic buttons.
	if err := linuxinput.IoctlInt(d.fd, linuxinput.UISetEvBit, uintptr(linuxinput.EvKey)); err != nil {
		return errors.Wrap(err, "enabling key events")
	}
	if err := linuxinput.IoctlInt(d.fd, linuxinput.UISetKeyBit, uintptr(linuxinput.BtnThumbR)); err != nil {
		return errors.Wrap(err, "registering horn button")
	}
	for _, btn := range cosmeticButtons {
		if err := linuxinput.IoctlInt(d.fd, linuxinput.UISetKeyBit, uintptr(btn)); err != nil {
			return errors.Wrapf(err, "registering button %#x", btn)
		}
	}

	// Steering wheel absolute axis.
	if err := linuxinput.IoctlInt(d.fd, linuxinput.UISetEvBit, uintptr(linuxinput.EvAbs)); err != nil {
		return errors.Wrap(err, "enabling absolute events")
	}
	if err := linuxinput.IoctlInt(d.fd, linuxinput.UISetAbsBit, uintptr(linuxinput.AbsX)); err != nil {
		return errors.Wrap(err, "registering wheel axis")
	}

	// Force feedback: constant force works, the rest is advertisement.
	if err := linuxinput.IoctlInt(d.fd, linuxinput.UISetEvBit, uintptr(linuxinput.EvFF)); err != nil {
		return errors.Wrap(err, "enabling force feedback")
	}
	if err := linuxinput.IoctlInt(d.fd, linuxinput.UISetFFBit, uintptr(linuxinput.FFConstant)); err != nil {
		return errors.Wrap(err, "registering constant-force effect")
	}
	for _, eff := range cosmeticEffects {
		if err := linuxinput.IoctlInt(d.fd, linuxinput.UISetFFBit, uintptr(eff)); err != nil {
			return errors.Wrapf(err, "registering effect %#x", eff)
		}
	}

	setup := linuxinput.UinputSetup{
		ID: linuxinput.InputID{
			Bustype: linuxinput.BusUSB,
			Vendor:  cfg.DeviceVendor,
			Product: cfg.DeviceProduct,
			Version: cfg.DeviceVersion,
		},
		FFEffectsMax: ffEffectsMax,
	}
	copy(setup.Name[:], cfg.DeviceName)
	if err := linuxinput.Ioctl(d.fd, linuxinput.UIDevSetup, unsafe.Pointer(&setup)); err != nil {
		return errors.Wrap(err, "device setup")
	}

	res := int32(cfg.DeviceResolution)
	abs := linuxinput.UinputAbsSetup{
		Code: linuxinput.AbsX,
		Info: linuxinput.AbsInfo{
			Minimum:    -res,
			Maximum:    res,
			Resolution: res,
		},
	}
	if err := linuxinput.Ioctl(d.fd, linuxinput.UIAbsSetup, unsafe.Pointer(&abs)); err != nil {
		return errors.Wrap(err, "axis setup")
	}

	if err := linuxinput.Ioctl(d.fd, linuxinput.UIDevCreate, nil); err != nil {
		return errors.Wrap(err, "creating device")
	}
	return nil
}

func (d *uinputDevice) SetWheel(angle float32) {
	d.pendingWheel = int32(math.RoundToEven(float64(angle) * float64(d.resolution)))
	d.wheelStaged = true
}

func (d *uinputDevice) SetHorn(on bool) {
	d.pendingHorn = on
	d.hornStaged = true
}

// batch encodes the staged values as one event report: at most one abs
// event, at most one key event, and a single SYN_REPORT when anything is
// staged.  Nothing staged means nil.  The staged flags are untouched so a
// failed write leaves the values pending for the next tick.
func (d *uinputDevice) batch() []byte {
	var buf []byte

	if d.wheelStaged {
		buf = linuxinput.Event{
			Type:  linuxinput.EvAbs,
			Code:  linuxinput.AbsX,
			Value: d.pendingWheel,
		}.AppendBinary(buf)
	}
	if d.hornStaged {
		var v int32
		if d.pendingHorn {
			v = 1
		}
		buf = linuxinput.Event{
			Type:  linuxinput.EvKey,
			Code:  linuxinput.BtnThumbR,
			Value: v,
		}.AppendBinary(buf)
	}
	if len(buf) == 0 {
		return nil
	}
	return linuxinput.Event{
		Type: linuxinput.EvSyn,
		Code: linuxinput.SynReport,
	}.AppendBinary(buf)
}

// flushed drops the staged values once they have reached the kernel.
func (d *uinputDevice) flushed() {
	d.wheelStaged = false
	d.hornStaged = false
}

func (d *uinputDevice) Apply() error {
	buf := d.batch()
	if buf == nil {
		return nil
	}
	if _, err := unix.Write(d.fd, buf); err != nil {
		return errors.Wrap(err, "writing device events")
	}
	d.flushed()
	return nil
}

func (d *uinputDevice) HandleEvents() {
	var raw [linuxinput.EventSize]byte
	for {
		n, err := unix.Read(d.fd, raw[:])
		if err != nil || n < linuxinput.EventSize {
			// EAGAIN means the queue is drained.
			if err != nil && err != unix.EAGAIN {
				log.Error().Err(err).Msg("Reading uinput events")
			}
			return
		}

		var ev linuxinput.Event
		if err := ev.UnmarshalBinary(raw[:n]); err != nil {
			continue
		}

		switch ev.Type {
		case linuxinput.EvUinput:
			switch ev.Code {
			case linuxinput.UIFFUpload:
				d.handleUpload(uint32(ev.Value))
			case linuxinput.UIFFErase:
				d.handleErase(uint32(ev.Value))
			default:
				log.Debug().Uint16("code", ev.Code).Msg("Unexpected uinput request")
			}
		case linuxinput.EvFF:
			d.tracker.setPlaying(ev.Code, ev.Value)
		default:
			log.Debug().Uint16("type", ev.Type).Uint16("code", ev.Code).Msg("Ignoring device event")
		}
	}
}

// handleUpload runs the begin/end upload transaction for one request.  The
// effect payload is only decoded once the type tag says constant force.
func (d *uinputDevice) handleUpload(requestID uint32) {
	var up linuxinput.FFUpload
	up.RequestID = requestID
	if err := linuxinput.Ioctl(d.fd, linuxinput.UIBeginFFUpload, unsafe.Pointer(&up)); err != nil {
		log.Error().Err(err).Uint32("request", requestID).Msg("Beginning FF upload")
		return
	}

	if d.tracker.upload(&up.Effect) {
		log.Debug().
			Int16("effect", up.Effect.ID).
			Int16("level", d.tracker.force).
			Msg("Constant-force effect uploaded")
	} else {
		log.Debug().Uint16("type", up.Effect.Type).Msg("Ignoring unsupported effect upload")
	}

	up.Retval = 0
	if err := linuxinput.Ioctl(d.fd, linuxinput.UIEndFFUpload, unsafe.Pointer(&up)); err != nil {
		log.Error().Err(err).Uint32("request", requestID).Msg("Ending FF upload")
	}
}

func (d *uinputDevice) handleErase(requestID uint32) {
	var er linuxinput.FFErase
	er.RequestID = requestID
	if err := linuxinput.Ioctl(d.fd, linuxinput.UIBeginFFErase, unsafe.Pointer(&er)); err != nil {
		log.Error().Err(err).Uint32("request", requestID).Msg("Beginning FF erase")
		return
	}

	d.tracker.erase(er.EffectID)

	er.Retval = 0
	if err := linuxinput.Ioctl(d.fd, linuxinput.UIEndFFErase, unsafe.Pointer(&er)); err != nil {
		log.Error().Err(err).Uint32("request", requestID).Msg("Ending FF erase")
	}
}

func (d *uinputDevice) Feedback() (float32, bool) {
	return d.tracker.feedback(), true
}

// Close destroys the kernel device.  This must run before any replacement
// device is constructed so two virtual wheels never coexist.
func (d *uinputDevice) Close() error {
	if err := linuxinput.Ioctl(d.fd, linuxinput.UIDevDestroy, nil); err != nil {
		log.Error().Err(err).Msg("Destroying uinput device")
	}
	return unix.Close(d.fd)
}
