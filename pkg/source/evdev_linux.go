//go:build linux

package source

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"

	"github.com/pensteer/pensteer/pkg/config"
	"github.com/pensteer/pensteer/pkg/linuxinput"
	"github.com/pensteer/pensteer/pkg/pen"
)

func init() {
	register(config.SourceEvdev, newEvdev)
}

const inputDir = "/dev/input"

var errNoTablet = errors.New("source: no pen-capable input device found")

// evdevSource reads a pen tablet directly from its event node.
type evdevSource struct {
	fd   int
	path string

	xInfo linuxinput.AbsInfo
	yInfo linuxinput.AbsInfo
	pInfo linuxinput.AbsInfo
	// Width over height of the tablet surface, used to keep the mapping
	// non-distorting.
	aspect float32

	// Raw values accumulated since the last SYN_REPORT.
	rawX        int32
	rawY        int32
	rawPressure int32
	buttons     uint8
}

func newEvdev(cfg *config.Config) (Interface, error) {
	path, err := pickTablet(cfg.PreferredTablet)
	if err != nil {
		return nil, err
	}

	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	s := &evdevSource{fd: fd, path: path}

	if s.xInfo, err = absInfo(fd, linuxinput.AbsX); err != nil {
		unix.Close(fd)
		return nil, errors.Wrap(err, "reading X axis range")
	}
	if s.yInfo, err = absInfo(fd, linuxinput.AbsY); err != nil {
		unix.Close(fd)
		return nil, errors.Wrap(err, "reading Y axis range")
	}
	if s.pInfo, err = absInfo(fd, linuxinput.AbsPressure); err != nil {
		unix.Close(fd)
		return nil, errors.Wrap(err, "reading pressure range")
	}

	width := float32(s.xInfo.Maximum - s.xInfo.Minimum)
	height := float32(s.yInfo.Maximum - s.yInfo.Minimum)
	s.aspect = 1
	if width > 0 && height > 0 {
		s.aspect = width / height
	}

	s.rawX = s.xInfo.Value
	s.rawY = s.yInfo.Value

	log.Info().Str("path", path).Float32("aspect", s.aspect).Msg("Opened tablet")
	return s, nil
}

// Poll drains the event queue and returns the state as of the newest
// complete report.
func (s *evdevSource) Poll() (pen.Sample, bool) {
	var sample pen.Sample
	var filled bool
	var raw [linuxinput.EventSize]byte

	for {
		n, err := unix.Read(s.fd, raw[:])
		if err != nil || n < linuxinput.EventSize {
			if err != nil && err != unix.EAGAIN {
				log.Debug().Err(err).Str("path", s.path).Msg("Tablet read failed")
			}
			return sample, filled
		}

		var ev linuxinput.Event
		if ev.UnmarshalBinary(raw[:n]) != nil {
			continue
		}
		switch ev.Type {
		case linuxinput.EvAbs:
			switch ev.Code {
			case linuxinput.AbsX:
				s.rawX = ev.Value
			case linuxinput.AbsY:
				s.rawY = ev.Value
			case linuxinput.AbsPressure:
				s.rawPressure = ev.Value
			}
		case linuxinput.EvKey:
			switch ev.Code {
			case linuxinput.BtnStylus:
				s.setButton(pen.ButtonLower, ev.Value != 0)
			case linuxinput.BtnStylus2:
				s.setButton(pen.ButtonUpper, ev.Value != 0)
			}
		case linuxinput.EvSyn:
			if ev.Code == linuxinput.SynReport {
				sample = s.sample()
				filled = true
			}
		}
	}
}

func (s *evdevSource) setButton(bit uint8, on bool) {
	if on {
		s.buttons |= bit
	} else {
		s.buttons &^= bit
	}
}

// sample converts the accumulated raw state into canonical wheel space.
// The aspect-ratio correction compresses exactly one axis so a circle drawn
// on the tablet stays a circle on the wheel.
func (s *evdevSource) sample() pen.Sample {
	x := normalizeAxis(s.rawX, s.xInfo)
	y := normalizeAxis(s.rawY, s.yInfo)
	if s.aspect > 1 {
		y /= s.aspect
	} else if s.aspect < 1 {
		x *= s.aspect
	}

	pressure := s.rawPressure - s.pInfo.Minimum
	if pressure < 0 {
		pressure = 0
	}
	return pen.Sample{
		X:        x,
		Y:        y,
		Pressure: uint32(pressure),
		Buttons:  s.buttons,
	}
}

func normalizeAxis(v int32, info linuxinput.AbsInfo) float32 {
	span := info.Maximum - info.Minimum
	if span == 0 {
		return 0
	}
	return float32(v-info.Minimum)/float32(span)*2 - 1
}

func (s *evdevSource) Close() error {
	return unix.Close(s.fd)
}

func absInfo(fd int, axis uint16) (linuxinput.AbsInfo, error) {
	var info linuxinput.AbsInfo
	err := linuxinput.Ioctl(fd, linuxinput.EviocgAbs(uint32(axis)), unsafe.Pointer(&info))
	return info, err
}

// hasPenAxes checks the device's absolute-axis bitmap for X, Y and
// pressure.
func hasPenAxes(fd int) bool {
	var bits [8]byte
	err := linuxinput.Ioctl(fd, linuxinput.EviocgBit(uint32(linuxinput.EvAbs), uint32(len(bits))), unsafe.Pointer(&bits[0]))
	if err != nil {
		return false
	}
	for _, code := range []uint16{linuxinput.AbsX, linuxinput.AbsY, linuxinput.AbsPressure} {
		if bits[code/8]&(1<<(code%8)) == 0 {
			return false
		}
	}
	return true
}

func deviceName(fd int) string {
	var name [256]byte
	err := linuxinput.Ioctl(fd, linuxinput.EviocgName(uint32(len(name))), unsafe.Pointer(&name[0]))
	if err != nil {
		return ""
	}
	n := bytes.IndexByte(name[:], 0)
	if n < 0 {
		n = len(name)
	}
	return string(name[:n])
}

// Tablets lists the pen-capable devices under /dev/input.
func Tablets() ([]Tablet, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, errors.Wrapf(err, "scanning %s", inputDir)
	}

	var tablets []Tablet
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), "event") {
			continue
		}
		path := filepath.Join(inputDir, entry.Name())
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
		if err != nil {
			continue
		}
		if hasPenAxes(fd) {
			tablets = append(tablets, Tablet{Path: path, Name: deviceName(fd)})
		}
		unix.Close(fd)
	}
	sort.Slice(tablets, func(i, j int) bool { return tablets[i].Path < tablets[j].Path })
	return tablets, nil
}

// pickTablet returns the event node to open: the one whose name contains
// preferred if given, otherwise the first pen-capable node.
func pickTablet(preferred string) (string, error) {
	tablets, err := Tablets()
	if err != nil {
		return "", err
	}
	if len(tablets) == 0 {
		return "", errNoTablet
	}
	if preferred == "" {
		return tablets[0].Path, nil
	}
	for _, t := range tablets {
		if strings.Contains(t.Name, preferred) {
			return t.Path, nil
		}
	}
	return "", errors.Errorf("source: no tablet matching %q (have %d tablets)", preferred, len(tablets))
}
