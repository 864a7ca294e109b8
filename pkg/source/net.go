package source

import (
	"net"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/pensteer/pensteer/pkg/config"
	"github.com/pensteer/pensteer/pkg/pen"
)

func init() {
	register(config.SourceNet, newNet)
}

// netSource listens for 13-byte pen datagrams on a UDP socket.
type netSource struct {
	conn *net.UDPConn
	buf  [64]byte
}

func newNet(cfg *config.Config) (Interface, error) {
	addr, err := net.ResolveUDPAddr("udp", cfg.NetListenAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %q", cfg.NetListenAddr)
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "binding %q", cfg.NetListenAddr)
	}
	log.Info().Stringer("addr", conn.LocalAddr()).Msg("Listening for pen datagrams")
	return &netSource{conn: conn}, nil
}

// Poll drains every queued datagram and returns the newest valid sample;
// datagrams that are not exactly 13 bytes are discarded so the previous
// sample stays in effect.
func (s *netSource) Poll() (pen.Sample, bool) {
	var sample pen.Sample
	var filled bool

	// An already-expired deadline turns the reads non-blocking.
	if err := s.conn.SetReadDeadline(time.Now()); err != nil {
		return pen.Sample{}, false
	}
	for {
		n, _, err := s.conn.ReadFromUDP(s.buf[:])
		if err != nil {
			if !errIsTimeout(err) {
				log.Debug().Err(err).Msg("Pen socket read failed")
			}
			return sample, filled
		}
		if sample.UnmarshalBinary(s.buf[:n]) != nil {
			continue
		}
		filled = true
	}
}

func (s *netSource) Close() error {
	return s.conn.Close()
}

func errIsTimeout(err error) bool {
	ne, ok := err.(net.Error)
	return ok && ne.Timeout()
}
