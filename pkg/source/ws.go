package source

import (
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/pensteer/pensteer/pkg/config"
	"github.com/pensteer/pensteer/pkg/pen"
)

func init() {
	register(config.SourceWS, newWS)
}

// wsSource receives pen samples from a tablet bridge over a websocket.
// Binary frames carry the same 13-byte format as the UDP transport.  A
// reader goroutine keeps only the newest sample; Poll never blocks.
type wsSource struct {
	conn    *websocket.Conn
	samples chan pen.Sample
}

func newWS(cfg *config.Config) (Interface, error) {
	conn, _, err := websocket.DefaultDialer.Dial(cfg.BridgeURL, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "dialing bridge %q", cfg.BridgeURL)
	}
	log.Info().Str("url", cfg.BridgeURL).Msg("Connected to pen bridge")

	s := &wsSource{
		conn:    conn,
		samples: make(chan pen.Sample, 1),
	}
	go s.readLoop()
	return s, nil
}

func (s *wsSource) readLoop() {
	for {
		kind, data, err := s.conn.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Msg("Pen bridge connection closed")
			return
		}
		if kind != websocket.BinaryMessage {
			continue
		}
		var sample pen.Sample
		if sample.UnmarshalBinary(data) != nil {
			continue
		}
		// Latest value wins; a stale unread sample is replaced.
		select {
		case s.samples <- sample:
		default:
			select {
			case <-s.samples:
			default:
			}
			s.samples <- sample
		}
	}
}

func (s *wsSource) Poll() (pen.Sample, bool) {
	select {
	case sample := <-s.samples:
		return sample, true
	default:
		return pen.Sample{}, false
	}
}

func (s *wsSource) Close() error {
	return s.conn.Close()
}
