// pensend streams synthetic pen samples over UDP, for exercising the
// net source without a tablet.  The pen travels a circle, pressing down
// for the first three quarters of each lap and lifting for the last.
package main

import (
	"flag"
	"math"
	"net"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pensteer/pensteer/pkg/pen"
)

func main() {
	var (
		addr   = flag.String("addr", "127.0.0.1:16027", "destination address")
		hz     = flag.Int("hz", 125, "samples per second")
		radius = flag.Float64("radius", 0.5, "circle radius in pen space")
		lap    = flag.Duration("lap", 4*time.Second, "time per full circle")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	conn, err := net.Dial("udp", *addr)
	if err != nil {
		log.Fatal().Err(err).Msg("Dialling")
	}
	defer conn.Close()
	log.Info().Str("addr", *addr).Int("hz", *hz).Msg("Sending pen samples")

	period := time.Second / time.Duration(*hz)
	start := time.Now()
	for range time.Tick(period) {
		phase := float64(time.Since(start)%*lap) / float64(*lap)
		angle := 2 * math.Pi * phase
		s := pen.Sample{
			X: float32(*radius * math.Sin(angle)),
			Y: float32(*radius * math.Cos(angle)),
		}
		if phase < 0.75 {
			s.Pressure = 2048
		}
		raw := s.MarshalBinary()
		if _, err := conn.Write(raw); err != nil {
			log.Fatal().Err(err).Msg("Sending sample")
		}
	}
}
