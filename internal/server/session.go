package server

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-stft/dsp/buffer"
	"github.com/cwbudde/algo-stft/dsp/stft"
	"github.com/cwbudde/algo-stft/internal/audio"
	"github.com/cwbudde/algo-stft/internal/config"
)

// controlMessage is a JSON frame exchanged as a websocket text message.
type controlMessage struct {
	Type      string `json:"type"`
	Window    string `json:"window,omitempty"`
	Size      int    `json:"size,omitempty"`
	Step      int    `json:"step,omitempty"`
	Bins      int    `json:"bins,omitempty"`
	Reduction string `json:"reduction,omitempty"`
	Columns   int    `json:"columns,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// outbound is one queued websocket write: a pooled column or a control frame.
type outbound struct {
	column  *[]float32
	control *controlMessage
}

type session struct {
	conn     *websocket.Conn
	engine   *stft.Engine32
	analysis config.AnalysisConfig
	cfg      config.ServerConfig
	log      zerolog.Logger

	columns *buffer.Pool32
	out     chan outbound
	col     []float32
	samples []float32
}

func newSession(conn *websocket.Conn, e *stft.Engine32, analysis config.AnalysisConfig, cfg config.ServerConfig, logger zerolog.Logger) *session {
	return &session{
		conn:     conn,
		engine:   e,
		analysis: analysis,
		cfg:      cfg,
		log:      logger,
		columns:  buffer.NewPoolT[float32](e.OutputSize()),
		out:      make(chan outbound, cfg.QueueDepth),
		col:      make([]float32, e.OutputSize()),
	}
}

// run reads until the connection closes. Writes happen on a separate
// goroutine fed through s.out, since a websocket connection supports one
// concurrent writer.
func (s *session) run() {
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeLoop()
	}()

	s.send(&controlMessage{
		Type:      "config",
		Window:    s.engine.WindowType().String(),
		Size:      s.engine.WindowSize(),
		Step:      s.engine.StepSize(),
		Bins:      s.engine.OutputSize(),
		Reduction: s.engine.Reduction().String(),
	})

	s.readLoop()

	close(s.out)
	<-writerDone
}

func (s *session) readLoop() {
	s.conn.SetReadLimit(s.cfg.MaxMessageBytes)
	s.bumpDeadline()

	total := 0
	for {
		mt, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug().Int("columns", total).Msg("client closed")
			} else {
				s.log.Warn().Err(err).Int("columns", total).Msg("ws read error")
			}
			return
		}
		s.bumpDeadline()

		switch mt {
		case websocket.BinaryMessage:
			s.samples, err = audio.DecodeFloat32LE(s.samples, data)
			if err != nil {
				s.send(&controlMessage{Type: "error", Detail: err.Error()})
				continue
			}
			s.engine.Append(s.samples)
			total += s.drain()

		case websocket.TextMessage:
			total += s.handleControl(data)
		}
	}
}

func (s *session) handleControl(data []byte) int {
	var msg controlMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.send(&controlMessage{Type: "error", Detail: "invalid json"})
		return 0
	}

	switch msg.Type {
	case "flush":
		n := 0
		if s.engine.Flush() {
			n = s.drain()
		}
		s.send(&controlMessage{Type: "flushed", Columns: n})
		return n
	case "reset":
		s.engine.Reset()
		s.send(&controlMessage{Type: "reset"})
	case "ping":
		s.send(&controlMessage{Type: "pong"})
	default:
		s.send(&controlMessage{Type: "error", Detail: "unknown message type " + msg.Type})
	}

	return 0
}

// drain queues every ready column for the writer.
func (s *session) drain() int {
	n, err := s.engine.Drain(s.col, func(col []float32) error {
		c := s.columns.Get()
		copy(*c, col)
		s.out <- outbound{column: c}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Msg("compute column")
		s.send(&controlMessage{Type: "error", Detail: err.Error()})
	}

	return n
}

func (s *session) send(msg *controlMessage) {
	s.out <- outbound{control: msg}
}

func (s *session) writeLoop() {
	var payload []byte
	failed := false

	for msg := range s.out {
		if failed {
			if msg.column != nil {
				s.columns.Put(msg.column)
			}
			continue
		}

		var err error
		if msg.column != nil {
			payload = audio.EncodeFloat32LE(payload, *msg.column)
			s.columns.Put(msg.column)
			err = s.conn.WriteMessage(websocket.BinaryMessage, payload)
		} else {
			err = s.conn.WriteJSON(msg.control)
		}

		if err != nil {
			s.log.Warn().Err(err).Msg("ws write error")
			failed = true
			_ = s.conn.Close()
		}
	}
}

func (s *session) bumpDeadline() {
	if s.cfg.IdleTimeout > 0 {
		_ = s.conn.SetReadDeadline(time.Now().Add(s.cfg.IdleTimeout))
	}
}
