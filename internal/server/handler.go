package server

import (
	"time"

	"github.com/strandkv/strand/internal/command"
	"github.com/strandkv/strand/internal/resp"
)

// dispatch runs the grammar and the storage engine over one decoded
// request. Every failure past this point is request-level: it becomes a
// simple-error reply and the connection stays open.
func (s *Server) dispatch(c *conn, v resp.Value) resp.Value {
	cmd, err := command.Parse(v)
	if err != nil {
		s.metrics.RequestErrors.Inc()
		return resp.NewSimpleError("ERR " + err.Error())
	}

	if s.limiter != nil && !s.limiter.allow(c.remoteIP()) {
		s.metrics.RequestErrors.Inc()
		return resp.NewSimpleError("ERR rate limit exceeded")
	}

	start := time.Now()
	reply := s.execute(cmd)
	s.metrics.CommandsTotal.WithLabelValues(cmd.CommandName()).Inc()
	s.metrics.CommandDuration.WithLabelValues(cmd.CommandName()).Observe(time.Since(start).Seconds())
	return reply
}

func (s *Server) execute(cmd command.Command) resp.Value {
	switch cmd := cmd.(type) {
	case command.Ping:
		return resp.NewSimpleString("PONG")
	case command.Echo:
		return resp.NewSimpleString(string(cmd.Msg))
	case command.Get:
		val, ok := s.store.Get(cmd.Key)
		if !ok {
			return resp.NewNull()
		}
		return resp.NewBulkString(val)
	case command.Set:
		res := s.store.Set(cmd)
		switch {
		case !res.Written:
			return resp.NewNull()
		case cmd.GetOld && res.HadPrev:
			return resp.NewBulkString(res.Prev)
		case cmd.GetOld:
			return resp.NewNull()
		default:
			return resp.NewSimpleString("OK")
		}
	default:
		// Unreachable: Parse only produces the four variants above.
		return resp.NewSimpleError("ERR unsupported command")
	}
}
