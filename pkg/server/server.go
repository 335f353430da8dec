package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/ninekey/internal/logger"
	"github.com/bastiangx/ninekey/pkg/config"
	"github.com/bastiangx/ninekey/pkg/lexicon"
	"github.com/bastiangx/ninekey/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server answers msgpack requests against a Suggester
type Server struct {
	engine       suggest.Suggester
	config       *config.Config
	configPath   string
	decoder      *msgpack.Decoder
	writer       *bufio.Writer
	encoder      *msgpack.Encoder
	requestCount int
	log          *log.Logger
}

// NewServer creates a server using stdin/stdout for IPC.
// configPath is re-read every reload_every requests; empty disables reloading.
func NewServer(engine suggest.Suggester, cfg *config.Config, configPath string) *Server {
	return NewServerIO(engine, cfg, configPath, os.Stdin, os.Stdout)
}

// NewServerIO creates a server on the given streams
func NewServerIO(engine suggest.Suggester, cfg *config.Config, configPath string, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	bw := bufio.NewWriter(w)
	return &Server{
		engine:     engine,
		config:     cfg,
		configPath: configPath,
		decoder:    msgpack.NewDecoder(bufio.NewReader(r)),
		writer:     bw,
		encoder:    msgpack.NewEncoder(bw),
		log:        logger.New("server"),
	}
}

// Start sends the ready message and serves requests until the input ends
func (s *Server) Start() error {
	s.log.Debug("Starting server")
	if err := s.send(Response{Status: StatusReady}); err != nil {
		return err
	}

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			// a broken frame leaves the stream unsynchronised
			s.log.Errorf("Decoding request: %v", err)
			_ = s.send(Response{Status: StatusError, Error: "invalid msgpack request", Code: CodeBadRequest})
			return fmt.Errorf("decoding request: %w", err)
		}

		s.requestCount++
		s.maybeReloadConfig()

		if err := s.send(s.Handle(req)); err != nil {
			return err
		}
	}
}

// Handle answers one request
func (s *Server) Handle(req Request) Response {
	start := time.Now()
	resp := s.dispatch(req)
	resp.ID = req.ID
	resp.TimeTaken = time.Since(start).Microseconds()
	if resp.Status == StatusError {
		s.log.Debugf("Request %s (%s %q) failed: %s", req.ID, req.Op, req.Word, resp.Error)
	}
	return resp
}

func (s *Server) dispatch(req Request) Response {
	if n := s.config.Server.MaxQueryLen; n > 0 && utf8.RuneCountInString(req.Word) > n {
		return errorResponse(fmt.Errorf("%w: longer than %d characters", suggest.ErrInvalidQuery, n))
	}

	switch req.Op {
	case OpInsert:
		if err := s.engine.Add(req.Word, req.Count); err != nil {
			return errorResponse(err)
		}
		return Response{Status: StatusOK}

	case OpRemove:
		return Response{Status: StatusOK, Found: s.engine.Remove(req.Word)}

	case OpUpdate:
		if err := s.engine.Update(req.Word, req.Count); err != nil {
			return errorResponse(err)
		}
		return Response{Status: StatusOK, Found: true}

	case OpLookup:
		return Response{
			Status: StatusOK,
			Found:  s.engine.Contains(req.Word),
			Count:  s.engine.Lookup(req.Word),
		}

	case OpMatch:
		if req.Word == "" {
			return errorResponse(fmt.Errorf("%w: missing pattern", suggest.ErrInvalidQuery))
		}
		words := s.engine.WildcardSearch(req.Word)
		return Response{Status: StatusOK, Words: words[:s.limit(req.Limit, len(words))]}

	case OpPrefix:
		entries := s.engine.PrefixListing(req.Word)
		return Response{Status: StatusOK, Entries: entries[:s.limit(req.Limit, len(entries))]}

	case OpCorrect:
		if err := suggest.ValidateDigits(req.Word); err != nil {
			return errorResponse(err)
		}
		entries := s.engine.Autocorrect(req.Word)
		return Response{Status: StatusOK, Entries: entries[:s.limit(req.Limit, len(entries))]}

	case OpResolve:
		if err := suggest.ValidateDigits(req.Word); err != nil {
			return errorResponse(err)
		}
		steps := s.engine.DigitResolution(req.Word)
		return Response{Status: StatusOK, Steps: steps, Best: lexicon.LastLetters(steps)}

	case OpStats:
		stats := s.engine.Stats()
		stats["requests"] = s.requestCount
		return Response{Status: StatusOK, Stats: stats}

	case OpHealth:
		return Response{Status: StatusOK}
	}
	return Response{Status: StatusError, Error: fmt.Sprintf("unknown op: %q", req.Op), Code: CodeBadRequest}
}

// limit caps n to the requested limit and the configured maximum
func (s *Server) limit(requested, n int) int {
	maxResults := s.config.Server.MaxResults
	if requested > 0 && (maxResults <= 0 || requested < maxResults) {
		maxResults = requested
	}
	if maxResults > 0 && maxResults < n {
		return maxResults
	}
	return n
}

func (s *Server) maybeReloadConfig() {
	every := s.config.Server.ReloadEvery
	if s.configPath == "" || every <= 0 || s.requestCount%every != 0 {
		return
	}
	cfg, err := config.LoadConfig(s.configPath)
	if err != nil {
		s.log.Warnf("Config reload from %s failed: %v", s.configPath, err)
		return
	}
	s.config = cfg
	s.log.Debugf("Reloaded config after %d requests", s.requestCount)
}

func (s *Server) send(resp Response) error {
	if err := s.encoder.Encode(resp); err != nil {
		s.log.Errorf("Encoding response: %v", err)
		return fmt.Errorf("encoding response: %w", err)
	}
	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}

func errorResponse(err error) Response {
	code := CodeInternal
	switch {
	case errors.Is(err, suggest.ErrInvalidWord),
		errors.Is(err, suggest.ErrInvalidCount),
		errors.Is(err, suggest.ErrInvalidQuery):
		code = CodeBadRequest
	case errors.Is(err, suggest.ErrWordNotFound):
		code = CodeNotFound
	case errors.Is(err, suggest.ErrWordExists):
		code = CodeConflict
	}
	return Response{Status: StatusError, Error: err.Error(), Code: code}
}
