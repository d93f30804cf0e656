// Package api serves dice rolls over HTTP.
package api

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zephyrtronium/dice"
	"github.com/zephyrtronium/dice/internal/config"
)

// Server is the HTTP front end for rolling dice.
type Server struct {
	app  *fiber.App
	cfg  *config.Config
	log  *slog.Logger
	opts []dice.ParseOption
}

// New creates a server. If logger is nil, the server logs to slog.Default().
func New(cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{
		cfg:  cfg,
		log:  logger,
		opts: append(cfg.ParseOptions(), dice.Logger(logger)),
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
	})
	app.Use(srv.logRequest)
	app.Get("/roll", srv.roll)
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	srv.app = app
	return srv
}

// Listen starts the HTTP server on the configured address.
func (s *Server) Listen() error {
	s.log.Info("listening", slog.String("address", s.cfg.Server.Address))
	return s.app.Listen(s.cfg.Server.Address)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App returns the underlying Fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) logRequest(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.log.Info("request",
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.Int("status", c.Response().StatusCode()),
		slog.Duration("took", time.Since(start)),
	)
	return err
}

// RollResponse is the body of a successful roll.
type RollResponse struct {
	Expression string     `json:"expression"`
	Normalized string     `json:"normalized"`
	Total      int64      `json:"total"`
	Rolls      []RollTerm `json:"rolls"`
}

// RollTerm is the outcome of one dice term.
type RollTerm struct {
	Dice  string  `json:"dice"`
	Faces []int64 `json:"faces"`
	Sum   int64   `json:"sum"`
}

// ErrorResponse is the body of a failed roll.
type ErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		// Position is the column of an input error, or zero.
		Position int `json:"position,omitempty"`
	} `json:"error"`
}

func fail(c *fiber.Ctx, status int, msg string, pos int) error {
	var r ErrorResponse
	r.Error.Message = msg
	r.Error.Position = pos
	return c.Status(status).JSON(r)
}

func (s *Server) roll(c *fiber.Ctx) error {
	src := c.Query("expr")
	if src == "" {
		return fail(c, fiber.StatusBadRequest, "expr query parameter is required", 0)
	}
	e, err := dice.Parse(src, s.opts...)
	if err != nil {
		pos := 0
		var ie dice.InputError
		if errors.As(err, &ie) {
			pos = ie.Pos()
		}
		return fail(c, fiber.StatusBadRequest, err.Error(), pos)
	}
	if err := s.cfg.CheckDice(e); err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, err.Error(), 0)
	}

	var r *dice.Roller
	if seed := c.Query("seed"); seed != "" {
		v, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid seed "+strconv.Quote(seed), 0)
		}
		r = dice.NewRoller(dice.RandSource(rand.New(rand.NewPCG(v, v))))
	} else {
		r = dice.NewRoller(nil)
	}
	o, err := r.Trace(e)
	if err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, err.Error(), 0)
	}

	resp := RollResponse{
		Expression: src,
		Normalized: e.String(),
		Total:      o.Total,
		Rolls:      make([]RollTerm, 0, len(o.Rolls)),
	}
	for _, t := range o.Rolls {
		spec := strconv.Itoa(int(t.Count)) + "d" + strconv.Itoa(int(t.Sides))
		resp.Rolls = append(resp.Rolls, RollTerm{Dice: spec, Faces: t.Faces, Sum: t.Sum})
	}
	return c.JSON(resp)
}
