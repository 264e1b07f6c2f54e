package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/sched-sim/sim"
)

var (
	servePort     int   // HTTP listen port
	serveMaxTicks int64 // Horizon applied to requests that set none
	serveLogLevel string
)

// SimulateRequest is the JSON body of the simulate and compare endpoints.
// Nil pointers take the simulator defaults.
type SimulateRequest struct {
	Policy             string            `json:"policy"`
	Seed               int64             `json:"seed"`
	TimeQuantum        *int              `json:"time_quantum,omitempty"`
	SuspendProbability *float64          `json:"suspend_probability,omitempty"`
	ResumeProbability  *float64          `json:"resume_probability,omitempty"`
	MaxTicks           int64             `json:"max_ticks,omitempty"`
	Count              int               `json:"count,omitempty"`
	Processes          []sim.ProcessSpec `json:"processes"`
}

func (r *SimulateRequest) config(defaultMaxTicks int64) sim.SimConfig {
	cfg := sim.DefaultSimConfig(r.Policy)
	cfg.Seed = r.Seed
	cfg.MaxTicks = r.MaxTicks
	if cfg.MaxTicks == 0 {
		cfg.MaxTicks = defaultMaxTicks
	}
	if r.TimeQuantum != nil {
		cfg.TimeQuantum = *r.TimeQuantum
	}
	if r.SuspendProbability != nil {
		cfg.SuspendProbability = *r.SuspendProbability
	}
	if r.ResumeProbability != nil {
		cfg.ResumeProbability = *r.ResumeProbability
	}
	return cfg
}

// SimulationHandler serves simulation runs over HTTP. Every request gets its
// own Simulator.
type SimulationHandler struct {
	maxTicks int64
}

// NewSimulationHandler creates a handler that caps open-ended runs at maxTicks.
func NewSimulationHandler(maxTicks int64) *SimulationHandler {
	return &SimulationHandler{maxTicks: maxTicks}
}

// Simulate runs the requested policy and returns the RunResult.
func (h *SimulationHandler) Simulate(c *fiber.Ctx) error {
	var req SimulateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request format"})
	}
	res, err := sim.Execute(c.UserContext(), req.config(h.maxTicks), req.Count, req.Processes)
	if err != nil {
		return h.fail(c, res, err)
	}
	if res.Status == sim.StatusAborted {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(res)
	}
	return c.JSON(res)
}

// Compare runs every policy on the same processes. The request's policy is
// ignored.
func (h *SimulationHandler) Compare(c *fiber.Ctx) error {
	var req SimulateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request format"})
	}
	cfg := req.config(h.maxTicks)
	cfg.Policy = sim.PolicyFCFS
	results, err := compareAll(c.UserContext(), cfg, req.Count, req.Processes)
	if err != nil {
		return h.fail(c, nil, err)
	}
	if len(results) > 0 && results[0].Status == sim.StatusAborted {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"results": results})
	}
	return c.JSON(fiber.Map{"results": results})
}

// Policies lists the canonical policy names.
func (h *SimulationHandler) Policies(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"policies": sim.PolicyNames()})
}

func (h *SimulationHandler) fail(c *fiber.Ctx, res *sim.RunResult, err error) error {
	if sim.IsConfigurationError(err) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	logrus.Errorf("simulation failed: %v", err)
	if res != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(res)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

// newServer wires the API routes.
func newServer(h *SimulationHandler) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	api := app.Group("/api")

	v1 := api.Group("/v1")
	{
		v1.Get("/policies", h.Policies)
		v1.Post("/simulate", h.Simulate)
		v1.Post("/compare", h.Compare)
	}
	return app
}

// serveCmd exposes the simulator over HTTP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve simulations over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(serveLogLevel)

		app := newServer(NewSimulationHandler(serveMaxTicks))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			logrus.Info("Shutting down server")
			_ = app.Shutdown()
		}()

		addr := fmt.Sprintf(":%d", servePort)
		logrus.Infof("Listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			logrus.Fatalf("Server stopped: %v", err)
		}
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 9095, "HTTP listen port")
	serveCmd.Flags().Int64Var(&serveMaxTicks, "max-ticks", 100000, "Horizon (in ticks) for requests that set none")
	serveCmd.Flags().StringVar(&serveLogLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.AddCommand(serveCmd)
}
