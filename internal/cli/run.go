package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ebike-foss/ctrlcore/internal/app"
	"github.com/ebike-foss/ctrlcore/internal/appconfig"
	"github.com/ebike-foss/ctrlcore/internal/config"
	"github.com/ebike-foss/ctrlcore/internal/control"
	"github.com/ebike-foss/ctrlcore/internal/lcd"
	"github.com/ebike-foss/ctrlcore/internal/lcdlink"
	"github.com/ebike-foss/ctrlcore/internal/monitor"
	"github.com/ebike-foss/ctrlcore/internal/motorif"
	"github.com/spf13/cobra"
)

var runConfigPath string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the control loop at 10 Hz",
	Long: `Runs the application-layer control pipeline: wheel speed, throttle
conditioning, pedal-assist cadence, LCD communications, and the selected
control strategy, once per 100ms tick.

There are no real motor-controller peripheral drivers in this module
(spec.md scopes them out); --simulate drives the collaborators from the
bench motor simulator. Omitting --simulate still runs against the
simulator but exchanges real frames with an LCD over --port, useful for
bench-testing the wire protocol against actual display hardware.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deployCfg := appconfig.Load(runConfigPath)
		applyFlagOverrides(deployCfg)

		log := slog.Default()

		store := config.NewFileStore(deployCfg.Settings.Path)
		sim := motorif.NewSimulator()

		a, err := app.New(log, app.Collaborators{
			Store:    store,
			Motor:    sim,
			MC:       sim,
			PWM:      sim,
			Brake:    sim,
			ADC:      sim,
			Strategy: control.Default(),
		})
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var mon *monitor.Server
		if deployCfg.Monitor.Enabled {
			mon = monitor.New(log)
			go func() {
				if err := mon.Run(ctx, deployCfg.Monitor.ListenAddr); err != nil {
					log.Error("monitor server exited", "error", err)
				}
			}()
		}

		var lcdConn *lcdlink.Conn
		if !cfgSimulate && deployCfg.LCD.Type == "serial" {
			lcdConn = lcdlink.NewConn(deployCfg.LCD.PortPath, deployCfg.LCD.BaudRate)
			if err := lcdConn.Open(); err != nil {
				return err
			}
			defer lcdConn.Close()
			go readLCDBytes(ctx, lcdConn, a.Shared(), log)
		}

		go simDrive(ctx, sim, a.Shared())

		log.Info("control loop starting", "tick", app.TickInterval)
		a.Run(ctx, func(tx lcd.TXTelemetry) {
			if lcdConn != nil {
				frame := lcd.EncodeTX(tx)
				if _, err := lcdConn.Send(frame[:]); err != nil {
					log.Warn("lcd send failed", "error", err)
				}
			}
			if mon != nil {
				mon.Publish(monitor.Snapshot{
					ThrottleFiltered: a.State.Rider.ThrottleFiltered,
					PASCadenceRPM:    a.State.Rider.PASCadenceRPM,
					WheelSpeedKMH:    a.State.Vehicle.WheelSpeedKMH,
					MotorERPS:        a.State.Vehicle.MotorERPSMeasured,
					BatterySOC:       a.State.Vehicle.BatterySOCCode,
					ErrorCode:        a.State.Vehicle.ErrorCode,
					CruiseState:      uint8(a.State.Cruise.State()),
					AssistLevel:      a.State.Config.AssistLevel,
					Stamp:            time.Now().UnixMilli(),
				})
			}
		})

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down")
		cancel()
		return nil
	},
}

// readLCDBytes copies bytes arriving from a real LCD link into the
// App's SharedState, mirroring the firmware's UART2 RX ISR.
func readLCDBytes(ctx context.Context, conn *lcdlink.Conn, shared *app.SharedState, log *slog.Logger) {
	buf := make([]byte, 64)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		n, err := conn.Receive(buf)
		if err != nil {
			log.Debug("lcd receive error", "error", err)
			continue
		}
		for i := 0; i < n; i++ {
			shared.FeedRXByte(buf[i])
		}
	}
}

// simDrive advances the bench motor simulator and publishes its
// sensor-edge outputs into SharedState, standing in for the real PAS
// and wheel-speed interrupt handlers.
func simDrive(ctx context.Context, sim *motorif.Simulator, shared *app.SharedState) {
	ticker := time.NewTicker(app.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sim.Advance(app.TickInterval.Seconds())
			pasTicks, pasDir := sim.PASPeriodTicks()
			shared.SetPASPeriod(pasTicks, pasDir)
			shared.SetWheelPeriod(sim.WheelPeriodTicks())
		}
	}
}

func applyFlagOverrides(c *appconfig.Config) {
	if cfgPort != "" {
		c.LCD.PortPath = cfgPort
		c.LCD.Type = "serial"
	}
	if cfgBaud != 0 {
		c.LCD.BaudRate = cfgBaud
	}
	if cfgSettings != "" {
		c.Settings.Path = cfgSettings
	}
	if cfgMonitor != "" {
		c.Monitor.Enabled = true
		c.Monitor.ListenAddr = cfgMonitor
	}
}

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "ebikecore.yaml", "Path to the deployment config file")
	rootCmd.AddCommand(runCmd)
}
