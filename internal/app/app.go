// Package app wires the domain packages (config, throttle, pas, wheel,
// cruise, lcd, control) into the 10 Hz control pipeline described in
// spec.md §2, and owns the process-wide State aggregate per §9.
package app

import (
	"log/slog"

	"github.com/ebike-foss/ctrlcore/internal/config"
	"github.com/ebike-foss/ctrlcore/internal/control"
	"github.com/ebike-foss/ctrlcore/internal/lcd"
	"github.com/ebike-foss/ctrlcore/internal/motorif"
	"github.com/ebike-foss/ctrlcore/internal/pas"
	"github.com/ebike-foss/ctrlcore/internal/throttle"
	"github.com/ebike-foss/ctrlcore/internal/wheel"
)

// App owns the control core's running state and its collaborators. It
// has no goroutines of its own; Tick is called once per 100ms slow-tick
// period by whatever scheduler the deployment uses (see internal/cli).
type App struct {
	log *slog.Logger

	store    config.Store
	motor    motorif.Motor
	mc       motorif.MotorController
	pwm      motorif.PWM
	brake    motorif.Brake
	adc      motorif.ADC
	strategy control.Strategy
	shared   *SharedState

	throttleConditioner throttle.Conditioner

	State State
}

// Collaborators groups the external dependencies App needs, mirroring
// spec.md §6's named collaborator list.
type Collaborators struct {
	Store    config.Store
	Motor    motorif.Motor
	MC       motorif.MotorController
	PWM      motorif.PWM
	Brake    motorif.Brake
	ADC      motorif.ADC
	Strategy control.Strategy
}

// New constructs an App, loading the persisted LcdConfig (or defaults
// on first boot) from the settings store.
func New(log *slog.Logger, c Collaborators) (*App, error) {
	if log == nil {
		log = slog.Default()
	}
	if c.Strategy == nil {
		c.Strategy = control.Default()
	}

	cfg, err := c.Store.Load()
	if err != nil {
		return nil, err
	}

	a := &App{
		log:      log,
		store:    c.Store,
		motor:    c.Motor,
		mc:       c.MC,
		pwm:      c.PWM,
		brake:    c.Brake,
		adc:      c.ADC,
		strategy: c.Strategy,
		shared:   NewSharedState(),
	}
	a.State.Config = cfg
	return a, nil
}

// Shared exposes the SharedState so the deployment's serial reader and
// sensor-edge handlers (the simulated ISRs) can publish into it.
func (a *App) Shared() *SharedState { return a.shared }

// Tick runs one 100ms control-pipeline iteration: wheel speed, throttle,
// PAS, LCD communications, configuration application, and the selected
// control strategy, in that order (spec.md §2).
func (a *App) Tick() (lcd.TXTelemetry, error) {
	s := &a.State

	// 1. Wheel-speed computation.
	wheelTicks := a.shared.WheelPeriod()
	disconnected := a.shared.WheelSensorDisconnected()
	wheelPerimeterM := config.WheelPerimeterM(s.Config.WheelSize)
	s.Vehicle.MotorERPSMeasured = a.motor.ERPSMeasured()

	we := wheel.Speed(disconnected, s.Config.MotorCharacteristic, s.Vehicle.MotorERPSMeasured, wheelTicks, wheelPerimeterM)
	s.Vehicle.WheelSpeedKMH = we.SpeedKMH
	if we.SensorUsed {
		s.Vehicle.WheelPeriodMS = uint16(we.PeriodMS)
	} else if we.SpeedKMH < 1 {
		s.Vehicle.WheelPeriodMS = uint16(36000 * wheelPerimeterM)
	} else {
		s.Vehicle.WheelPeriodMS = uint16(3600 * wheelPerimeterM / we.SpeedKMH)
	}

	// 2. Throttle acquisition.
	s.Rider.ADCThrottle = a.adc.ReadThrottle()
	s.ThrottleADCAtCruiseCapture = s.Rider.ADCThrottle
	tr := a.throttleConditioner.Update(s.Rider.ADCThrottle)
	s.Rider.ThrottleMapped = tr.Mapped
	s.Rider.ThrottleFiltered = tr.Filtered
	s.Rider.ThrottleReleased = tr.Released

	// 3. PAS cadence & direction.
	pasTicks, pasDirection := a.shared.PASPeriod()
	s.Rider.PASDirection = pasDirection
	pr := pas.Estimate(pasTicks, pasDirection)
	s.Rider.PASCadenceRPM = pr.CadenceRPM

	s.Rider.BrakeActive = a.brake.IsSet()

	// 4. LCD communications.
	s.Vehicle.BatteryVoltageFilteredADC = a.motor.BatteryVoltageFilteredADC()
	s.Vehicle.BatteryPackVoltsQ8 = uint32(s.Vehicle.BatteryVoltageFilteredADC) * ADCBatteryVoltageK

	errCode := a.mc.Error()
	soc := BatterySOC(s.Vehicle.BatteryPackVoltsQ8)
	if errCode == motorif.ErrorBatteryUnderVoltage {
		soc = SOCEmptyFlashing
		errCode = motorif.ErrorNone
	}
	s.Vehicle.BatterySOCCode = soc
	s.Vehicle.ErrorCode = errCode

	throttleSet := throttle.IsSet(s.Rider.ADCThrottle)
	cruiseSet := s.Cruise.IsSet()
	pasSet := pr.IsSet

	var moving uint8
	if s.Rider.BrakeActive {
		moving |= lcd.MovingBrake
	}
	if cruiseSet {
		moving |= lcd.MovingCruise
	}
	if throttleSet {
		moving |= lcd.MovingThrottle
	}
	if pasSet {
		moving |= lcd.MovingPAS
	}

	currentByte := a.motor.CurrentFiltered10b() - 1
	if currentByte < 0 {
		currentByte = 0
	}

	tx := lcd.TXTelemetry{
		BatterySOC:              s.Vehicle.BatterySOCCode,
		WheelPeriodMS:           s.Vehicle.WheelPeriodMS,
		ErrorCode:               s.Vehicle.ErrorCode,
		MovingIndication:        moving,
		MotorCurrentFiltered10b: uint8(currentByte),
	}

	if frame, ok := a.shared.TakeRXFrame(); ok {
		if rxCfg, err := lcd.DecodeRX(frame); err != nil {
			a.log.Debug("lcd rx frame dropped", "error", err)
		} else {
			newCfg := config.LcdConfig{
				AssistLevel:            rxCfg.AssistLevel,
				MotorCharacteristic:    rxCfg.MotorCharacteristic,
				WheelSize:              rxCfg.WheelSize,
				MaxSpeed:               rxCfg.MaxSpeed,
				PowerAssistControlMode: rxCfg.PowerAssistControlMode,
				ControllerMaxCurrent:   rxCfg.ControllerMaxCurrent,
			}
			s.Config = newCfg
			if changed, err := a.store.WriteIfChanged(newCfg); err != nil {
				a.log.Warn("failed to persist lcd config", "error", err)
			} else if changed {
				a.log.Info("lcd config updated", "config", newCfg)
			}
		}
	}

	// 5. Apply configuration -> limits.
	maxCurrent10b := config.MaxCurrent10b(s.Config.ControllerMaxCurrent)
	wheelPerimeterM = config.WheelPerimeterM(s.Config.WheelSize)
	maxERPS := config.MaxErps(s.Config.MaxSpeed, s.Config.MotorCharacteristic, wheelPerimeterM)
	a.mc.SetMaxSpeedERPS(maxERPS)

	// Cruise control overrides the effective throttle value used by the
	// strategy below.
	effectiveThrottle := s.Cruise.Update(s.Rider.ThrottleFiltered, s.Vehicle.WheelSpeedKMH)

	// 6. Control strategy.
	in := control.Inputs{
		ThrottleFiltered:       effectiveThrottle,
		PASCadenceRPM:          s.Rider.PASCadenceRPM,
		AssistLevel:            s.Config.AssistLevel,
		PowerAssistControlMode: s.Config.PowerAssistControlMode,
		MaxCurrent10b:          maxCurrent10b,
		MaxERPSCeiling:         maxERPS,
		TargetSpeedERPSMax:     a.mc.TargetSpeedERPSMax(),
	}
	targets := a.strategy.Evaluate(in)

	if targets.UseDutyCycle {
		if a.pwm != nil {
			a.pwm.SetDutyCycle(targets.DutyCycle)
		}
		a.mc.SetTargetSpeedERPS(targets.TargetERPS)
	} else {
		a.mc.SetTargetCurrent10b(targets.TargetCurrent10b)
		a.mc.SetTargetSpeedERPS(targets.TargetERPS)
	}

	return tx, nil
}
