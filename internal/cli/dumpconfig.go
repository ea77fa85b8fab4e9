package cli

import (
	"fmt"

	"github.com/ebike-foss/ctrlcore/internal/appconfig"
	"github.com/ebike-foss/ctrlcore/internal/config"
	"github.com/spf13/cobra"
)

var dumpConfigCmd = &cobra.Command{
	Use:   "dump-config",
	Short: "Print the resolved deployment config and persisted rider settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		deployCfg := appconfig.Load(runConfigPath)
		applyFlagOverrides(deployCfg)

		fmt.Printf("LCD:      type=%s port=%s baud=%d\n", deployCfg.LCD.Type, deployCfg.LCD.PortPath, deployCfg.LCD.BaudRate)
		fmt.Printf("Settings: path=%s\n", deployCfg.Settings.Path)
		fmt.Printf("Monitor:  enabled=%v addr=%s\n", deployCfg.Monitor.Enabled, deployCfg.Monitor.ListenAddr)
		fmt.Printf("Strategy: %s\n", deployCfg.Strategy.Name)
		fmt.Printf("Logging:  level=%s format=%s\n", deployCfg.Logging.Level, deployCfg.Logging.Format)
		fmt.Println()

		store := config.NewFileStore(deployCfg.Settings.Path)
		rider, err := store.Load()
		if err != nil {
			return err
		}
		fmt.Printf("Rider settings (from %s):\n", deployCfg.Settings.Path)
		fmt.Printf("  AssistLevel:            %d\n", rider.AssistLevel)
		fmt.Printf("  MotorCharacteristic:    %d\n", rider.MotorCharacteristic)
		fmt.Printf("  WheelSize:              %d\n", rider.WheelSize)
		fmt.Printf("  MaxSpeed:               %d km/h\n", rider.MaxSpeed)
		fmt.Printf("  PowerAssistControlMode: %v\n", rider.PowerAssistControlMode)
		fmt.Printf("  ControllerMaxCurrent:   %d\n", rider.ControllerMaxCurrent)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpConfigCmd)
}
