package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/qntx-braket/am"
	"github.com/teranos/qntx-braket/braket"
	"github.com/teranos/qntx-braket/errors"
)

// DevicesCmd lists Braket devices
var DevicesCmd = &cobra.Command{
	Use:   "devices [device-arn]",
	Short: "List Braket devices, or show one device's capabilities",
	Long: `List the QPUs and simulators visible to the configured AWS account and region.
With a device ARN, show its capabilities instead.

Examples:
  qntx-braket devices
  qntx-braket devices arn:aws:braket:::device/quantum-simulator/amazon/sv1 --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDevices,
}

var devicesJSON bool

func init() {
	DevicesCmd.Flags().BoolVarP(&devicesJSON, "json", "j", false, "Output as JSON")
}

func runDevices(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	svc, err := braket.NewService(cmd.Context(), cfg.BraketOptions())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		info, err := svc.GetDevice(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if devicesJSON {
			return printJSON(out, info)
		}
		rows := pterm.TableData{
			{"Name", info.DeviceName},
			{"ARN", info.DeviceARN},
			{"Provider", info.ProviderName},
			{"Type", string(info.DeviceType)},
			{"Status", info.Status},
			{"Qubits", fmt.Sprintf("%d", info.Qubits)},
			{"Connectivity", info.Connectivity},
			{"Paradigm", info.Paradigm},
			{"Max shots", fmt.Sprintf("%d", info.MaxShots)},
			{"Gates", strings.Join(info.SupportedGates, ", ")},
		}
		return pterm.DefaultTable.WithWriter(out).WithData(rows).Render()
	}

	devices, err := svc.ListDevices(cmd.Context())
	if err != nil {
		return err
	}
	if devicesJSON {
		return printJSON(out, devices)
	}
	if len(devices) == 0 {
		pterm.Info.WithWriter(out).Println("No devices found in " + svc.Region())
		return nil
	}

	table := pterm.TableData{{"Name", "Type", "Provider", "Status", "ARN"}}
	for _, d := range devices {
		table = append(table, []string{d.DeviceName, string(d.DeviceType), d.ProviderName, d.Status, d.DeviceARN})
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(out).WithData(table).Render()
}
