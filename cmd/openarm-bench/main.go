// Command openarm-bench is a single-run step/ramp/sweep bench harness
// over one OpenArm motor: a cobra command tree reading a viper-parsed
// fixture file, in place of the external CSV-batch runner spec.md keeps
// out of scope.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagFixture    string
	flagMotorType  string
	flagRecvOffset uint32
	flagFDMode     bool
	flagTimeoutUs  uint32
	flagDebug      bool
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "openarm-bench",
		Short: "Single-run step/ramp/sweep bench harness for an OpenArm motor",
	}

	cmd.PersistentFlags().StringVar(&flagFixture, "fixture", "", "path to the test-fixture file (required)")
	cmd.PersistentFlags().StringVar(&flagMotorType, "motor-type", "DM4310", "MotorType name")
	cmd.PersistentFlags().Uint32Var(&flagRecvOffset, "recv-offset", 0x10, "recv_id = send_can_id + recv-offset")
	cmd.PersistentFlags().BoolVar(&flagFDMode, "fd", false, "open the socket in CAN-FD mode")
	cmd.PersistentFlags().Uint32Var(&flagTimeoutUs, "timeout-us", 100000, "receive timeout in microseconds")
	cmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	_ = cmd.MarkPersistentFlagRequired("fixture")

	cmd.AddCommand(newStepCommand())
	cmd.AddCommand(newRampCommand())
	cmd.AddCommand(newSweepCommand())

	return cmd
}

func benchLogger() *logrus.Logger {
	l := logrus.New()
	if flagDebug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
