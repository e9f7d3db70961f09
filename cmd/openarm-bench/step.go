package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/enactic/openarm-can/codec"
)

func newStepCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step",
		Short: "Hold a constant current command for step_duration seconds",
		RunE: func(cmd *cobra.Command, args []string) error {
			fx, err := loadFixture(flagFixture)
			if err != nil {
				return err
			}

			oa, err := connectSingleMotor(fx, codec.POSFORCE)
			if err != nil {
				return err
			}
			defer oa.Close()

			if err := oa.EnableAll(); err != nil {
				return err
			}
			defer oa.DisableAll()

			if err := oa.Arm().SendControl(0, codec.PosForceParam{I: fx.StepTorque}); err != nil {
				return err
			}
			if err := pollState(oa, flagTimeoutUs); err != nil {
				return err
			}

			sleepSeconds(fx.StepDuration)

			m := oa.Arm().Motors()[0]
			fmt.Printf("%s: step %.3f Nm held %.3fs -> position=%.4f torque=%.4f\n",
				fx.TestName, fx.StepTorque, fx.StepDuration, m.Position(), m.Torque())
			return nil
		},
	}
	return cmd
}
