package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/enactic/openarm-can/codec"
)

// rampTorque computes the commanded current at elapsed seconds t for a
// rise/plateau/fall trapezoidal profile, matching the shape
// original_source/control_sequences' step fixtures describe without
// adopting the teacher's trajectory planner (dropped per DESIGN.md — this
// is a simple envelope over discrete commands, not a motion trajectory).
func rampTorque(fx *Fixture, t float32) float32 {
	switch {
	case t < 0:
		return 0
	case t < fx.RiseWidth:
		if fx.RiseWidth == 0 {
			return fx.MaxTorque
		}
		return fx.MaxTorque * (t / fx.RiseWidth)
	case t < fx.RiseWidth+fx.PlateauWidth:
		return fx.MaxTorque
	case t < fx.RiseWidth+fx.PlateauWidth+fx.FallWidth:
		fallElapsed := t - fx.RiseWidth - fx.PlateauWidth
		if fx.FallWidth == 0 {
			return 0
		}
		return fx.MaxTorque * (1 - fallElapsed/fx.FallWidth)
	default:
		return 0
	}
}

func newRampCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ramp",
		Short: "Drive a rise/plateau/fall current envelope at resolution-second steps",
		RunE: func(cmd *cobra.Command, args []string) error {
			fx, err := loadFixture(flagFixture)
			if err != nil {
				return err
			}
			if fx.Resolution <= 0 {
				return fmt.Errorf("fixture resolution must be positive, got %f", fx.Resolution)
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

			total := fx.RiseWidth + fx.PlateauWidth + fx.FallWidth
			for t := float32(0); t <= total; t += fx.Resolution {
				i := rampTorque(fx, t)
				if err := oa.Arm().SendControl(0, codec.PosForceParam{I: i}); err != nil {
					return err
				}
				sleepSeconds(fx.Resolution)
			}

			if err := pollState(oa, flagTimeoutUs); err != nil {
				return err
			}
			m := oa.Arm().Motors()[0]
			fmt.Printf("%s: ramp complete -> position=%.4f torque=%.4f\n", fx.TestName, m.Position(), m.Torque())
			return nil
		},
	}
	return cmd
}
