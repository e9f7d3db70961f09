package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/enactic/openarm-can/codec"
	"github.com/enactic/openarm-can/openarm"
)

var flagComplianceVMax float32

// newSweepCommand reproduces original_source's gripper POS_FORCE
// compliance sequence: read back the motor's PMAX/VMAX/TMAX registers
// (CallbackParam), cap VMax/TMax for a compliant grip via SetLimit, then
// switch back to state telemetry and hold a POS_FORCE current command.
func newSweepCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Gripper compliance sweep: query limits, cap them, then hold a POS_FORCE step",
		RunE: func(cmd *cobra.Command, args []string) error {
			fx, err := loadFixture(flagFixture)
			if err != nil {
				return err
			}
			mt, err := motorTypeByName(flagMotorType)
			if err != nil {
				return err
			}

			oa, err := openarm.New(fx.CANInterface, flagFDMode, flagTimeoutUs, benchLogger())
			if err != nil {
				return fmt.Errorf("connect %s: %w", fx.CANInterface, err)
			}
			defer oa.Close()

			recvID := fx.SendCANID + flagRecvOffset
			if err := oa.InitGripperMotor(mt, fx.SendCANID, recvID, codec.POSFORCE); err != nil {
				return err
			}
			g := oa.Gripper()

			if err := g.Enable(); err != nil {
				return err
			}
			defer g.Disable()

			g.SetCallbackModeAll(codec.CallbackParam)
			limits := map[codec.MotorVariable]float32{}
			for _, rid := range []codec.MotorVariable{codec.PMAX, codec.VMAX, codec.TMAX} {
				if err := g.QueryParamOne(0, rid); err != nil {
					return err
				}
				if _, err := g.RecvAll(flagTimeoutUs); err != nil {
					return err
				}
				limits[g.Motor().LastParam().RID] = g.Motor().LastParam().Value
			}
			fmt.Printf("%s: firmware limits pmax=%.3f vmax=%.3f tmax=%.3f\n",
				fx.TestName, limits[codec.PMAX], limits[codec.VMAX], limits[codec.TMAX])

			g.SetLimit(flagComplianceVMax, fx.MaxTorque)
			g.SetCallbackModeAll(codec.CallbackState)

			if err := g.Control(codec.PosForceParam{I: fx.StepTorque}); err != nil {
				return err
			}
			sleepSeconds(fx.StepDuration)
			if _, err := g.RecvAll(flagTimeoutUs); err != nil {
				return err
			}

			fmt.Printf("%s: compliant grip at vmax=%.3f tmax=%.3f -> position=%.4f torque=%.4f\n",
				fx.TestName, flagComplianceVMax, fx.MaxTorque, g.Motor().Position(), g.Motor().Torque())
			return nil
		},
	}
	cmd.Flags().Float32Var(&flagComplianceVMax, "compliance-vmax", 2.0, "velocity cap applied via SetLimit before the grip step")
	return cmd
}
