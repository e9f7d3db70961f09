package device_test

import (
	"fmt"

	"github.com/enactic/openarm-can/codec"
	"github.com/enactic/openarm-can/device"
	"github.com/enactic/openarm-can/motor"
)

// ExampleGripperComponent_compliance demonstrates the callback-mode
// transitions of a compliance grip: switch to CallbackParam (where a real
// program would query PMAX/VMAX/TMAX), cap velocity and torque with
// SetLimit, then switch back to CallbackState. It sends no frames.
func ExampleGripperComponent_compliance() {
	m, unknown := motor.New(codec.DM4310, 0x20, 0x21, codec.POSFORCE)
	if unknown {
		panic("unreachable: DM4310 is a known motor type")
	}

	// A real program passes an *cansocket.Socket here; nil is fine for
	// this example because it only demonstrates the callback-mode
	// transitions, not an actual bus round trip.
	g, err := device.NewGripperComponent(m, nil, nil)
	if err != nil {
		panic(err)
	}

	g.SetCallbackModeAll(codec.CallbackParam)
	fmt.Println("mode before grip:", g.Motor().CallbackMode())

	g.SetLimit(2.0, 1.5)
	g.SetCallbackModeAll(codec.CallbackState)
	fmt.Println("mode during grip:", g.Motor().CallbackMode())
	fmt.Printf("capped limits: vmax=%.1f tmax=%.1f\n", g.Motor().Limits().VMax, g.Motor().Limits().TMax)

	// Output:
	// mode before grip: 1
	// mode during grip: 0
	// capped limits: vmax=2.0 tmax=1.5
}
