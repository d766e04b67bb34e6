package viz

import (
	"fmt"

	"github.com/rubberduckies12/DigitalSignalProcessing/internal/circuit"
	"github.com/rubberduckies12/DigitalSignalProcessing/internal/units"
)

const (
	schematicWidth  = 44
	schematicHeight = 15
)

// drawSchematic renders the common-emitter stage with live component values.
// Coordinates are braille sub-pixels: x = 2·col, y = 4·row.
func drawSchematic(p circuit.Parameters, op circuit.OperatingPoint) *Canvas {
	c := NewCanvas(schematicWidth, schematicHeight)

	const (
		rail   = 6
		base   = 30
		collX  = 56
		baseX  = 24
		qX     = 44
		collY  = 22
		emitY  = 38
		ground = 54
	)

	// supply rail
	c.DrawLine(baseX, rail, collX, rail)

	// RB from rail to the base node, input coupling on the left
	c.Zigzag(baseX, rail, base)
	c.DrawLine(2, base, qX, base)

	// transistor body, collector and emitter legs
	c.DrawLine(qX, base-8, qX, base+8)
	c.DrawLine(qX, base-4, collX, collY)
	c.DrawLine(qX, base+4, collX, emitY)
	c.DrawLine(collX-2, emitY-1, collX, emitY)

	// RC to the rail, output tap on the collector
	c.Zigzag(collX, rail, collY)
	c.DrawLine(collX, collY, 84, collY)

	// RE to ground
	c.Zigzag(collX, emitY, ground)
	c.DrawLine(collX-6, ground, collX+6, ground)
	c.DrawLine(collX-4, ground+2, collX+4, ground+2)

	c.Text(baseX/2, 0, "Vcc "+units.Format(p.Vcc, "V"))
	c.Text(0, 3, "RB")
	c.Text(0, 4, units.Format(p.RB, "Ω"))
	c.Text(collX/2+3, 2, "RC "+units.Format(p.RC, "Ω"))
	c.Text(0, base/4-1, "Vin")
	c.Text(qX/2-5, base/4+2, "Q1")
	c.Text(qX/2-5, base/4+3, fmt.Sprintf("β=%g", p.Beta))
	c.Text(collX/2+3, collY/4-1, "Vout")
	c.Text(collX/2+3, collY/4+1, "VC "+units.Format(op.VC, "V"))
	c.Text(collX/2+3, emitY/4+1, "RE "+units.Format(p.RE, "Ω"))
	c.Text(collX/2+3, emitY/4+2, "VE "+units.Format(op.VE, "V"))
	return c
}
