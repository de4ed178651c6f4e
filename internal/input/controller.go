// Package input implements the standard NES controller's strobe/shift
// protocol at $4016/$4017.
package input

// Button is one bit of the 8-button NES controller report.
type Button uint8

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Controller is a single standard controller's shift register.
type Controller struct {
	buttons uint8

	shiftRegister uint8
	strobe        bool
}

func New() *Controller {
	return &Controller{}
}

// SetButton sets or clears one button in the live state latched on strobe.
func (c *Controller) SetButton(button Button, pressed bool) {
	if pressed {
		c.buttons |= uint8(button)
	} else {
		c.buttons &^= uint8(button)
	}
}

// SetButtons sets all eight buttons at once, in A/B/Select/Start/Up/Down/Left/Right order.
func (c *Controller) SetButtons(buttons [8]bool) {
	c.buttons = 0
	bits := [8]Button{ButtonA, ButtonB, ButtonSelect, ButtonStart, ButtonUp, ButtonDown, ButtonLeft, ButtonRight}
	for i, pressed := range buttons {
		if pressed {
			c.buttons |= uint8(bits[i])
		}
	}
}

func (c *Controller) IsPressed(button Button) bool {
	return c.buttons&uint8(button) != 0
}

// Write handles a write to the controller's strobe line. While strobe is
// held high the shift register continuously reloads from live button
// state; the falling edge latches it for serial shift-out.
func (c *Controller) Write(value uint8) {
	c.strobe = value&1 != 0
	if c.strobe {
		c.shiftRegister = c.buttons
	}
}

// Read shifts out one bit (button A first), then clocks in a 1 for every
// bit beyond the eighth, matching real 4021 shift-register behavior.
func (c *Controller) Read() uint8 {
	if c.strobe {
		return c.buttons & 1
	}
	result := c.shiftRegister & 1
	c.shiftRegister = c.shiftRegister>>1 | 0x80
	return result
}

func (c *Controller) Reset() {
	c.buttons = 0
	c.shiftRegister = 0
	c.strobe = false
}

// InputState owns both standard controller ports.
type InputState struct {
	Controller1 *Controller
	Controller2 *Controller
}

func NewInputState() *InputState {
	return &InputState{Controller1: New(), Controller2: New()}
}

func (is *InputState) Reset() {
	is.Controller1.Reset()
	is.Controller2.Reset()
}

func (is *InputState) SetButtons1(buttons [8]bool) { is.Controller1.SetButtons(buttons) }
func (is *InputState) SetButtons2(buttons [8]bool) { is.Controller2.SetButtons(buttons) }

// Read services a CPU read of $4016/$4017. Bit 6 of $4017 reads back as 1
// on real hardware (open-bus/light-gun artifact); $4016 has no such bit.
func (is *InputState) Read(address uint16) uint8 {
	switch address {
	case 0x4016:
		return is.Controller1.Read()
	case 0x4017:
		return is.Controller2.Read() | 0x40
	default:
		return 0
	}
}

// Write services a CPU write of $4016; both controllers share its strobe line.
func (is *InputState) Write(address uint16, value uint8) {
	if address == 0x4016 {
		is.Controller1.Write(value)
		is.Controller2.Write(value)
	}
}
