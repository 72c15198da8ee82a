package request

import "fmt"

// Request types carried by the inbound envelope.
const (
	TypeLaunch       = "LaunchRequest"
	TypeIntent       = "IntentRequest"
	TypeSessionEnded = "SessionEndedRequest"
)

// InterfaceRichVisuals is the capability a device declares when it can
// render rich visual directives.
const InterfaceRichVisuals = "RichVisuals.Render"

// Slot carries one resolved slot value. Slot validation happens upstream in
// the language-understanding layer; values arrive as plain strings.
type Slot struct {
	Value string `json:"value"`
}

// Intent is a recognized user intent with its slot values.
type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots,omitempty"`
}

// Viewport describes the pixel dimensions of a device screen.
type Viewport struct {
	PixelWidth  int `json:"pixelWidth"`
	PixelHeight int `json:"pixelHeight"`
}

// Resolution formats the viewport as "WxH", the naming convention used for
// resolution-specific background assets.
func (v Viewport) Resolution() string {
	return fmt.Sprintf("%dx%d", v.PixelWidth, v.PixelHeight)
}

// Device identifies the client device and the rendering capabilities it
// declared for this request. The device ID doubles as the stable key for
// persisted attributes.
type Device struct {
	ID                  string    `json:"id"`
	SupportedInterfaces []string  `json:"supportedInterfaces,omitempty"`
	Viewport            *Viewport `json:"viewport,omitempty"`
}

// SupportsRichVisuals reports whether the device declared the rich visual
// rendering capability.
func (d Device) SupportsRichVisuals() bool {
	for _, name := range d.SupportedInterfaces {
		if name == InterfaceRichVisuals {
			return true
		}
	}
	return false
}

// Envelope is one inbound event: a launch, a recognized intent, or a
// session end, plus the device and session it originated from.
type Envelope struct {
	Type      string  `json:"type"`
	Intent    *Intent `json:"intent,omitempty"`
	Device    Device  `json:"device"`
	SessionID string  `json:"sessionId"`
}

// IsIntent reports whether the envelope is an intent request with the given
// intent name.
func (e Envelope) IsIntent(name string) bool {
	return e.Type == TypeIntent && e.Intent != nil && e.Intent.Name == name
}

// SlotValue returns the value of the named slot, or "" when the slot is
// absent.
func (e Envelope) SlotValue(name string) string {
	if e.Intent == nil {
		return ""
	}
	return e.Intent.Slots[name].Value
}
