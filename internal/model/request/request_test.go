package request

import (
	"encoding/json"
	"testing"
)

func TestDecodeEnvelope(t *testing.T) {
	payload := []byte(`{
		"type": "IntentRequest",
		"intent": {
			"name": "CaptureBirthdayIntent",
			"slots": {
				"month": {"value": "November"},
				"day": {"value": "6"},
				"year": {"value": "2015"}
			}
		},
		"device": {
			"id": "device-1",
			"supportedInterfaces": ["RichVisuals.Render"],
			"viewport": {"pixelWidth": 1024, "pixelHeight": 600}
		},
		"sessionId": "session-1"
	}`)

	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}

	if !env.IsIntent("CaptureBirthdayIntent") {
		t.Fatal("expected a CaptureBirthdayIntent envelope")
	}
	if got := env.SlotValue("month"); got != "November" {
		t.Fatalf("unexpected month slot: %q", got)
	}
	if !env.Device.SupportsRichVisuals() {
		t.Fatal("expected rich visuals capability")
	}
	if got := env.Device.Viewport.Resolution(); got != "1024x600" {
		t.Fatalf("unexpected resolution: %q", got)
	}
}

func TestSlotValueAbsent(t *testing.T) {
	env := Envelope{Type: TypeIntent, Intent: &Intent{Name: "CaptureBirthdayIntent"}}
	if got := env.SlotValue("month"); got != "" {
		t.Fatalf("expected empty value for a missing slot, got %q", got)
	}

	launch := Envelope{Type: TypeLaunch}
	if got := launch.SlotValue("month"); got != "" {
		t.Fatalf("expected empty value without an intent, got %q", got)
	}
}

func TestSupportsRichVisuals(t *testing.T) {
	plain := Device{ID: "d", SupportedInterfaces: []string{"AudioPlayer"}}
	if plain.SupportsRichVisuals() {
		t.Fatal("audio-only device must not report rich visuals")
	}

	none := Device{ID: "d"}
	if none.SupportsRichVisuals() {
		t.Fatal("device with no interfaces must not report rich visuals")
	}
}

func TestIsIntentTypeMismatch(t *testing.T) {
	env := Envelope{Type: TypeLaunch, Intent: &Intent{Name: "HelpIntent"}}
	if env.IsIntent("HelpIntent") {
		t.Fatal("launch envelope must not match intent predicates")
	}
}
