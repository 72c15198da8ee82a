package skill

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/joemocode/cakewalk-skill/internal/birthday"
	"github.com/joemocode/cakewalk-skill/internal/model/request"
	"github.com/joemocode/cakewalk-skill/internal/service/assets"
	"github.com/joemocode/cakewalk-skill/internal/service/timezone"
	"github.com/joemocode/cakewalk-skill/internal/store"
)

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (map[string]any, error) {
	return nil, errors.New("store unreachable")
}

func (brokenStore) Put(context.Context, string, map[string]any) error {
	return errors.New("store unreachable")
}

type timeZoneFunc func(ctx context.Context, deviceID string) (string, error)

func (f timeZoneFunc) SystemTimeZone(ctx context.Context, deviceID string) (string, error) {
	return f(ctx, deviceID)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newSkill(s store.Store, tz timezone.Client, clock func() time.Time) *Service {
	return NewService(Deps{
		Store:     s,
		TimeZones: tz,
		Assets:    assets.StaticResolver("https://assets.example.com"),
		Clock:     clock,
	})
}

func launchEnv(visual bool) request.Envelope {
	env := request.Envelope{
		Type:      request.TypeLaunch,
		Device:    request.Device{ID: "device-1"},
		SessionID: "session-1",
	}
	if visual {
		env.Device.SupportedInterfaces = []string{request.InterfaceRichVisuals}
		env.Device.Viewport = &request.Viewport{PixelWidth: 1024, PixelHeight: 600}
	}
	return env
}

func captureEnv(year, month, day string, visual bool) request.Envelope {
	slots := make(map[string]request.Slot)
	if year != "" {
		slots["year"] = request.Slot{Value: year}
	}
	if month != "" {
		slots["month"] = request.Slot{Value: month}
	}
	if day != "" {
		slots["day"] = request.Slot{Value: day}
	}

	env := request.Envelope{
		Type:      request.TypeIntent,
		Intent:    &request.Intent{Name: IntentCaptureBirthday, Slots: slots},
		Device:    request.Device{ID: "device-1"},
		SessionID: "session-1",
	}
	if visual {
		env.Device.SupportedInterfaces = []string{request.InterfaceRichVisuals}
	}
	return env
}

func TestLaunchWithEmptyStore(t *testing.T) {
	s := newSkill(store.NewMemoryStore(), timezone.StaticClient("UTC"), time.Now)

	resp := s.Dispatch(context.Background(), launchEnv(false))
	if resp.Speech != welcomeSpeech {
		t.Fatalf("expected the welcome speech, got %q", resp.Speech)
	}
	if resp.Reprompt != welcomeReprompt {
		t.Fatalf("expected the welcome reprompt, got %q", resp.Reprompt)
	}
	if len(resp.Directives) != 0 {
		t.Fatalf("plain device must not receive directives: %+v", resp.Directives)
	}
}

func TestLaunchStoreReadFailureFallsBackToWelcome(t *testing.T) {
	s := newSkill(brokenStore{}, timezone.StaticClient("UTC"), time.Now)

	resp := s.Dispatch(context.Background(), launchEnv(false))
	if resp.Speech != welcomeSpeech {
		t.Fatalf("an unreadable store must behave like no record, got %q", resp.Speech)
	}
}

func TestLaunchVisualDeviceGetsWelcomeDirective(t *testing.T) {
	s := newSkill(store.NewMemoryStore(), timezone.StaticClient("UTC"), time.Now)

	resp := s.Dispatch(context.Background(), launchEnv(true))
	if len(resp.Directives) != 1 {
		t.Fatalf("expected one directive, got %d", len(resp.Directives))
	}
	if resp.Directives[0].Type != directiveRenderDocument {
		t.Fatalf("unexpected directive type %q", resp.Directives[0].Type)
	}
	if resp.Card == nil {
		t.Fatal("expected a display card")
	}
}

func TestCaptureBirthdayStoresRecord(t *testing.T) {
	ctx := context.Background()
	attributes := store.NewMemoryStore()
	s := newSkill(attributes, timezone.StaticClient("UTC"), time.Now)

	resp := s.Dispatch(ctx, captureEnv("2015", "November", "6", false))
	if !strings.Contains(resp.Speech, "November 6 2015") {
		t.Fatalf("confirmation must repeat the date, got %q", resp.Speech)
	}

	attrs, err := attributes.Get(ctx, "device-1")
	if err != nil {
		t.Fatalf("expected stored attributes: %v", err)
	}
	rec, ok := birthday.FromAttributes(attrs)
	if !ok {
		t.Fatalf("stored attributes are incomplete: %v", attrs)
	}
	if rec != (birthday.Record{Year: 2015, Month: "November", Day: 6}) {
		t.Fatalf("unexpected stored record: %+v", rec)
	}
}

func TestCaptureBirthdayIsIdempotent(t *testing.T) {
	ctx := context.Background()
	attributes := store.NewMemoryStore()
	s := newSkill(attributes, timezone.StaticClient("UTC"), time.Now)

	env := captureEnv("2015", "November", "6", false)
	s.Dispatch(ctx, env)
	first, err := attributes.Get(ctx, "device-1")
	if err != nil {
		t.Fatalf("expected stored attributes: %v", err)
	}

	s.Dispatch(ctx, env)
	second, err := attributes.Get(ctx, "device-1")
	if err != nil {
		t.Fatalf("expected stored attributes: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("repeat capture changed the record: %v vs %v", first, second)
	}
	for k, v := range first {
		if second[k] != v {
			t.Fatalf("repeat capture changed %q: %v vs %v", k, v, second[k])
		}
	}
}

func TestCaptureBirthdayMissingSlotAsksForClarification(t *testing.T) {
	ctx := context.Background()
	attributes := store.NewMemoryStore()
	s := newSkill(attributes, timezone.StaticClient("UTC"), time.Now)

	resp := s.Dispatch(ctx, captureEnv("2015", "", "6", false))
	if resp.Speech != clarifySpeech {
		t.Fatalf("expected a clarification, got %q", resp.Speech)
	}
	if resp.Reprompt == "" {
		t.Fatal("clarification must keep the session open")
	}

	if _, err := attributes.Get(ctx, "device-1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("nothing should be written on clarification, got %v", err)
	}
}

func TestCaptureBirthdayWriteFailureApologizes(t *testing.T) {
	s := newSkill(brokenStore{}, timezone.StaticClient("UTC"), time.Now)

	resp := s.Dispatch(context.Background(), captureEnv("2015", "November", "6", false))
	if resp.Speech != apologySpeech {
		t.Fatalf("a failed write must reach the error handler, got %q", resp.Speech)
	}
}

func storeWithBirthday(t *testing.T, rec birthday.Record) *store.MemoryStore {
	t.Helper()
	attributes := store.NewMemoryStore()
	if err := attributes.Put(context.Background(), "device-1", rec.Attributes()); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return attributes
}

func TestHasBirthdayLaunchCountdown(t *testing.T) {
	attributes := storeWithBirthday(t, birthday.Record{Year: 2000, Month: "March", Day: 15})
	clock := fixedClock(time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC))
	s := newSkill(attributes, timezone.StaticClient("UTC"), clock)

	resp := s.Dispatch(context.Background(), launchEnv(false))
	want := "Welcome back. It looks like there are 14 days until your 24th birthday."
	if resp.Speech != want {
		t.Fatalf("got %q, want %q", resp.Speech, want)
	}
}

func TestHasBirthdayLaunchOnBirthday(t *testing.T) {
	attributes := storeWithBirthday(t, birthday.Record{Year: 2000, Month: "March", Day: 15})
	clock := fixedClock(time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC))
	s := newSkill(attributes, timezone.StaticClient("UTC"), clock)

	resp := s.Dispatch(context.Background(), launchEnv(true))
	if resp.Speech != "Happy 24th birthday!" {
		t.Fatalf("unexpected speech: %q", resp.Speech)
	}
	if len(resp.Directives) != 2 {
		t.Fatalf("expected render + commands directives, got %d", len(resp.Directives))
	}
	if resp.Directives[0].Type != directiveRenderDocument || resp.Directives[1].Type != directiveExecuteCommands {
		t.Fatalf("unexpected directive types: %+v", resp.Directives)
	}
}

func TestHasBirthdayLaunchNoDirectivesWithoutCapability(t *testing.T) {
	attributes := storeWithBirthday(t, birthday.Record{Year: 2000, Month: "March", Day: 15})
	clock := fixedClock(time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC))
	s := newSkill(attributes, timezone.StaticClient("UTC"), clock)

	resp := s.Dispatch(context.Background(), launchEnv(false))
	if len(resp.Directives) != 0 {
		t.Fatalf("plain device must not receive directives: %+v", resp.Directives)
	}
	if resp.Card == nil {
		t.Fatal("the card does not depend on the visual capability")
	}
}

func TestHasBirthdayLaunchUsesDeviceZone(t *testing.T) {
	attributes := storeWithBirthday(t, birthday.Record{Year: 2000, Month: "March", Day: 15})
	// Already March 15 in Auckland, still March 14 in UTC.
	clock := fixedClock(time.Date(2024, time.March, 14, 23, 0, 0, 0, time.UTC))
	s := newSkill(attributes, timezone.StaticClient("Pacific/Auckland"), clock)

	resp := s.Dispatch(context.Background(), launchEnv(false))
	if resp.Speech != "Happy 24th birthday!" {
		t.Fatalf("expected the device zone to apply, got %q", resp.Speech)
	}
}

func TestHasBirthdayLaunchTransportErrorSurfaces(t *testing.T) {
	attributes := storeWithBirthday(t, birthday.Record{Year: 2000, Month: "March", Day: 15})
	down := timeZoneFunc(func(context.Context, string) (string, error) {
		return "", errors.New("connection refused")
	})
	s := newSkill(attributes, down, fixedClock(time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)))

	resp := s.Dispatch(context.Background(), launchEnv(true))
	if resp.Speech != connectionTrouble {
		t.Fatalf("expected the connection apology, got %q", resp.Speech)
	}
	if resp.Reprompt != "" || len(resp.Directives) != 0 {
		t.Fatalf("connection apology carries speech only: %+v", resp)
	}
}

func TestHasBirthdayLaunchServiceErrorDefaultsZone(t *testing.T) {
	attributes := storeWithBirthday(t, birthday.Record{Year: 2000, Month: "March", Day: 15})
	noZone := timeZoneFunc(func(context.Context, string) (string, error) {
		return "", &timezone.ServiceError{Status: 404}
	})
	s := newSkill(attributes, noZone, fixedClock(time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)))

	resp := s.Dispatch(context.Background(), launchEnv(false))
	want := "Welcome back. It looks like there are 14 days until your 24th birthday."
	if resp.Speech != want {
		t.Fatalf("service errors must degrade to the default zone, got %q", resp.Speech)
	}
}

func TestHelpIntent(t *testing.T) {
	s := newSkill(store.NewMemoryStore(), timezone.StaticClient("UTC"), time.Now)

	resp := s.Dispatch(context.Background(), intentEnv(IntentHelp))
	if resp.Speech != helpSpeech || resp.Reprompt != helpSpeech {
		t.Fatalf("unexpected help response: %+v", resp)
	}
}

func TestCancelAndStopIntents(t *testing.T) {
	s := newSkill(store.NewMemoryStore(), timezone.StaticClient("UTC"), time.Now)

	for _, name := range []string{IntentCancel, IntentStop} {
		resp := s.Dispatch(context.Background(), intentEnv(name))
		if resp.Speech != goodbyeSpeech {
			t.Fatalf("%s: unexpected speech %q", name, resp.Speech)
		}
		if resp.Reprompt != "" {
			t.Fatalf("%s: goodbye must not keep the session open", name)
		}
	}
}

func TestSessionEnded(t *testing.T) {
	s := newSkill(store.NewMemoryStore(), timezone.StaticClient("UTC"), time.Now)

	resp := s.Dispatch(context.Background(), request.Envelope{
		Type:      request.TypeSessionEnded,
		Device:    request.Device{ID: "device-1"},
		SessionID: "session-1",
	})
	if resp.Speech != "" || resp.Reprompt != "" || len(resp.Directives) != 0 || resp.Card != nil {
		t.Fatalf("session end must produce an empty response: %+v", resp)
	}
}

func TestOrdinal(t *testing.T) {
	cases := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 24: "24th", 103: "103rd", 111: "111th",
	}
	for n, want := range cases {
		if got := ordinal(n); got != want {
			t.Fatalf("ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}
