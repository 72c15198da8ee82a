package skill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/joemocode/cakewalk-skill/internal/birthday"
	"github.com/joemocode/cakewalk-skill/internal/model/request"
	"github.com/joemocode/cakewalk-skill/internal/model/response"
	"github.com/joemocode/cakewalk-skill/internal/service/assets"
	"github.com/joemocode/cakewalk-skill/internal/service/timezone"
	"github.com/joemocode/cakewalk-skill/internal/store"
)

// Intent names produced by the language-understanding layer.
const (
	IntentCaptureBirthday = "CaptureBirthdayIntent"
	IntentHelp            = "HelpIntent"
	IntentCancel          = "CancelIntent"
	IntentStop            = "StopIntent"
)

const (
	welcomeSpeech       = "Hello! Welcome to Cake walk. What is your birthday?"
	welcomeReprompt     = "I was born Nov. 6th, 2015. When were you born?"
	clarifySpeech       = "I didn't catch your full birthday. Please tell me the month, day, and year you were born."
	clarifyReprompt     = "When were you born?"
	helpSpeech          = "You can tell me your birthday, or ask how many days are left until it. How can I help?"
	goodbyeSpeech       = "Goodbye!"
	apologySpeech       = "Sorry, I couldn't understand what you said. Please try again."
	connectionTrouble   = "There was a problem connecting to the service."
)

func handlerName(h Handler) string {
	return fmt.Sprintf("%T", h)
}

// ordinal renders 1 -> "1st", 22 -> "22nd" and so on.
func ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// hasBirthdayLaunchHandler answers launches from users whose birth date is
// already on file: a celebration on the day itself, a countdown otherwise.
type hasBirthdayLaunchHandler struct {
	timeZones   timezone.Client
	assets      assets.Resolver
	defaultZone *time.Location
	clock       func() time.Time
	logger      *slog.Logger
}

func (h *hasBirthdayLaunchHandler) CanHandle(_ context.Context, in *Input) bool {
	if in.Envelope.Type != request.TypeLaunch {
		return false
	}
	_, ok := in.Session.Birthday()
	return ok
}

func (h *hasBirthdayLaunchHandler) Handle(ctx context.Context, in *Input) (response.Response, error) {
	rec, _ := in.Session.Birthday()
	device := in.Envelope.Device

	loc := h.defaultZone
	zone, err := h.timeZones.SystemTimeZone(ctx, device.ID)
	if err != nil {
		var svcErr *timezone.ServiceError
		if !errors.As(err, &svcErr) {
			// The settings service could not be reached at all. This path
			// surfaces to the user instead of silently defaulting.
			return (&response.Builder{}).Speak(connectionTrouble).Build()
		}
		h.logger.Warn("time zone lookup failed, using default zone",
			"deviceId", device.ID, "error", err)
	} else if zone != "" {
		parsed, perr := time.LoadLocation(zone)
		if perr != nil {
			h.logger.Warn("unusable device time zone, using default zone",
				"deviceId", device.ID, "zone", zone, "error", perr)
		} else {
			loc = parsed
		}
	}

	status, err := birthday.Compute(h.clock(), loc, rec)
	if err != nil {
		return response.Response{}, fmt.Errorf("compute birthday status: %w", err)
	}

	var speech, header string
	if status.IsBirthday {
		speech = fmt.Sprintf("Happy %s birthday!", ordinal(status.YearsOld))
		header = "Happy Birthday!"
	} else {
		speech = fmt.Sprintf("Welcome back. It looks like there are %d days until your %s birthday.",
			status.DaysRemaining, ordinal(status.YearsOld))
		header = "Birthday Countdown"
	}

	b := (&response.Builder{}).Speak(speech)
	if device.SupportsRichVisuals() {
		if status.IsBirthday {
			for _, d := range celebrationDirectives(status.YearsOld) {
				b.WithDirective(d)
			}
		} else {
			b.WithDirective(launchDirective(h.assets, device.Viewport, visualContent{
				Header:     header,
				Text:       speech,
				Hint:       "Say: open cake walk, on your birthday!",
				Background: "garlands",
			}))
		}
	}
	b.WithCard(response.Card{Title: header, Body: speech, ImageURL: assets.CardImage(h.assets)})
	return b.Build()
}

// defaultLaunchHandler greets users with no birth date on file and prompts
// for one. Registered after the birthday-aware launch handler.
type defaultLaunchHandler struct {
	assets assets.Resolver
}

func (h *defaultLaunchHandler) CanHandle(_ context.Context, in *Input) bool {
	return in.Envelope.Type == request.TypeLaunch
}

func (h *defaultLaunchHandler) Handle(_ context.Context, in *Input) (response.Response, error) {
	device := in.Envelope.Device
	header := "Welcome to Cake Walk"

	b := (&response.Builder{}).Speak(welcomeSpeech).Reprompt(welcomeReprompt)
	if device.SupportsRichVisuals() {
		b.WithDirective(launchDirective(h.assets, device.Viewport, visualContent{
			Header:     header,
			Text:       welcomeSpeech,
			Hint:       "Say your birthday!",
			Background: "lights",
		}))
	}
	b.WithCard(response.Card{Title: header, Body: welcomeSpeech, ImageURL: assets.CardImage(h.assets)})
	return b.Build()
}

// captureBirthdayHandler writes the spoken birth date to the attribute
// store and confirms. Slot values are validated upstream; the missing-slot
// branch is a defensive clarification, not validation.
type captureBirthdayHandler struct {
	store  store.Store
	assets assets.Resolver
}

func (h *captureBirthdayHandler) CanHandle(_ context.Context, in *Input) bool {
	return in.Envelope.IsIntent(IntentCaptureBirthday)
}

func (h *captureBirthdayHandler) Handle(ctx context.Context, in *Input) (response.Response, error) {
	env := in.Envelope
	year, _ := strconv.Atoi(env.SlotValue("year"))
	day, _ := strconv.Atoi(env.SlotValue("day"))
	month := env.SlotValue("month")

	rec := birthday.Record{Year: year, Month: month, Day: day}
	if !rec.Complete() {
		return (&response.Builder{}).Speak(clarifySpeech).Reprompt(clarifyReprompt).Build()
	}

	// Overwrite, no merge: the new date fully replaces any previous one.
	if err := h.store.Put(ctx, env.Device.ID, rec.Attributes()); err != nil {
		return response.Response{}, fmt.Errorf("save birthday: %w", err)
	}
	in.Session.SetBirthday(rec)

	speech := fmt.Sprintf("Thanks, I'll remember that you were born %s %d %d.", month, day, year)
	header := "Birthday Saved"

	b := (&response.Builder{}).Speak(speech)
	if env.Device.SupportsRichVisuals() {
		b.WithDirective(launchDirective(h.assets, env.Device.Viewport, visualContent{
			Header:     header,
			Text:       speech,
			Hint:       "Say: open cake walk, on your birthday!",
			Background: "straws",
		}))
	}
	b.WithCard(response.Card{Title: header, Body: speech, ImageURL: assets.CardImage(h.assets)})
	return b.Build()
}

type helpHandler struct{}

func (h *helpHandler) CanHandle(_ context.Context, in *Input) bool {
	return in.Envelope.IsIntent(IntentHelp)
}

func (h *helpHandler) Handle(context.Context, *Input) (response.Response, error) {
	return (&response.Builder{}).Speak(helpSpeech).Reprompt(helpSpeech).Build()
}

type cancelStopHandler struct{}

func (h *cancelStopHandler) CanHandle(_ context.Context, in *Input) bool {
	return in.Envelope.IsIntent(IntentCancel) || in.Envelope.IsIntent(IntentStop)
}

func (h *cancelStopHandler) Handle(context.Context, *Input) (response.Response, error) {
	return (&response.Builder{}).Speak(goodbyeSpeech).Build()
}

type sessionEndedHandler struct{}

func (h *sessionEndedHandler) CanHandle(_ context.Context, in *Input) bool {
	return in.Envelope.Type == request.TypeSessionEnded
}

func (h *sessionEndedHandler) Handle(context.Context, *Input) (response.Response, error) {
	// Cleanup hook point; the platform ignores the body of this response.
	return response.Response{}, nil
}

// reflectorHandler echoes whichever intent matched. Diagnostics only; it
// must stay registered last or it shadows every named intent above.
type reflectorHandler struct{}

func (h *reflectorHandler) CanHandle(_ context.Context, in *Input) bool {
	return in.Envelope.Type == request.TypeIntent && in.Envelope.Intent != nil
}

func (h *reflectorHandler) Handle(_ context.Context, in *Input) (response.Response, error) {
	speech := fmt.Sprintf("You just triggered %s.", in.Envelope.Intent.Name)
	return (&response.Builder{}).Speak(speech).Build()
}

// errorHandler is the universal backstop for faults and unmatched events.
type errorHandler struct{}

func (h *errorHandler) CanHandle(context.Context, *Input) bool {
	return true
}

func (h *errorHandler) Handle(context.Context, *Input) (response.Response, error) {
	return (&response.Builder{}).Speak(apologySpeech).Reprompt(apologySpeech).Build()
}
