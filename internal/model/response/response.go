package response

import "errors"

// ErrRepromptWithoutSpeech rejects a response that would reprompt the user
// without having said anything first.
var ErrRepromptWithoutSpeech = errors.New("response has a reprompt but no speech")

// Directive instructs a capable device to render a rich visual layout.
type Directive struct {
	Type        string         `json:"type"`
	Version     string         `json:"version"`
	Document    map[string]any `json:"document,omitempty"`
	Datasources map[string]any `json:"datasources,omitempty"`
}

// Card is a simple display card shown in companion surfaces.
type Card struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Response is one outbound skill response. It is terminal once built; the
// transport layer serializes it as-is.
type Response struct {
	Speech     string      `json:"speech,omitempty"`
	Reprompt   string      `json:"reprompt,omitempty"`
	Directives []Directive `json:"directives,omitempty"`
	Card       *Card       `json:"card,omitempty"`
}

// Builder accumulates the parts of a response. Zero value is ready to use.
type Builder struct {
	speech     string
	reprompt   string
	directives []Directive
	card       *Card
}

// Speak sets the spoken text.
func (b *Builder) Speak(text string) *Builder {
	b.speech = text
	return b
}

// Reprompt sets the reprompt text, keeping the session open for a reply.
func (b *Builder) Reprompt(text string) *Builder {
	b.reprompt = text
	return b
}

// WithDirective appends a rendering directive. Directives keep their
// append order in the built response.
func (b *Builder) WithDirective(d Directive) *Builder {
	b.directives = append(b.directives, d)
	return b
}

// WithCard attaches a display card.
func (b *Builder) WithCard(c Card) *Builder {
	b.card = &c
	return b
}

// Build produces the immutable response. A reprompt without speech is
// rejected here rather than surfacing as a silent dead-end session.
func (b *Builder) Build() (Response, error) {
	if b.reprompt != "" && b.speech == "" {
		return Response{}, ErrRepromptWithoutSpeech
	}

	resp := Response{
		Speech:   b.speech,
		Reprompt: b.reprompt,
	}
	if len(b.directives) > 0 {
		resp.Directives = append([]Directive(nil), b.directives...)
	}
	if b.card != nil {
		card := *b.card
		resp.Card = &card
	}
	return resp, nil
}
