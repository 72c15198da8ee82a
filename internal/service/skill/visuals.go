package skill

import (
	"github.com/joemocode/cakewalk-skill/internal/model/request"
	"github.com/joemocode/cakewalk-skill/internal/model/response"
	"github.com/joemocode/cakewalk-skill/internal/service/assets"
)

// Directive types understood by rich-visual devices.
const (
	directiveRenderDocument  = "RichVisuals.RenderDocument"
	directiveExecuteCommands = "RichVisuals.ExecuteCommands"
)

// visualContent is the variable part of the shared launch screen.
type visualContent struct {
	Header     string
	Text       string
	Hint       string
	Background string
}

// launchDirective renders the shared launch screen with the given content.
// Image URLs are resolved per viewport so the device gets assets matching
// its resolution.
func launchDirective(r assets.Resolver, vp *request.Viewport, vc visualContent) response.Directive {
	return response.Directive{
		Type:     directiveRenderDocument,
		Version:  "1.0",
		Document: launchDocument(),
		Datasources: map[string]any{
			"launchData": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"headerTitle":       vc.Header,
					"mainText":          vc.Text,
					"hintString":        vc.Hint,
					"logoImage":         assets.LogoForViewport(r, vp),
					"backgroundImage":   assets.BackgroundForViewport(r, vc.Background, vp),
					"backgroundOpacity": "0.5",
				},
				"transformers": []any{
					map[string]any{
						"inputPath":   "hintString",
						"transformer": "textToHint",
					},
				},
			},
		},
	}
}

// celebrationDirectives renders the animated birthday screen plus the
// command sequence that drives its confetti animation.
func celebrationDirectives(yearsOld int) []response.Directive {
	return []response.Directive{
		{
			Type:     directiveRenderDocument,
			Version:  "1.1",
			Document: birthdayDocument(),
			Datasources: map[string]any{
				"birthdayData": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"year": yearsOld,
					},
				},
			},
		},
		{
			Type:     directiveExecuteCommands,
			Version:  "1.1",
			Document: celebrationCommands(),
		},
	}
}
