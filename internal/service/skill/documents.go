package skill

// Render documents for the two skill screens. Devices treat these as
// opaque layout payloads; the core never inspects them after composition.

func launchDocument() map[string]any {
	return map[string]any{
		"type":    "VisualDocument",
		"version": "1.0",
		"mainTemplate": map[string]any{
			"parameters": []any{"launchData"},
			"items": []any{
				map[string]any{
					"type":            "LaunchScreen",
					"headerTitle":     "${launchData.properties.headerTitle}",
					"primaryText":     "${launchData.properties.mainText}",
					"hintText":        "${launchData.properties.hintString}",
					"logoUrl":         "${launchData.properties.logoImage}",
					"backgroundUrl":   "${launchData.properties.backgroundImage}",
					"backgroundBlend": "${launchData.properties.backgroundOpacity}",
				},
			},
		},
	}
}

func birthdayDocument() map[string]any {
	return map[string]any{
		"type":    "VisualDocument",
		"version": "1.1",
		"mainTemplate": map[string]any{
			"parameters": []any{"birthdayData"},
			"items": []any{
				map[string]any{
					"type":        "CelebrationScreen",
					"id":          "celebration",
					"primaryText": "Happy Birthday!",
					"yearsOld":    "${birthdayData.properties.year}",
				},
			},
		},
	}
}

func celebrationCommands() map[string]any {
	return map[string]any{
		"token": "celebration",
		"commands": []any{
			map[string]any{
				"type":        "AnimateItem",
				"componentId": "celebration",
				"duration":    3000,
				"easing":      "ease-in-out",
			},
		},
	}
}
