package email

import (
	"fmt"
	"time"
)

// PreviewData holds sample data for rendering each template locally.
var PreviewData = map[Template]any{
	TemplateRecordChanged: RecordChange{
		Entity:     "Skills",
		Action:     "created",
		ID:         1,
		OccurredAt: time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC),
	},
}

// Preview renders name with its sample data.
func Preview(name Template) (string, error) {
	data, ok := PreviewData[name]
	if !ok {
		return "", fmt.Errorf("no preview data for template %q", name)
	}
	return Render(name, data)
}
