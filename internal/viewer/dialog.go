package viewer

import (
	"github.com/sqweek/dialog"

	"github.com/ejricha/glpipeline/internal/engine/shader"
)

// maxDialogLog keeps message boxes on screen.
const maxDialogLog = 800

// dialogReporter shows each diagnostic in a blocking native message box.
type dialogReporter struct {
	title string
}

func (r dialogReporter) Report(d shader.Diagnostic) {
	dialog.Message("%s", dialogText(d)).Title(r.title).Error()
}

func dialogText(d shader.Diagnostic) string {
	text := d.String()
	if len(text) > maxDialogLog {
		text = text[:maxDialogLog] + "\n..."
	}
	return text
}
