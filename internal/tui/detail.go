package tui

import (
	"github.com/MKhiriev/script-writer/models"
)

type detailModel struct {
	save    models.SnapshotInfo
	content string
	status  string
}

func (m detailModel) View() string {
	out := titleStyle.Render(m.save.Name) + "\n"
	out += helpStyle.Render(m.save.ModifiedAt.Format("Jan 2 2006 15:04:05")) + "\n\n"

	if m.content == "" {
		out += "(empty)\n"
	} else {
		out += m.content + "\n"
	}

	if m.status != "" {
		out += "\n" + m.status
	}

	out += "\n\n" + helpStyle.Render("c copy text  esc back")
	return out
}
