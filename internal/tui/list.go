package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/script-writer/models"
	"github.com/charmbracelet/bubbles/spinner"
)

type listModel struct {
	saves   []models.SnapshotInfo
	idx     int
	loading bool
	pushing bool
	spinner spinner.Model
	status  string
	lastErr error
}

func newListModel() listModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return listModel{spinner: s, loading: true}
}

func (m listModel) current() (models.SnapshotInfo, bool) {
	if len(m.saves) == 0 || m.idx < 0 || m.idx >= len(m.saves) {
		return models.SnapshotInfo{}, false
	}
	return m.saves[m.idx], true
}

func saveIcon(name string) string {
	if strings.HasPrefix(name, "autosave_") {
		return "[A]"
	}
	return "[S]"
}

func (m listModel) View() string {
	header := titleStyle.Render("Script Writer — Saves")
	if m.pushing {
		header += "  " + m.spinner.View()
	}
	out := header + "\n\n"

	if m.loading {
		out += "Loading...\n"
	} else if len(m.saves) == 0 {
		out += "No saves yet\n"
	} else {
		for i, save := range m.saves {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			out += fmt.Sprintf("%s%s %s  %s\n", cursor, saveIcon(save.Name), save.Name,
				helpStyle.Render(save.ModifiedAt.Format("Jan 2 15:04:05")))
		}
	}

	if m.status != "" {
		out += "\n" + m.status + "\n"
	}
	if m.lastErr != nil {
		out += "\n" + errorStyle.Render("Error: "+m.lastErr.Error()) + "\n"
	}

	out += "\n" + helpStyle.Render("enter open  s push to cloud  l log in  o open folder  q quit")
	return out
}
