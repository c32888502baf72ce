package tui

func renderHelp(m model) string {
	keys := "Keys: tab symbols | / filter | q quit"
	if m.mode == panelSymbols {
		keys = "Keys: tab diagnostics | / filter | q quit"
	}
	return statusStyle.Render(keys)
}

func renderPanel(m model) string {
	e, ok := m.selected()
	if !ok {
		return statusStyle.Render("Waiting for the first run.")
	}
	if m.mode == panelSymbols {
		if !e.ok {
			return statusStyle.Render("No symbol table: the last run failed.")
		}
		return e.symbols
	}
	return e.detail
}
