package commands

import (
	"fmt"

	"linkedinAgent/internal/cli/ui"
	"linkedinAgent/internal/workflow"
)

// LogsHandler показывает журнал последнего запуска воркфлоу
type LogsHandler struct {
	flow *workflow.Orchestrator
}

func NewLogsHandler(flow *workflow.Orchestrator) *LogsHandler {
	return &LogsHandler{flow: flow}
}

// Show выводит записи журнала в хронологическом порядке
func (h *LogsHandler) Show() {
	entries := h.flow.Logs()
	if len(entries) == 0 {
		fmt.Println(ui.ColorGray + "Журнал пуст: воркфлоу еще не запускался" + ui.ColorReset)
		return
	}

	fmt.Println("\n" + ui.ColorBold + "=== " + ui.IconList + " Журнал последнего запуска ===" + ui.ColorReset)
	for _, entry := range entries {
		fmt.Println("  " + ui.ColorGray + entry + ui.ColorReset)
	}
	fmt.Println()
}
