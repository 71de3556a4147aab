package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"linkedinAgent/internal/agent"
	"linkedinAgent/internal/cli/ui"
)

// AgentHandler обрабатывает диалоговые запросы к агенту
type AgentHandler struct {
	agent *agent.Agent
	log   *zap.Logger
}

func NewAgentHandler(ag *agent.Agent, log *zap.Logger) *AgentHandler {
	return &AgentHandler{
		agent: ag,
		log:   log,
	}
}

// Ask отправляет запрос агенту и выводит ответ с результатами инструментов
func (h *AgentHandler) Ask(ctx context.Context, prompt string) {
	if h.agent == nil {
		fmt.Println(ui.ColorRed + ui.IconCross + " Агент недоступен: не задан OPENAI_API_KEY" + ui.ColorReset)
		return
	}

	fmt.Println(ui.ColorGray + "Думаю..." + ui.ColorReset)

	reply, err := h.agent.ProcessPrompt(ctx, prompt)
	if err != nil {
		h.log.Error("Ошибка агента", zap.Error(err))
		fmt.Printf(ui.ColorRed+ui.IconCross+" Ошибка агента: %v"+ui.ColorReset+"\n", err)
		return
	}

	fmt.Println("\n" + ui.ColorBold + ui.IconChat + " Ответ:" + ui.ColorReset)
	fmt.Println(reply.Response)

	if len(reply.ToolOutputs) > 0 {
		fmt.Printf("\n"+ui.ColorGray+"Вызвано инструментов: %d"+ui.ColorReset+"\n", len(reply.ToolOutputs))
		for _, out := range reply.ToolOutputs {
			fmt.Printf("  "+ui.ColorCyan+"%s"+ui.ColorReset+"\n", out.Tool)
		}
	}
	fmt.Println()
}
