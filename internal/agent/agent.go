// Package agent реализует диалогового агента над сохраненными профилями.
// Агент ведет ограниченный по числу ходов цикл с LLM и фиксированным набором
// детерминированных инструментов: фильтрация, экспорт в CSV, поиск по имени.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"linkedinAgent/internal/database"
	"linkedinAgent/internal/logger"
)

// MaxTurns - бюджет ходов одного запроса. Исчерпание бюджета дает
// фиксированный ответ, а не ошибку.
const MaxTurns = 5

const maxTurnsMessage = "Достигнут лимит ходов агента."

// LLM - диалоговый интерфейс с поддержкой инструментов.
type LLM interface {
	Chat(ctx context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool) (openai.ChatCompletionMessage, error)
}

// ProfileStore - запросный интерфейс к сохраненным профилям.
type ProfileStore interface {
	AdvancedFilter(f database.FilterCriteria) ([]database.ProfileRow, error)
	GetProfileByName(name string) (*database.ProfileRow, error)
}

// ToolOutput - результат одного вызова инструмента, возвращается вызывающему
// вместе с финальным текстом.
type ToolOutput struct {
	Tool   string `json:"tool"`
	Result any    `json:"result"`
}

// Reply - финальный ответ агента.
type Reply struct {
	Response    string       `json:"response"`
	ToolOutputs []ToolOutput `json:"tool_outputs"`
}

type Agent struct {
	llm       LLM
	store     ProfileStore
	log       *logger.Zap
	exportDir string
}

func New(llm LLM, store ProfileStore, log *logger.Zap, exportDir string) *Agent {
	if exportDir == "" {
		exportDir = "exports"
	}
	return &Agent{
		llm:       llm,
		store:     store,
		log:       log,
		exportDir: exportDir,
	}
}

// ProcessPrompt обрабатывает запрос пользователя. На каждом ходе транскрипт
// отправляется LLM с декларациями инструментов; ответ без вызовов
// инструментов завершает цикл. Любая ошибка хода прерывает цикл целиком.
func (a *Agent) ProcessPrompt(ctx context.Context, prompt string) (*Reply, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}
	toolOutputs := []ToolOutput{}

	for turn := 1; turn <= MaxTurns; turn++ {
		msg, err := a.llm.Chat(ctx, messages, getTools())
		if err != nil {
			return nil, fmt.Errorf("ход %d: %w", turn, err)
		}

		if len(msg.ToolCalls) == 0 {
			a.log.Info("Агент завершил работу", zap.Int("turns", turn), zap.Int("tool_calls", len(toolOutputs)))
			return &Reply{Response: msg.Content, ToolOutputs: toolOutputs}, nil
		}

		messages = append(messages, msg)

		for _, call := range msg.ToolCalls {
			result, err := a.dispatch(call)
			if err != nil {
				return nil, fmt.Errorf("инструмент %s: %w", call.Function.Name, err)
			}

			toolOutputs = append(toolOutputs, ToolOutput{
				Tool:   call.Function.Name,
				Result: result,
			})

			raw, err := json.Marshal(result)
			if err != nil {
				return nil, fmt.Errorf("сериализация результата %s: %w", call.Function.Name, err)
			}
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    string(raw),
				ToolCallID: call.ID,
			})
		}
	}

	a.log.Warn("Агент достиг лимита ходов", zap.Int("max_turns", MaxTurns))
	return &Reply{Response: maxTurnsMessage, ToolOutputs: toolOutputs}, nil
}

func (a *Agent) dispatch(call openai.ToolCall) (any, error) {
	switch call.Function.Name {
	case toolFilterProfiles:
		return a.filterProfiles(call.Function.Arguments)
	case toolExportCSV:
		return a.exportCSV(call.Function.Arguments)
	case toolGetProfileByName:
		return a.getProfileByName(call.Function.Arguments)
	default:
		return nil, fmt.Errorf("неизвестный инструмент: %s", call.Function.Name)
	}
}
