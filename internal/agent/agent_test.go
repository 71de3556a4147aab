package agent

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"linkedinAgent/internal/database"
	"linkedinAgent/internal/logger"
)

type scriptedLLM struct {
	responses []openai.ChatCompletionMessage
	calls     int
}

func (l *scriptedLLM) Chat(ctx context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool) (openai.ChatCompletionMessage, error) {
	if l.calls >= len(l.responses) {
		return openai.ChatCompletionMessage{}, errors.New("сценарий исчерпан")
	}
	msg := l.responses[l.calls]
	l.calls++
	return msg, nil
}

type fakeStore struct {
	rows    []database.ProfileRow
	byName  *database.ProfileRow
	lastErr error
}

func (s *fakeStore) AdvancedFilter(f database.FilterCriteria) ([]database.ProfileRow, error) {
	return s.rows, s.lastErr
}

func (s *fakeStore) GetProfileByName(name string) (*database.ProfileRow, error) {
	return s.byName, s.lastErr
}

func newTestAgent(t *testing.T, llm LLM, store ProfileStore) *Agent {
	t.Helper()
	return New(llm, store, &logger.Zap{Logger: zap.NewNop()}, t.TempDir())
}

func toolCallMsg(name, arguments string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleAssistant,
		ToolCalls: []openai.ToolCall{
			{
				ID:   "call-1",
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      name,
					Arguments: arguments,
				},
			},
		},
	}
}

func TestProcessPromptFinalAnswerWithoutTools(t *testing.T) {
	llm := &scriptedLLM{responses: []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleAssistant, Content: "Найдено 3 профиля"},
	}}
	ag := newTestAgent(t, llm, &fakeStore{})

	reply, err := ag.ProcessPrompt(context.Background(), "сколько профилей?")

	require.NoError(t, err)
	assert.Equal(t, "Найдено 3 профиля", reply.Response)
	assert.Empty(t, reply.ToolOutputs)
	assert.Equal(t, 1, llm.calls)
}

func TestProcessPromptExecutesToolThenAnswers(t *testing.T) {
	llm := &scriptedLLM{responses: []openai.ChatCompletionMessage{
		toolCallMsg(toolFilterProfiles, `{"gender":"Female","limit":5}`),
		{Role: openai.ChatMessageRoleAssistant, Content: "Готово"},
	}}
	store := &fakeStore{rows: []database.ProfileRow{{Name: "Alice", Gender: "Female"}}}
	ag := newTestAgent(t, llm, store)

	reply, err := ag.ProcessPrompt(context.Background(), "найди женщин")

	require.NoError(t, err)
	assert.Equal(t, "Готово", reply.Response)
	require.Len(t, reply.ToolOutputs, 1)
	assert.Equal(t, toolFilterProfiles, reply.ToolOutputs[0].Tool)
}

func TestProcessPromptMaxTurnsGivesFixedReply(t *testing.T) {
	// Модель зацикливается на вызовах инструмента: шесть заготовленных ходов,
	// но цикл должен остановиться на пятом с фиксированным ответом
	responses := make([]openai.ChatCompletionMessage, 0, MaxTurns+1)
	for i := 0; i <= MaxTurns; i++ {
		responses = append(responses, toolCallMsg(toolFilterProfiles, `{}`))
	}
	llm := &scriptedLLM{responses: responses}
	ag := newTestAgent(t, llm, &fakeStore{})

	reply, err := ag.ProcessPrompt(context.Background(), "фильтруй бесконечно")

	require.NoError(t, err)
	assert.Equal(t, maxTurnsMessage, reply.Response)
	assert.Len(t, reply.ToolOutputs, MaxTurns)
	assert.Equal(t, MaxTurns, llm.calls)
}

func TestProcessPromptUnknownToolFails(t *testing.T) {
	llm := &scriptedLLM{responses: []openai.ChatCompletionMessage{
		toolCallMsg("delete_everything_tool", `{}`),
	}}
	ag := newTestAgent(t, llm, &fakeStore{})

	_, err := ag.ProcessPrompt(context.Background(), "сломай")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete_everything_tool")
}

func TestExportCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ag := New(&scriptedLLM{}, &fakeStore{}, &logger.Zap{Logger: zap.NewNop()}, dir)

	result, err := ag.exportCSV(`{
		"profiles": [
			{"name": "Alice", "profile_url": "https://www.linkedin.com/in/alice", "location": "Casablanca", "gender": "Female", "age": 28, "position": "Engineer"},
			{"name": "Bob", "profile_url": "https://www.linkedin.com/in/bob", "location": "Rabat", "gender": "Male"}
		],
		"filename": "report"
	}`)
	require.NoError(t, err)

	export, ok := result.(*ExportResult)
	require.True(t, ok)
	assert.Equal(t, "success", export.Status)
	assert.Equal(t, 2, export.Count)
	assert.Contains(t, export.Filename, "report.csv")
	assert.Equal(t, "/agent/download/"+export.Filename, export.DownloadURL)

	f, err := os.Open(filepath.Join(dir, export.Filename))
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{"Alice", "https://www.linkedin.com/in/alice", "Casablanca", "Female", "28", "", "Engineer"}, records[1])
	assert.Equal(t, []string{"Bob", "https://www.linkedin.com/in/bob", "Rabat", "Male", "", "", ""}, records[2])
}

func TestGetProfileByNameMissingIsNotError(t *testing.T) {
	llm := &scriptedLLM{responses: []openai.ChatCompletionMessage{
		toolCallMsg(toolGetProfileByName, `{"name":"Nobody"}`),
		{Role: openai.ChatMessageRoleAssistant, Content: "Профиль не найден"},
	}}
	ag := newTestAgent(t, llm, &fakeStore{byName: nil})

	reply, err := ag.ProcessPrompt(context.Background(), "найди Nobody")

	require.NoError(t, err)
	assert.Equal(t, "Профиль не найден", reply.Response)
	require.Len(t, reply.ToolOutputs, 1)
	assert.Nil(t, reply.ToolOutputs[0].Result)
}
