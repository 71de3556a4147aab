package agent

import "github.com/sashabaranov/go-openai"

const (
	toolFilterProfiles   = "filter_profiles_tool"
	toolExportCSV        = "export_csv_tool"
	toolGetProfileByName = "get_profile_by_name_tool"
)

func getTools() []openai.Tool {
	return []openai.Tool{
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        toolFilterProfiles,
				Description: "Фильтровать сохраненные LinkedIn профили по набору критериев.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"keyword": map[string]interface{}{
							"type":        "string",
							"description": "Подстрока для поиска по имени, позиции и ключевому слову",
						},
						"location": map[string]interface{}{
							"type":        "string",
							"description": "Подстрока локации ('Morocco' означает любую локацию)",
						},
						"gender": map[string]interface{}{
							"type":        "string",
							"description": "Пол: Male, Female или any",
						},
						"min_age": map[string]interface{}{
							"type":        "integer",
							"description": "Минимальный оцененный возраст включительно",
						},
						"max_age": map[string]interface{}{
							"type":        "integer",
							"description": "Максимальный оцененный возраст включительно",
						},
						"education": map[string]interface{}{
							"type":        "string",
							"description": "Подстрока для поиска по образованию",
						},
						"limit": map[string]interface{}{
							"type":        "integer",
							"description": "Максимальное число результатов",
						},
					},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        toolExportCSV,
				Description: "Экспортировать профили в CSV файл. Используй когда пользователь просит сохранить, скачать или выгрузить данные.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"profiles": map[string]interface{}{
							"type":        "array",
							"description": "Список профилей для экспорта",
						},
						"filename": map[string]interface{}{
							"type":        "string",
							"description": "Имя файла (по умолчанию filtered_profiles.csv)",
						},
					},
					"required": []string{"profiles"},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        toolGetProfileByName,
				Description: "Получить профиль по точному совпадению имени.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"name": map[string]interface{}{
							"type":        "string",
							"description": "Точное имя профиля",
						},
					},
					"required": []string{"name"},
				},
			},
		},
	}
}
