package commands

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"linkedinAgent/internal/cli/ui"
	"linkedinAgent/internal/database"
)

// FilterHandler фильтрует сохраненные профили без участия LLM
type FilterHandler struct {
	repo *database.ProfileRepository
	log  *zap.Logger
}

func NewFilterHandler(repo *database.ProfileRepository, log *zap.Logger) *FilterHandler {
	return &FilterHandler{
		repo: repo,
		log:  log,
	}
}

// Run разбирает пары ключ=значение и выполняет фильтрацию
func (h *FilterHandler) Run(args string) {
	criteria, err := parseFilterArgs(args)
	if err != nil {
		fmt.Println(ui.ColorRed + ui.IconCross + " " + err.Error() + ui.ColorReset)
		fmt.Println(ui.ColorGray + "Пример: filter keyword=engineer gender=female min_age=25 limit=10" + ui.ColorReset)
		return
	}

	rows, err := h.repo.AdvancedFilter(criteria)
	if err != nil {
		h.log.Error("Ошибка фильтрации", zap.Error(err))
		fmt.Printf(ui.ColorRed+ui.IconCross+" Ошибка фильтрации: %v"+ui.ColorReset+"\n", err)
		return
	}

	if len(rows) == 0 {
		fmt.Println(ui.ColorGray + "Профили не найдены" + ui.ColorReset)
		return
	}

	fmt.Printf("\n"+ui.ColorBold+"=== "+ui.IconChart+" Найдено профилей: %d ==="+ui.ColorReset+"\n", len(rows))
	for _, row := range rows {
		age := "-"
		if row.Age != nil {
			age = strconv.Itoa(*row.Age)
		}
		fmt.Printf("  "+ui.ColorBold+"%s"+ui.ColorReset+" | %s | %s | возраст: %s\n", row.Name, row.Location, row.Gender, age)
		if row.ProfileURL != "" {
			fmt.Printf("     "+ui.ColorGray+"%s"+ui.ColorReset+"\n", row.ProfileURL)
		}
	}
	fmt.Println()
}

func parseFilterArgs(args string) (database.FilterCriteria, error) {
	var criteria database.FilterCriteria

	for _, token := range strings.Fields(args) {
		key, value, ok := strings.Cut(token, "=")
		if !ok {
			return criteria, fmt.Errorf("ожидается пара ключ=значение, получено %q", token)
		}
		value = strings.ReplaceAll(value, "_", " ")

		switch key {
		case "keyword":
			criteria.Keyword = value
		case "location":
			criteria.Location = value
		case "gender":
			criteria.Gender = value
		case "education":
			criteria.Education = value
		case "min_age":
			n, err := strconv.Atoi(value)
			if err != nil {
				return criteria, fmt.Errorf("min_age должен быть числом")
			}
			criteria.MinAge = &n
		case "max_age":
			n, err := strconv.Atoi(value)
			if err != nil {
				return criteria, fmt.Errorf("max_age должен быть числом")
			}
			criteria.MaxAge = &n
		case "limit":
			n, err := strconv.Atoi(value)
			if err != nil {
				return criteria, fmt.Errorf("limit должен быть числом")
			}
			criteria.Limit = n
		default:
			return criteria, fmt.Errorf("неизвестный критерий %q", key)
		}
	}

	return criteria, nil
}
