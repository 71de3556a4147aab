package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"linkedinAgent/internal/cli/ui"
	"linkedinAgent/internal/workflow"
)

// ScrapeHandler запускает воркфлоу извлечения и обогащения профилей
type ScrapeHandler struct {
	flow *workflow.Orchestrator
	log  *zap.Logger
}

func NewScrapeHandler(flow *workflow.Orchestrator, log *zap.Logger) *ScrapeHandler {
	return &ScrapeHandler{
		flow: flow,
		log:  log,
	}
}

// Run разбирает строку "запрос @ локация [лимит]" и запускает воркфлоу
func (h *ScrapeHandler) Run(ctx context.Context, args string) {
	keyword, location, limit, err := parseScrapeArgs(args)
	if err != nil {
		fmt.Println(ui.ColorRed + ui.IconCross + " " + err.Error() + ui.ColorReset)
		fmt.Println(ui.ColorGray + "Пример: scrape software engineer @ casablanca 5" + ui.ColorReset)
		return
	}

	fmt.Printf(ui.ColorCyan+ui.IconPlay+" Поиск: %q, локация: %q, лимит: %d"+ui.ColorReset+"\n", keyword, location, limit)
	fmt.Println(ui.ColorGray + "Это может занять несколько минут..." + ui.ColorReset)

	result := h.flow.Run(ctx, keyword, location, limit)

	if !result.Success {
		fmt.Printf(ui.ColorRed+ui.IconCross+" Запуск завершился с ошибкой: %s"+ui.ColorReset+"\n", result.Error)
		if result.TotalProfiles == 0 {
			return
		}
		fmt.Println(ui.ColorGray + "Частичные результаты все равно собраны:" + ui.ColorReset)
	}

	fmt.Printf(ui.ColorGreen+ui.IconCheckmark+" Обработано профилей: %d, полных: %d"+ui.ColorReset+"\n", result.TotalProfiles, result.CompleteProfiles)
	for _, p := range result.AllProfiles {
		printProfileLine(p)
	}
	fmt.Println()
}

func printProfileLine(p workflow.ProfileData) {
	age := "-"
	if p.EstimatedAge != nil {
		age = strconv.Itoa(*p.EstimatedAge)
	}
	position := ""
	if p.Position != nil {
		position = *p.Position
	}
	fmt.Printf("  "+ui.ColorBold+"#%d %s"+ui.ColorReset+" | %s | возраст: %s", p.SearchRank, p.Name, p.Gender, age)
	if position != "" {
		fmt.Printf(" | %s", position)
	}
	fmt.Println()
	if p.URL != "" {
		fmt.Printf("     "+ui.ColorGray+"%s"+ui.ColorReset+"\n", p.URL)
	}
}

// parseScrapeArgs разбирает "запрос @ локация [лимит]".
// Лимит - последнее числовое слово после локации, 0 означает значение по умолчанию.
func parseScrapeArgs(args string) (keyword, location string, limit int, err error) {
	parts := strings.SplitN(args, "@", 2)
	if len(parts) != 2 {
		return "", "", 0, fmt.Errorf("не указана локация (ожидается формат: запрос @ локация)")
	}

	keyword = strings.TrimSpace(parts[0])
	if keyword == "" {
		return "", "", 0, fmt.Errorf("не указан поисковый запрос")
	}

	fields := strings.Fields(parts[1])
	if len(fields) == 0 {
		return "", "", 0, fmt.Errorf("не указана локация")
	}
	if n, convErr := strconv.Atoi(fields[len(fields)-1]); convErr == nil && len(fields) > 1 {
		limit = n
		fields = fields[:len(fields)-1]
	}
	location = strings.Join(fields, " ")

	return keyword, location, limit, nil
}
