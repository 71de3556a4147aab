package ui

import "fmt"

// PrintWelcome выводит приветствие
func PrintWelcome() {
	fmt.Println(ColorBold + IconRobot + " LinkedIn Agent v0.1.0" + ColorReset)
	fmt.Println(ColorGray + "Извлечение и обогащение LinkedIn профилей" + ColorReset)
	fmt.Println(ColorGray + "Используется: Chromium + OpenAI" + ColorReset)
	fmt.Println()
	PrintHelp()
	fmt.Println(ColorCyan + IconBulb + " Совет:" + ColorReset + " Команда " + ColorYellow + "locations" + ColorReset + " покажет доступные локации для " + ColorYellow + "scrape" + ColorReset)
	fmt.Println()
}

// PrintHelp выводит список доступных команд
func PrintHelp() {
	fmt.Println(ColorYellow + IconList + " Доступные команды:" + ColorReset)
	fmt.Println("  " + ColorGreen + "scrape" + ColorReset + " <запрос> @ <локация> [лимит] - Извлечь и обогатить профили")
	fmt.Println("  " + ColorGreen + "ask" + ColorReset + " <вопрос>                       - Запрос к агенту по сохраненным профилям")
	fmt.Println("  " + ColorGreen + "filter" + ColorReset + " ключ=значение ...           - Фильтр профилей (keyword, location, gender, min_age, max_age, education, limit)")
	fmt.Println("  " + ColorGreen + "locations" + ColorReset + "                          - Список известных локаций")
	fmt.Println("  " + ColorGreen + "logs" + ColorReset + "                               - Журнал последнего запуска")
	fmt.Println("  " + ColorGreen + "clear" + ColorReset + "                              - Очистить экран")
	fmt.Println("  " + ColorGreen + "exit" + ColorReset + "                               - Выход")
	fmt.Println()
}

// ClearScreen очищает терминал
func ClearScreen() {
	fmt.Print("\033[H\033[2J")
}
