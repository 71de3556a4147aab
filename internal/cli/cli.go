package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"linkedinAgent/internal/agent"
	"linkedinAgent/internal/cli/commands"
	"linkedinAgent/internal/cli/ui"
	"linkedinAgent/internal/database"
	"linkedinAgent/internal/locations"
	"linkedinAgent/internal/logger"
	"linkedinAgent/internal/workflow"
)

type CLI struct {
	log       *logger.Zap
	locations *locations.Resolver
	rl        *readline.Instance

	scrapeHandler *commands.ScrapeHandler
	agentHandler  *commands.AgentHandler
	filterHandler *commands.FilterHandler
	logsHandler   *commands.LogsHandler
}

func New(flow *workflow.Orchestrator, ag *agent.Agent, repo *database.ProfileRepository, resolver *locations.Resolver, log *logger.Zap) *CLI {
	cli := &CLI{
		log:       log,
		locations: resolver,
	}

	// Инициализация handlers
	cli.scrapeHandler = commands.NewScrapeHandler(flow, log.Logger)
	cli.agentHandler = commands.NewAgentHandler(ag, log.Logger)
	cli.filterHandler = commands.NewFilterHandler(repo, log.Logger)
	cli.logsHandler = commands.NewLogsHandler(flow)

	// Инициализация readline
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     ".linkedin-agent-history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		log.Warn("Не удалось инициализировать readline, будет использован fallback режим")
	} else {
		cli.rl = rl
	}

	return cli
}

func (c *CLI) readLine() (string, error) {
	if c.rl != nil {
		return c.rl.Readline()
	}
	// Fallback для работы без readline
	reader := bufio.NewReader(os.Stdin)
	println(ui.ColorCyan + "> " + ui.ColorReset)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *CLI) closeReadline() {
	if c.rl != nil {
		c.rl.Close()
	}
}

func (c *CLI) Run(ctx context.Context) {
	ui.PrintWelcome()
	defer c.closeReadline()

	for {
		// Проверка отмены контекста
		select {
		case <-ctx.Done():
			println("\n" + ui.ColorCyan + ui.IconWave + " Получен сигнал завершения..." + ui.ColorReset)
			return
		default:
		}

		line, err := c.readLine()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			break
		}

		line = strings.TrimSpace(line)

		if line == "" {
			continue
		}

		c.handleCommand(ctx, line)
	}
}

func (c *CLI) handleCommand(ctx context.Context, line string) {
	switch {
	case line == "exit":
		println(ui.ColorCyan + ui.IconWave + " До свидания!" + ui.ColorReset)
		os.Exit(0)

	case line == "clear":
		ui.ClearScreen()

	case strings.HasPrefix(line, "scrape "):
		args := strings.TrimPrefix(line, "scrape ")
		c.scrapeHandler.Run(ctx, args)

	case strings.HasPrefix(line, "ask "):
		prompt := strings.TrimPrefix(line, "ask ")
		c.agentHandler.Ask(ctx, prompt)

	case strings.HasPrefix(line, "filter "):
		args := strings.TrimPrefix(line, "filter ")
		c.filterHandler.Run(args)

	case line == "locations":
		c.printLocations()

	case line == "logs":
		c.logsHandler.Show()

	default:
		ui.PrintHelp()
	}
}

func (c *CLI) printLocations() {
	names := c.locations.Names()
	if len(names) == 0 {
		fmt.Println(ui.ColorGray + "Справочник локаций пуст, используется локация по умолчанию (Casablanca)" + ui.ColorReset)
		return
	}

	fmt.Printf("\n"+ui.ColorBold+"=== "+ui.IconGlobe+" Известные локации (%d) ==="+ui.ColorReset+"\n", len(names))
	for _, name := range names {
		fmt.Println("  " + name)
	}
	fmt.Println(ui.ColorGray + "Неизвестные имена получают локацию по умолчанию (Casablanca)" + ui.ColorReset)
	fmt.Println()
}
