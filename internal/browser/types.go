// Package browser реализует управление сессией LinkedIn через Playwright:
// вход в аккаунт, извлечение профилей из поисковой выдачи и данных об
// образовании со страниц профилей.
package browser

import (
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"linkedinAgent/internal/database"
	"linkedinAgent/internal/logger"
)

type Config struct {
	Email           string
	Password        string
	Headless        bool
	Display         string
	DebugDir        string
	MaxPages        int           // Потолок страниц выдачи за один запуск
	NavigateTimeout time.Duration
	LoadTimeout     time.Duration
}

type Browser struct {
	cfg Config
	log *logger.Zap
}

// Session - один аутентифицированный браузерный контекст. Владелец обязан
// вызвать Close, иначе нативные процессы браузера останутся висеть.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	cfg     Config
	log     *logger.Zap

	mu     sync.Mutex
	closed bool
}

// CandidateProfile - минимально заполненный профиль из поисковой выдачи.
type CandidateProfile struct {
	Rank     int
	Name     string
	URL      string
	Location *string
	ImageURL *string
	Position *string
}

// SearchResult - итог извлечения выдачи. Ошибки не пробрасываются наружу:
// любой сбой деградирует в Success=false с пустым списком и диагностикой.
type SearchResult struct {
	Success  bool
	Profiles []CandidateProfile
	Pages    int
	Message  string
}

// rawProfile - профиль в том виде, как его вернул DOM-экстрактор страницы.
type rawProfile struct {
	Name     string
	URL      string
	Location *string
	ImageURL *string
	Position *string
}

// Education переиспользует модель хранения.
type Education = database.Education
