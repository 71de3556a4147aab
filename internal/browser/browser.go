package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"linkedinAgent/internal/logger"
)

const (
	loginURL         = "https://www.linkedin.com/login"
	loginSettleDelay = 3 * time.Second
	loggedInSelector = ".global-nav__me-photo, .feed-identity-module, #global-nav"
)

func New(cfg Config, log *logger.Zap) *Browser {
	if cfg.NavigateTimeout == 0 {
		cfg.NavigateTimeout = 30 * time.Second
	}
	if cfg.LoadTimeout == 0 {
		cfg.LoadTimeout = 10 * time.Second
	}
	if cfg.MaxPages == 0 {
		cfg.MaxPages = 1
	}
	if cfg.DebugDir == "" {
		cfg.DebugDir = "debug_screenshots"
	}
	return &Browser{cfg: cfg, log: log}
}

// Login запускает браузер, входит в LinkedIn и возвращает сессию.
// Неуспешный вход терминален: ресурсы освобождаются, возвращается ошибка.
func (b *Browser) Login(ctx context.Context) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("запуск playwright: %w", err)
	}

	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(b.cfg.Headless),
		Args: []string{
			"--no-sandbox",
			"--disable-blink-features=AutomationControlled",
		},
	}
	if b.cfg.Display != "" {
		opts.Env = map[string]string{"DISPLAY": b.cfg.Display}
	}

	browser, err := pw.Chromium.Launch(opts)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("запуск браузера: %w", err)
	}

	browserCtx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1920, Height: 1080},
		UserAgent: playwright.String(
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),
	})
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("создание контекста: %w", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		_ = browserCtx.Close()
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("создание страницы: %w", err)
	}

	s := &Session{
		pw:      pw,
		browser: browser,
		context: browserCtx,
		page:    page,
		cfg:     b.cfg,
		log:     b.log,
	}

	if err := s.login(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	return s, nil
}

func (s *Session) login(ctx context.Context) error {
	s.log.Info("Вход в LinkedIn", zap.String("email", s.cfg.Email))

	if _, err := s.page.Goto(loginURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(s.cfg.NavigateTimeout.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("открытие страницы входа: %w", err)
	}
	s.waitForPageLoad(s.cfg.LoadTimeout)

	if err := s.page.Fill(`input[name="session_key"]`, s.cfg.Email); err != nil {
		return fmt.Errorf("ввод email: %w", err)
	}
	if err := s.page.Fill(`input[name="session_password"]`, s.cfg.Password); err != nil {
		return fmt.Errorf("ввод пароля: %w", err)
	}
	if err := s.page.Click(`button[type="submit"]`); err != nil {
		return fmt.Errorf("отправка формы входа: %w", err)
	}

	time.Sleep(loginSettleDelay)

	loggedIn := true
	if _, err := s.page.WaitForSelector(loggedInSelector, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		loggedIn = false
	}

	currentURL := s.page.URL()
	if !loggedIn && !containsFeed(currentURL) {
		s.saveScreenshot("login_fail")
		return fmt.Errorf("вход не выполнен, текущий URL: %s", currentURL)
	}

	s.log.Info("Вход выполнен успешно")
	return nil
}

// Close освобождает контекст, браузер и playwright. Повторные вызовы безопасны.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.context != nil {
		if err := s.context.Close(); err != nil {
			s.log.Warn("Ошибка закрытия контекста", zap.Error(err))
		}
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			s.log.Warn("Ошибка закрытия браузера", zap.Error(err))
		}
	}
	if s.pw != nil {
		return s.pw.Stop()
	}
	return nil
}
