package browser

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// waitForPageLoad ждет networkidle с ограниченным таймаутом.
// По таймауту деградирует в фиксированную паузу вместо ошибки.
func (s *Session) waitForPageLoad(timeout time.Duration) {
	err := s.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		s.log.Warn("Таймаут ожидания networkidle", zap.Error(err))
		time.Sleep(2 * time.Second)
	}
}

// scrollPageGradually постепенно прокручивает страницу вниз, чтобы
// спровоцировать ленивую подгрузку контента, затем возвращается наверх.
func (s *Session) scrollPageGradually(numScrolls int) {
	for i := 0; i < numScrolls; i++ {
		script := fmt.Sprintf(
			"window.scrollTo(0, document.body.scrollHeight * %d / %d)", i+1, numScrolls)
		if _, err := s.page.Evaluate(script); err != nil {
			s.log.Warn("Ошибка прокрутки", zap.Error(err))
			return
		}
		time.Sleep(500 * time.Millisecond)
	}
	if _, err := s.page.Evaluate("window.scrollTo(0, 0)"); err != nil {
		s.log.Warn("Ошибка возврата наверх", zap.Error(err))
	}
	time.Sleep(500 * time.Millisecond)
}

func containsFeed(url string) bool {
	return strings.Contains(url, "feed")
}
