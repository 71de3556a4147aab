package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// saveScreenshot сохраняет скриншот страницы в каталог диагностики.
func (s *Session) saveScreenshot(prefix string) {
	if err := os.MkdirAll(s.cfg.DebugDir, 0o755); err != nil {
		s.log.Warn("Не удалось создать каталог диагностики", zap.Error(err))
		return
	}

	path := filepath.Join(s.cfg.DebugDir, fmt.Sprintf("%s_%d.png", prefix, time.Now().Unix()))
	if _, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		s.log.Warn("Не удалось сохранить скриншот", zap.Error(err))
		return
	}
	s.log.Info("Скриншот сохранен", zap.String("path", path))
}

// saveDebugArtifacts сохраняет скриншот и HTML снимок DOM для офлайн-отладки
// пустой выдачи.
func (s *Session) saveDebugArtifacts(prefix string) {
	s.saveScreenshot(prefix)

	if err := os.MkdirAll(s.cfg.DebugDir, 0o755); err != nil {
		return
	}
	content, err := s.page.Content()
	if err != nil {
		s.log.Warn("Не удалось получить HTML страницы", zap.Error(err))
		return
	}

	path := filepath.Join(s.cfg.DebugDir, fmt.Sprintf("%s_%d.html", prefix, time.Now().Unix()))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		s.log.Warn("Не удалось сохранить HTML снимок", zap.Error(err))
		return
	}
	s.log.Info("HTML снимок сохранен", zap.String("path", path))
}
