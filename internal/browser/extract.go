package browser

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

const nextButtonSelector = "button.artdeco-pagination__button--next"

// searchExtractionJS извлекает кандидатов из текущей страницы выдачи.
// Для каждого поля используется каскад альтернативных селекторов: верстка
// LinkedIn нестабильна, побеждает первый селектор с непустым текстом.
const searchExtractionJS = `() => {
	const results = [];
	const seenInThisPage = new Set();

	const containerSelectors = [
		'li.reusable-search__result-container',
		'div.entity-result',
		'div[class*="search-result"]',
		'li[class*="search"]',
		'div[data-chameleon-result-urn]'
	];

	const allContainers = [];
	containerSelectors.forEach(selector => {
		document.querySelectorAll(selector).forEach(el => {
			if (!allContainers.includes(el)) {
				allContainers.push(el);
			}
		});
	});

	allContainers.forEach(container => {
		try {
			let profileLink = container.querySelector('a[href*="/in/"]');
			if (!profileLink) {
				for (const link of container.querySelectorAll('a')) {
					if (link.href && link.href.includes('/in/')) {
						profileLink = link;
						break;
					}
				}
			}
			if (!profileLink || !profileLink.href) return;

			let url = profileLink.href.split('?')[0].replace(/\/$/, '');
			if (!url || !url.includes('/in/')) return;
			if (seenInThisPage.has(url)) return;
			seenInThisPage.add(url);

			let name = null;
			const nameSelectors = [
				'span.entity-result__title-text span[aria-hidden="true"]',
				'span[aria-hidden="true"]',
				'div.entity-result__title-text',
				'a[href*="/in/"] span:first-child',
				'.entity-result__title-line'
			];
			for (const selector of nameSelectors) {
				const el = container.querySelector(selector);
				if (el && el.textContent.trim()) {
					name = el.textContent.trim().replace(/View .* profile/i, '').trim();
					if (name) break;
				}
			}

			let location = null;
			const locationSelectors = [
				'.entity-result__secondary-subtitle',
				'div[class*="secondary-subtitle"]',
				'div[class*="location"]',
				'.entity-result__summary'
			];
			for (const selector of locationSelectors) {
				const el = container.querySelector(selector);
				if (el && el.textContent.trim()) {
					location = el.textContent.trim();
					break;
				}
			}

			let imageUrl = null;
			const imageSelectors = [
				'img.presence-entity__image',
				'img[class*="presence"]',
				'img.EntityPhoto',
				'img[class*="entity-result"]',
				'img'
			];
			for (const selector of imageSelectors) {
				const el = container.querySelector(selector);
				if (el && el.src &&
					!el.src.includes('data:image') &&
					!el.src.includes('static')) {
					imageUrl = el.src;
					break;
				}
			}

			let position = null;
			const positionSelectors = [
				'.entity-result__primary-subtitle',
				'div.entity-result__primary-subtitle',
				'div[class*="primary-subtitle"]',
				'div.t-14.t-black.t-normal'
			];
			for (const selector of positionSelectors) {
				const el = container.querySelector(selector);
				if (el && el.textContent.trim()) {
					position = el.textContent.trim();
					break;
				}
			}

			results.push({
				name: name,
				url: url,
				location: location,
				imageUrl: imageUrl,
				position: position
			});
		} catch (e) {
		}
	});

	return results;
}`

// ExtractSearchProfiles собирает дедуплицированный, упорядоченный по рангу
// список кандидатов из поисковой выдачи, проходя до cfg.MaxPages страниц.
// Ошибки не пробрасываются: любой сбой деградирует в пустой результат с
// диагностическим сообщением.
func (s *Session) ExtractSearchProfiles(ctx context.Context, searchURL string) *SearchResult {
	s.log.Info("Переход к поисковой выдаче", zap.String("url", searchURL))

	if _, err := s.page.Goto(searchURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(s.cfg.NavigateTimeout.Milliseconds())),
	}); err != nil {
		return &SearchResult{Message: fmt.Sprintf("Ошибка навигации: %v", err)}
	}
	s.waitForPageLoad(s.cfg.LoadTimeout)

	time.Sleep(2 * time.Second)
	s.scrollPageGradually(3)
	time.Sleep(time.Second)

	var collected []CandidateProfile
	seen := make(map[string]bool)
	pages := 0

	raw, err := s.extractFromDOM()
	if err != nil {
		return &SearchResult{Message: fmt.Sprintf("Ошибка извлечения: %v", err)}
	}
	pages++
	added := collect(&collected, seen, raw)
	s.log.Info("Страница выдачи обработана",
		zap.Int("page", pages), zap.Int("added", added), zap.Int("total", len(collected)))

	// Пагинация: потолок страниц ограничивает цикл независимо от наличия
	// кнопки "next". По умолчанию потолок равен 1.
	for pages < s.cfg.MaxPages {
		hasNext, err := s.clickNextPage()
		if err != nil {
			s.log.Error("Ошибка пагинации", zap.Error(err))
			time.Sleep(2 * time.Second)
			break
		}
		if !hasNext {
			break
		}

		time.Sleep(time.Duration(2500+rand.Intn(1500)) * time.Millisecond)
		s.waitForPageLoad(s.cfg.LoadTimeout)
		s.scrollPageGradually(3)
		time.Sleep(time.Second)
		pages++

		raw, err := s.extractFromDOM()
		if err != nil {
			s.log.Error("Ошибка извлечения страницы", zap.Int("page", pages), zap.Error(err))
			break
		}

		added := collect(&collected, seen, raw)
		s.log.Info("Страница выдачи обработана",
			zap.Int("page", pages), zap.Int("added", added), zap.Int("total", len(collected)))

		if added == 0 {
			// Новых профилей нет - вероятно конец выдачи.
			if btn, _ := s.page.QuerySelector(nextButtonSelector); btn == nil {
				break
			}
		}

		time.Sleep(time.Duration(1000+rand.Intn(1000)) * time.Millisecond)
	}

	if len(collected) == 0 {
		s.saveDebugArtifacts("no_profiles")
		return &SearchResult{
			Pages:    pages,
			Profiles: []CandidateProfile{},
			Message:  "Профили не найдены, диагностика сохранена в " + s.cfg.DebugDir,
		}
	}

	return &SearchResult{
		Success:  true,
		Profiles: collected,
		Pages:    pages,
		Message:  fmt.Sprintf("Извлечено %d профилей с %d страниц", len(collected), pages),
	}
}

// clickNextPage кликает по кнопке следующей страницы.
// Возвращает false когда кнопки нет или она отключена.
func (s *Session) clickNextPage() (bool, error) {
	button, err := s.page.QuerySelector(nextButtonSelector)
	if err != nil || button == nil {
		return false, nil
	}

	disabled, err := button.Evaluate(`el => el.disabled || el.getAttribute("aria-disabled") === "true"`)
	if err == nil {
		if d, ok := disabled.(bool); ok && d {
			return false, nil
		}
	}

	if err := button.ScrollIntoViewIfNeeded(); err == nil {
		time.Sleep(500 * time.Millisecond)
	}
	if err := button.Click(); err != nil {
		// Прямой клик не удался - пробуем клик из скрипта.
		s.log.Warn("Клик по кнопке пагинации не удался, пробуем JS", zap.Error(err))
		script := fmt.Sprintf(`() => {
			const btn = document.querySelector('%s');
			if (btn && !btn.disabled) btn.click();
		}`, nextButtonSelector)
		if _, err := s.page.Evaluate(script); err != nil {
			return false, fmt.Errorf("JS клик по пагинации: %w", err)
		}
	}

	return true, nil
}

func (s *Session) extractFromDOM() ([]rawProfile, error) {
	result, err := s.page.Evaluate(searchExtractionJS)
	if err != nil {
		return nil, fmt.Errorf("выполнение JavaScript: %w", err)
	}

	items, ok := result.([]interface{})
	if !ok {
		return []rawProfile{}, nil
	}

	profiles := make([]rawProfile, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		p := rawProfile{}
		if v, ok := m["name"].(string); ok {
			p.Name = v
		}
		if v, ok := m["url"].(string); ok {
			p.URL = v
		}
		if v, ok := m["location"].(string); ok && v != "" {
			p.Location = &v
		}
		if v, ok := m["imageUrl"].(string); ok && v != "" {
			p.ImageURL = &v
		}
		if v, ok := m["position"].(string); ok && v != "" {
			p.Position = &v
		}
		profiles = append(profiles, p)
	}

	return profiles, nil
}

// collect добавляет новые профили в общий список, дедуплицируя по каноническому
// URL. Ранг присваивается в момент вставки и далее не меняется.
func collect(collected *[]CandidateProfile, seen map[string]bool, raw []rawProfile) int {
	added := 0
	for _, p := range raw {
		url := canonicalURL(p.URL)
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true

		name := p.Name
		if name == "" {
			name = "Unknown"
		}

		*collected = append(*collected, CandidateProfile{
			Rank:     len(*collected) + 1,
			Name:     name,
			URL:      url,
			Location: p.Location,
			ImageURL: p.ImageURL,
			Position: p.Position,
		})
		added++
	}
	return added
}

// canonicalURL отрезает query string и завершающий слэш.
// URL не похожий на профиль (/in/) отбрасывается.
func canonicalURL(raw string) string {
	url := raw
	if i := strings.Index(url, "?"); i >= 0 {
		url = url[:i]
	}
	url = strings.TrimSuffix(url, "/")
	if !strings.Contains(url, "/in/") {
		return ""
	}
	return url
}
