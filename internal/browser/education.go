package browser

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// educationExtractionJS разбирает секцию Education на странице профиля.
// Секция ищется по id, при неудаче - по заголовку h2. Для каждого поля
// записи действует первый сработавший селектор.
const educationExtractionJS = `() => {
	const educations = [];

	let eduSection = document.querySelector('section[id*="education"]');
	if (!eduSection) {
		for (const sec of document.querySelectorAll('section')) {
			const h2 = sec.querySelector('h2');
			if (h2 && h2.textContent.toLowerCase().includes('education')) {
				eduSection = sec;
				break;
			}
		}
	}
	if (!eduSection) return [];

	const items = eduSection.querySelectorAll(
		'div.display-flex.flex-row.justify-space-between'
	);

	items.forEach(block => {
		try {
			let school = null;
			let degree = null;
			let date_range = null;

			const schoolEl = block.querySelector('span[aria-hidden="true"]');
			if (schoolEl) school = schoolEl.textContent.trim();

			const degreeEl = block.querySelector('span.t-14.t-normal span.visually-hidden');
			if (degreeEl) degree = degreeEl.textContent.trim();

			const dateEl = block.querySelector('span.pvs-entity__caption-wrapper');
			if (dateEl) date_range = dateEl.textContent.trim();

			if (school || degree || date_range) {
				educations.push({
					school: school || null,
					degree: degree || null,
					date_range: date_range || null
				});
			}
		} catch (e) {
		}
	});

	return educations;
}`

// ExtractEducation открывает страницу профиля, ступенчато прокручивает ее для
// ленивой подгрузки и возвращает записи об образовании.
func (s *Session) ExtractEducation(ctx context.Context, profileURL string) ([]Education, error) {
	s.log.Info("Извлечение образования", zap.String("url", profileURL))

	if _, err := s.page.Goto(profileURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(s.cfg.NavigateTimeout.Milliseconds())),
	}); err != nil {
		return nil, fmt.Errorf("открытие профиля: %w", err)
	}
	s.waitForPageLoad(s.cfg.LoadTimeout)

	time.Sleep(time.Duration(2000+rand.Intn(1000)) * time.Millisecond)

	// Ступенчатая прокрутка вниз провоцирует подгрузку секции Education.
	for i := 0; i < 5; i++ {
		script := fmt.Sprintf("window.scrollTo(0, %d)", 600*(i+1))
		if _, err := s.page.Evaluate(script); err != nil {
			s.log.Warn("Ошибка прокрутки профиля", zap.Error(err))
			break
		}
		time.Sleep(time.Duration(800+rand.Intn(500)) * time.Millisecond)
	}

	if _, err := s.page.Evaluate("window.scrollTo(0, document.body.scrollHeight)"); err == nil {
		time.Sleep(1500 * time.Millisecond)
	}
	if _, err := s.page.Evaluate("window.scrollTo(0, document.body.scrollHeight * 0.5)"); err == nil {
		time.Sleep(time.Second)
	}

	result, err := s.page.Evaluate(educationExtractionJS)
	if err != nil {
		return nil, fmt.Errorf("извлечение образования: %w", err)
	}

	items, ok := result.([]interface{})
	if !ok {
		return []Education{}, nil
	}

	entries := make([]Education, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		e := Education{}
		if v, ok := m["school"].(string); ok && v != "" {
			e.School = &v
		}
		if v, ok := m["degree"].(string); ok && v != "" {
			e.Degree = &v
		}
		if v, ok := m["date_range"].(string); ok && v != "" {
			e.DateRange = &v
		}
		if e.School == nil && e.Degree == nil && e.DateRange == nil {
			continue
		}
		entries = append(entries, e)
	}

	s.log.Info("Образование извлечено", zap.Int("entries", len(entries)))
	return entries, nil
}
