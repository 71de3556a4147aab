// Package workflow оркестрирует полный цикл извлечения и обогащения профилей:
// вход -> извлечение выдачи -> обогащение -> закрытие сессии -> сохранение.
package workflow

import (
	"context"
	"time"

	"linkedinAgent/internal/browser"
	"linkedinAgent/internal/database"
)

// Browser абстрагирует запуск аутентифицированной сессии.
type Browser interface {
	Login(ctx context.Context) (Session, error)
}

// Session - операции над живой браузерной сессией.
type Session interface {
	ExtractSearchProfiles(ctx context.Context, searchURL string) *browser.SearchResult
	ExtractEducation(ctx context.Context, profileURL string) ([]database.Education, error)
	Close() error
}

// Enricher - LLM операции обогащения профиля.
type Enricher interface {
	DetectGender(ctx context.Context, name string, imageURL *string) (string, error)
	EstimateAge(ctx context.Context, education []database.Education) (*int, error)
}

// ProfileSaver - сохранение профилей в реляционное хранилище.
type ProfileSaver interface {
	SaveProfiles(profiles []database.Profile) error
}

type Config struct {
	JSONOutputFile string
	DefaultLimit   int
	EducationDelay time.Duration // Пауза после извлечения образования
	ProfileDelay   time.Duration // Пауза после обработки профиля
	LogCapacity    int
}

// ProfileData - один обработанный профиль.
// Заполняется частично при извлечении и мутируется на шагах обогащения.
type ProfileData struct {
	Name         string               `json:"name"`
	URL          string               `json:"url"`
	Location     string               `json:"location"`
	Keyword      string               `json:"keyword"`
	Position     *string              `json:"position"`
	Gender       string               `json:"gender"`
	ImageURL     *string              `json:"image_url"`
	SearchRank   int                  `json:"search_rank"`
	Education    []database.Education `json:"education"`
	EstimatedAge *int                 `json:"estimated_age"`
}

// IsComplete сообщает, заполнены ли имя, URL, локация и пол.
// Пол "Unknown" считается заполненным значением.
func (p *ProfileData) IsComplete() bool {
	return p.Name != "" && p.URL != "" && p.Location != "" && p.Gender != ""
}

// Result - итог одного запуска воркфлоу. Частичные результаты сохраняются
// даже при ошибке на поздних шагах.
type Result struct {
	Success          bool          `json:"success"`
	Error            string        `json:"error,omitempty"`
	TotalProfiles    int           `json:"total_profiles"`
	CompleteProfiles int           `json:"complete_profiles"`
	Profiles         []ProfileData `json:"profiles"`     // Только полные профили
	AllProfiles      []ProfileData `json:"all_profiles"` // Все обработанные
	Logs             []string      `json:"logs,omitempty"`
}

// PlaywrightBrowser адаптирует конкретный браузер к интерфейсу Browser.
type PlaywrightBrowser struct {
	B *browser.Browser
}

func (p PlaywrightBrowser) Login(ctx context.Context) (Session, error) {
	return p.B.Login(ctx)
}
