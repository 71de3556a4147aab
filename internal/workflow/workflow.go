package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"linkedinAgent/internal/database"
	"linkedinAgent/internal/locations"
	"linkedinAgent/internal/logger"
	"linkedinAgent/internal/runlog"
)

type Orchestrator struct {
	browser   Browser
	enricher  Enricher
	repo      ProfileSaver
	locations *locations.Resolver
	store     *DocumentStore
	log       *logger.Zap
	cfg       Config

	mu      sync.Mutex
	lastRun *runlog.Collector
}

func New(br Browser, enricher Enricher, repo ProfileSaver, resolver *locations.Resolver, log *logger.Zap, cfg Config) *Orchestrator {
	if cfg.DefaultLimit == 0 {
		cfg.DefaultLimit = 2
	}
	if cfg.EducationDelay == 0 {
		cfg.EducationDelay = 2 * time.Second
	}
	if cfg.ProfileDelay == 0 {
		cfg.ProfileDelay = 500 * time.Millisecond
	}

	return &Orchestrator{
		browser:   br,
		enricher:  enricher,
		repo:      repo,
		locations: resolver,
		store:     NewDocumentStore(cfg.JSONOutputFile),
		log:       log,
		cfg:       cfg,
	}
}

// Logs возвращает записи журнала последнего запуска в хронологическом порядке.
func (o *Orchestrator) Logs() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.lastRun == nil {
		return nil
	}
	return o.lastRun.Entries()
}

// Run выполняет один запуск воркфлоу: ключевое слово, имя локации, лимит
// профилей. Ошибка входа терминальна; ошибки извлечения и обогащения
// деградируют; ошибка сохранения возвращается с уже собранными профилями.
func (o *Orchestrator) Run(ctx context.Context, keyword, locationName string, limit int) *Result {
	rl := runlog.New(o.cfg.LogCapacity)
	o.mu.Lock()
	o.lastRun = rl
	o.mu.Unlock()

	if limit <= 0 {
		limit = o.cfg.DefaultLimit
	}

	locationID := o.locations.Resolve(locationName)
	searchURL := locations.BuildSearchURL(keyword, locationID)
	rl.Addf("Локация %q -> %s", locationName, locationID)

	rl.Add("Вход в LinkedIn...")
	session, err := o.browser.Login(ctx)
	if err != nil {
		o.log.Error("Вход не выполнен", zap.Error(err))
		rl.Addf("Вход не выполнен: %v", err)
		return &Result{Error: "Login failed", Profiles: []ProfileData{}, AllProfiles: []ProfileData{}, Logs: rl.Entries()}
	}
	defer func() {
		if err := session.Close(); err != nil {
			o.log.Warn("Ошибка закрытия сессии", zap.Error(err))
		}
	}()
	rl.Add("Вход выполнен")

	rl.Add("Извлечение профилей из поисковой выдачи...")
	all := o.extractAndEnrich(ctx, rl, session, searchURL, keyword, locationName, limit)

	complete := make([]ProfileData, 0, len(all))
	for _, p := range all {
		if p.IsComplete() {
			complete = append(complete, p)
		}
	}
	rl.Addf("Воркфлоу завершен: обработано %d профилей, полных %d", len(all), len(complete))

	result := &Result{
		Success:          true,
		TotalProfiles:    len(all),
		CompleteProfiles: len(complete),
		Profiles:         complete,
		AllProfiles:      all,
	}

	if err := o.persist(all); err != nil {
		o.log.Error("Ошибка сохранения результатов", zap.Error(err))
		rl.Addf("Ошибка сохранения: %v", err)
		result.Success = false
		result.Error = err.Error()
	}

	result.Logs = rl.Entries()
	return result
}

// extractAndEnrich собирает кандидатов и последовательно обогащает каждого.
// Список кандидатов усекается до лимита до начала обогащения, чтобы
// ограничить стоимость LLM вызовов.
func (o *Orchestrator) extractAndEnrich(ctx context.Context, rl *runlog.Collector, session Session, searchURL, keyword, locationName string, limit int) []ProfileData {
	res := session.ExtractSearchProfiles(ctx, searchURL)
	if !res.Success {
		rl.Addf("Не удалось извлечь профили: %s", res.Message)
		return []ProfileData{}
	}

	candidates := res.Profiles
	if len(candidates) > limit {
		rl.Addf("Найдено %d профилей, обрабатываем первые %d", len(candidates), limit)
		candidates = candidates[:limit]
	}

	profiles := make([]ProfileData, 0, len(candidates))
	for i, c := range candidates {
		rl.Addf("Профиль %d/%d: %s", i+1, len(candidates), c.Name)

		profile := ProfileData{
			Name:       c.Name,
			URL:        c.URL,
			Location:   locationName,
			Keyword:    keyword,
			Position:   c.Position,
			ImageURL:   c.ImageURL,
			SearchRank: c.Rank,
		}

		gender, err := o.enricher.DetectGender(ctx, profile.Name, profile.ImageURL)
		if err != nil {
			o.log.Warn("Ошибка определения пола", zap.String("name", profile.Name), zap.Error(err))
			rl.Addf("Ошибка определения пола: %v", err)
			gender = "Unknown"
		}
		profile.Gender = gender
		rl.Addf("Пол: %s", profile.Gender)

		if profile.URL != "" {
			o.enrichEducation(ctx, rl, session, &profile)
			time.Sleep(o.cfg.EducationDelay)
		}

		profiles = append(profiles, profile)
		time.Sleep(o.cfg.ProfileDelay)
	}

	return profiles
}

// enrichEducation извлекает образование и оценивает возраст.
// Любой сбой деградирует отдельное поле, не прерывая ни профиль, ни запуск.
func (o *Orchestrator) enrichEducation(ctx context.Context, rl *runlog.Collector, session Session, profile *ProfileData) {
	education, err := session.ExtractEducation(ctx, profile.URL)
	if err != nil {
		o.log.Warn("Ошибка извлечения образования", zap.String("url", profile.URL), zap.Error(err))
		rl.Addf("Ошибка извлечения образования: %v", err)
		return
	}
	profile.Education = education

	if len(education) == 0 {
		rl.Add("Данные об образовании не найдены")
		return
	}
	rl.Addf("Найдено %d записей об образовании", len(education))

	age, err := o.enricher.EstimateAge(ctx, education)
	if err != nil {
		o.log.Warn("Ошибка оценки возраста", zap.String("name", profile.Name), zap.Error(err))
		rl.Addf("Ошибка оценки возраста: %v", err)
		return
	}
	profile.EstimatedAge = age
	if age != nil {
		rl.Addf("Оценка возраста: %d лет", *age)
	} else {
		rl.Add("Возраст оценить не удалось")
	}
}

// persist дописывает профили в накопительный JSON документ и вставляет
// строки в реляционное хранилище.
func (o *Orchestrator) persist(profiles []ProfileData) error {
	if len(profiles) == 0 {
		return nil
	}

	if err := o.store.Merge(profiles); err != nil {
		return fmt.Errorf("сохранение JSON документа: %w", err)
	}

	rows := make([]database.Profile, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, toRecord(p))
	}
	if err := o.repo.SaveProfiles(rows); err != nil {
		return fmt.Errorf("сохранение в БД: %w", err)
	}

	o.log.Info("Результаты сохранены", zap.Int("profiles", len(profiles)))
	return nil
}

func toRecord(p ProfileData) database.Profile {
	education := ""
	if len(p.Education) > 0 {
		if raw, err := json.Marshal(p.Education); err == nil {
			education = string(raw)
		}
	}

	return database.Profile{
		Name:         p.Name,
		URL:          p.URL,
		Location:     p.Location,
		Keyword:      p.Keyword,
		Position:     p.Position,
		Gender:       p.Gender,
		ImageURL:     p.ImageURL,
		SearchRank:   p.SearchRank,
		EstimatedAge: p.EstimatedAge,
		Education:    education,
	}
}
