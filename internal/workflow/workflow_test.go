package workflow

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"linkedinAgent/internal/browser"
	"linkedinAgent/internal/database"
	"linkedinAgent/internal/locations"
	"linkedinAgent/internal/logger"
)

type fakeSession struct {
	result    *browser.SearchResult
	searchURL string
	education []database.Education
	eduErr    error
	closed    bool
}

func (s *fakeSession) ExtractSearchProfiles(ctx context.Context, searchURL string) *browser.SearchResult {
	s.searchURL = searchURL
	return s.result
}

func (s *fakeSession) ExtractEducation(ctx context.Context, profileURL string) ([]database.Education, error) {
	return s.education, s.eduErr
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

type fakeBrowser struct {
	session  *fakeSession
	loginErr error
}

func (b *fakeBrowser) Login(ctx context.Context) (Session, error) {
	if b.loginErr != nil {
		return nil, b.loginErr
	}
	return b.session, nil
}

type fakeEnricher struct {
	gender      string
	genderErr   error
	age         *int
	ageErr      error
	genderCalls int
	ageCalls    int
}

func (e *fakeEnricher) DetectGender(ctx context.Context, name string, imageURL *string) (string, error) {
	e.genderCalls++
	return e.gender, e.genderErr
}

func (e *fakeEnricher) EstimateAge(ctx context.Context, education []database.Education) (*int, error) {
	e.ageCalls++
	return e.age, e.ageErr
}

type fakeSaver struct {
	saved []database.Profile
	err   error
}

func (s *fakeSaver) SaveProfiles(profiles []database.Profile) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, profiles...)
	return nil
}

func candidates(n int) []browser.CandidateProfile {
	out := make([]browser.CandidateProfile, 0, n)
	for i := 0; i < n; i++ {
		name := string(rune('A' + i))
		out = append(out, browser.CandidateProfile{
			Rank: i + 1,
			Name: name,
			URL:  "https://www.linkedin.com/in/" + name,
		})
	}
	return out
}

func newTestOrchestrator(t *testing.T, br Browser, enricher Enricher, saver ProfileSaver) *Orchestrator {
	t.Helper()

	resolver, _ := locations.Load(filepath.Join(t.TempDir(), "missing.csv"))
	log := &logger.Zap{Logger: zap.NewNop()}

	return New(br, enricher, saver, resolver, log, Config{
		JSONOutputFile: filepath.Join(t.TempDir(), "profiles.json"),
		DefaultLimit:   2,
		EducationDelay: time.Millisecond,
		ProfileDelay:   time.Millisecond,
	})
}

func TestRunTruncatesToLimitBeforeEnrichment(t *testing.T) {
	session := &fakeSession{
		result: &browser.SearchResult{Success: true, Profiles: candidates(5), Pages: 1},
	}
	enricher := &fakeEnricher{gender: "Male"}
	saver := &fakeSaver{}
	o := newTestOrchestrator(t, &fakeBrowser{session: session}, enricher, saver)

	result := o.Run(context.Background(), "engineer", "casablanca", 2)

	require.True(t, result.Success)
	assert.Equal(t, 2, result.TotalProfiles)
	// Лимит применяется до обогащения: ровно по одному LLM вызову на профиль
	assert.Equal(t, 2, enricher.genderCalls)
	assert.Len(t, saver.saved, 2)
	assert.True(t, session.closed)
	// Неизвестная локация резолвится в идентификатор по умолчанию
	assert.Contains(t, session.searchURL, locations.DefaultLocationID)
}

func TestRunLoginFailureIsTerminal(t *testing.T) {
	enricher := &fakeEnricher{}
	saver := &fakeSaver{}
	o := newTestOrchestrator(t, &fakeBrowser{loginErr: errors.New("bad credentials")}, enricher, saver)

	result := o.Run(context.Background(), "engineer", "casablanca", 2)

	assert.False(t, result.Success)
	assert.Equal(t, "Login failed", result.Error)
	assert.Empty(t, result.AllProfiles)
	assert.Equal(t, 0, enricher.genderCalls)
	assert.Empty(t, saver.saved)
	assert.NotEmpty(t, result.Logs)
}

func TestRunNoCandidatesSucceedsEmpty(t *testing.T) {
	session := &fakeSession{
		result: &browser.SearchResult{Message: "Профили не найдены"},
	}
	saver := &fakeSaver{}
	o := newTestOrchestrator(t, &fakeBrowser{session: session}, &fakeEnricher{}, saver)

	result := o.Run(context.Background(), "engineer", "casablanca", 2)

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.TotalProfiles)
	assert.Equal(t, 0, result.CompleteProfiles)
	assert.Empty(t, saver.saved)
	assert.True(t, session.closed)
}

func TestRunCompleteProfilesAreSubsetOfAll(t *testing.T) {
	profiles := []browser.CandidateProfile{
		{Rank: 1, Name: "Alice", URL: "https://www.linkedin.com/in/alice"},
		{Rank: 2, Name: "Bob", URL: ""}, // без URL профиль неполный
	}
	session := &fakeSession{
		result: &browser.SearchResult{Success: true, Profiles: profiles, Pages: 1},
	}
	o := newTestOrchestrator(t, &fakeBrowser{session: session}, &fakeEnricher{gender: "Unknown"}, &fakeSaver{})

	result := o.Run(context.Background(), "engineer", "casablanca", 5)

	require.True(t, result.Success)
	assert.Equal(t, 2, result.TotalProfiles)
	// Пол "Unknown" считается заполненным значением
	assert.Equal(t, 1, result.CompleteProfiles)
	assert.Len(t, result.Profiles, 1)
	assert.Equal(t, "Alice", result.Profiles[0].Name)
	assert.Len(t, result.AllProfiles, 2)
}

func TestRunEnrichmentErrorsDegradePerField(t *testing.T) {
	session := &fakeSession{
		result: &browser.SearchResult{Success: true, Profiles: candidates(1), Pages: 1},
		eduErr: errors.New("timeout"),
	}
	enricher := &fakeEnricher{genderErr: errors.New("api down")}
	o := newTestOrchestrator(t, &fakeBrowser{session: session}, enricher, &fakeSaver{})

	result := o.Run(context.Background(), "engineer", "casablanca", 1)

	require.True(t, result.Success)
	require.Len(t, result.AllProfiles, 1)
	p := result.AllProfiles[0]
	assert.Equal(t, "Unknown", p.Gender)
	assert.Empty(t, p.Education)
	assert.Nil(t, p.EstimatedAge)
	// Оценка возраста не вызывается без данных об образовании
	assert.Equal(t, 0, enricher.ageCalls)
}

func TestRunSaveErrorPreservesPartialResults(t *testing.T) {
	session := &fakeSession{
		result: &browser.SearchResult{Success: true, Profiles: candidates(1), Pages: 1},
	}
	saver := &fakeSaver{err: errors.New("db down")}
	o := newTestOrchestrator(t, &fakeBrowser{session: session}, &fakeEnricher{gender: "Female"}, saver)

	result := o.Run(context.Background(), "engineer", "casablanca", 1)

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	// Собранные профили возвращаются даже при ошибке сохранения
	assert.Len(t, result.AllProfiles, 1)
	assert.Equal(t, 1, result.TotalProfiles)
}

func TestLogsReturnLastRunEntries(t *testing.T) {
	session := &fakeSession{
		result: &browser.SearchResult{Success: true, Profiles: candidates(1), Pages: 1},
	}
	o := newTestOrchestrator(t, &fakeBrowser{session: session}, &fakeEnricher{gender: "Male"}, &fakeSaver{})

	assert.Nil(t, o.Logs())

	result := o.Run(context.Background(), "engineer", "casablanca", 1)

	assert.Equal(t, result.Logs, o.Logs())
	assert.NotEmpty(t, o.Logs())
}
