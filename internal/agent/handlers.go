package agent

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"linkedinAgent/internal/database"
)

// ExportResult - результат экспорта профилей в CSV.
type ExportResult struct {
	Status      string `json:"status"`
	Count       int    `json:"count"`
	Filename    string `json:"filename"`
	DownloadURL string `json:"download_url"`
}

func (a *Agent) filterProfiles(arguments string) (any, error) {
	var criteria database.FilterCriteria
	if err := json.Unmarshal([]byte(arguments), &criteria); err != nil {
		return nil, fmt.Errorf("разбор аргументов фильтра: %w", err)
	}

	a.log.Info("Вызов инструмента фильтрации",
		zap.String("keyword", criteria.Keyword),
		zap.String("location", criteria.Location),
		zap.String("gender", criteria.Gender),
	)

	rows, err := a.store.AdvancedFilter(criteria)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (a *Agent) exportCSV(arguments string) (any, error) {
	var args struct {
		Profiles []database.ProfileRow `json:"profiles"`
		Filename string                `json:"filename"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return nil, fmt.Errorf("разбор аргументов экспорта: %w", err)
	}

	filename := args.Filename
	if filename == "" {
		filename = "filtered_profiles.csv"
	}
	if !strings.HasSuffix(filename, ".csv") {
		filename += ".csv"
	}
	// Уникальный префикс исключает коллизии имен между экспортами.
	uniqueName := uuid.New().String() + "_" + filename

	if err := writeProfilesCSV(filepath.Join(a.exportDir, uniqueName), args.Profiles); err != nil {
		return nil, err
	}

	a.log.Info("CSV экспортирован", zap.String("file", uniqueName), zap.Int("profiles", len(args.Profiles)))

	return &ExportResult{
		Status:      "success",
		Count:       len(args.Profiles),
		Filename:    uniqueName,
		DownloadURL: "/agent/download/" + uniqueName,
	}, nil
}

func (a *Agent) getProfileByName(arguments string) (any, error) {
	var args struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return nil, fmt.Errorf("разбор аргументов поиска: %w", err)
	}

	row, err := a.store.GetProfileByName(args.Name)
	if err != nil {
		return nil, err
	}
	if row == nil {
		a.log.Info("Профиль не найден", zap.String("name", args.Name))
		return nil, nil
	}
	return row, nil
}

var csvHeader = []string{"name", "profile_url", "location", "gender", "age", "education", "position"}

func writeProfilesCSV(path string, profiles []database.ProfileRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("создание каталога экспорта: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("создание CSV файла: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, p := range profiles {
		age := ""
		if p.Age != nil {
			age = strconv.Itoa(*p.Age)
		}
		position := ""
		if p.Position != nil {
			position = *p.Position
		}
		record := []string{
			p.Name,
			p.ProfileURL,
			p.Location,
			p.Gender,
			age,
			flattenEducation(p.Education),
			position,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// flattenEducation сводит записи об образовании к строке "School (Degree); ...".
func flattenEducation(education []database.Education) string {
	parts := make([]string, 0, len(education))
	for _, e := range education {
		school, degree := "", ""
		if e.School != nil {
			school = *e.School
		}
		if e.Degree != nil {
			degree = *e.Degree
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", school, degree))
	}
	return strings.Join(parts, "; ")
}
