// Package locations загружает справочник локаций (имя -> geoUrn идентификатор)
// и строит поисковые URL LinkedIn.
package locations

import (
	"encoding/csv"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// DefaultLocationID используется для неизвестных локаций (Casablanca).
const DefaultLocationID = "106186529"

type Resolver struct {
	byName map[string]string
	names  []string
}

// Load читает CSV со столбцами name,location_id. Отсутствующий или битый файл
// не является фатальной ошибкой: резолвер продолжит работать через дефолтный
// идентификатор, поэтому возвращается пустой резолвер и ошибка для логирования.
func Load(path string) (*Resolver, error) {
	r := &Resolver{byName: make(map[string]string)}

	f, err := os.Open(path)
	if err != nil {
		return r, fmt.Errorf("открытие справочника локаций %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return r, fmt.Errorf("чтение справочника локаций %s: %w", path, err)
	}

	nameIdx, idIdx := -1, -1
	for i, rec := range records {
		if i == 0 {
			for col, h := range rec {
				switch strings.TrimSpace(strings.ToLower(h)) {
				case "name":
					nameIdx = col
				case "location_id":
					idIdx = col
				}
			}
			if nameIdx < 0 || idIdx < 0 {
				return r, fmt.Errorf("справочник локаций %s: нет столбцов name/location_id", path)
			}
			continue
		}
		if len(rec) <= nameIdx || len(rec) <= idIdx {
			continue
		}
		name := strings.TrimSpace(rec[nameIdx])
		id := strings.TrimSpace(rec[idIdx])
		if name == "" || id == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := r.byName[key]; !ok {
			r.names = append(r.names, name)
		}
		r.byName[key] = id
	}

	return r, nil
}

// Resolve возвращает geoUrn идентификатор локации.
// Неизвестные имена получают дефолтный идентификатор.
func (r *Resolver) Resolve(name string) string {
	if id, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return id
	}
	return DefaultLocationID
}

// Names возвращает загруженные имена локаций в порядке следования в файле.
func (r *Resolver) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Count возвращает число загруженных локаций.
func (r *Resolver) Count() int {
	return len(r.byName)
}

// BuildSearchURL строит URL поиска людей по ключевым словам и идентификатору локации.
func BuildSearchURL(keywords, locationID string) string {
	return fmt.Sprintf(
		"https://www.linkedin.com/search/results/people/?keywords=%s&geoUrn=%%5B%%22%s%%22%%5D&origin=FACETED_SEARCH",
		url.QueryEscape(keywords),
		locationID,
	)
}
