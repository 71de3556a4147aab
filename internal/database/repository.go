package database

import (
	"encoding/json"
	"strings"

	"gorm.io/gorm"
)

// anyLocation - значение фильтра локации, означающее "вся страна, не фильтровать".
const anyLocation = "morocco"

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// SaveProfiles сохраняет профили по одной записи на профиль.
func (r *ProfileRepository) SaveProfiles(profiles []Profile) error {
	for i := range profiles {
		if err := r.db.Create(&profiles[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// AdvancedFilter выполняет поиск профилей по набору необязательных предикатов.
// Ключевое слово ищется подстрокой по имени, позиции и поисковому запросу.
// Локация "morocco" пропускает фильтр по локации (совпадает со всеми записями).
func (r *ProfileRepository) AdvancedFilter(f FilterCriteria) ([]ProfileRow, error) {
	q := r.db.Model(&Profile{})

	if f.Keyword != "" {
		kw := "%" + f.Keyword + "%"
		q = q.Where("name LIKE ? OR position LIKE ? OR keyword LIKE ?", kw, kw, kw)
	}

	if f.Location != "" && strings.ToLower(f.Location) != anyLocation {
		q = q.Where("location LIKE ?", "%"+f.Location+"%")
	}

	if g := normalizeGender(f.Gender); g != "" {
		q = q.Where("gender = ?", g)
	}

	if f.MinAge != nil {
		q = q.Where("estimated_age >= ?", *f.MinAge)
	}
	if f.MaxAge != nil {
		q = q.Where("estimated_age <= ?", *f.MaxAge)
	}

	if f.Education != "" {
		q = q.Where("education LIKE ?", "%"+f.Education+"%")
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var profiles []Profile
	if err := q.Find(&profiles).Error; err != nil {
		return nil, err
	}

	rows := make([]ProfileRow, 0, len(profiles))
	for i := range profiles {
		rows = append(rows, toRow(&profiles[i]))
	}
	return rows, nil
}

// GetProfileByName возвращает не более одного профиля с точным совпадением имени.
func (r *ProfileRepository) GetProfileByName(name string) (*ProfileRow, error) {
	var profile Profile
	err := r.db.Where("name = ?", name).First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	row := toRow(&profile)
	return &row, nil
}

// normalizeGender приводит значение фильтра к виду хранения (Male/Female).
// Пустая строка и "any" означают отсутствие фильтра.
func normalizeGender(gender string) string {
	g := strings.ToLower(strings.TrimSpace(gender))
	if g == "" || g == "any" {
		return ""
	}
	return strings.ToUpper(g[:1]) + g[1:]
}

func toRow(p *Profile) ProfileRow {
	return ProfileRow{
		Name:       p.Name,
		ProfileURL: p.URL,
		Location:   p.Location,
		Gender:     p.Gender,
		Age:        p.EstimatedAge,
		Education:  decodeEducation(p.Education),
		Position:   p.Position,
		ImageURL:   p.ImageURL,
	}
}

func decodeEducation(raw string) []Education {
	if raw == "" {
		return []Education{}
	}
	var entries []Education
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return []Education{}
	}
	return entries
}
