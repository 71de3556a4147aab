package llm

import (
	"context"
	"fmt"
	"strings"
)

const (
	GenderMale    = "Male"
	GenderFemale  = "Female"
	GenderUnknown = "Unknown"
)

// DetectGender определяет пол по имени и (при наличии) URL фотографии.
// Ответ модели форматом не гарантирован, поэтому разбор защитный.
func (c *Client) DetectGender(ctx context.Context, name string, imageURL *string) (string, error) {
	prompt := fmt.Sprintf(
		"The person's name is '%s'. Based on the image url (if provided) and the name, "+
			"detect the gender. If there is no image url, use the name to detect the gender. "+
			"Respond only: Male or Female.", name)
	if imageURL != nil && *imageURL != "" {
		prompt += fmt.Sprintf(" Image URL: %s", *imageURL)
	}

	answer, err := c.complete(ctx, prompt)
	if err != nil {
		return GenderUnknown, err
	}

	return parseGender(answer), nil
}

// parseGender сопоставляет текст ответа с подстроками "male"/"female".
// "female" содержит "male" как подстроку, поэтому Male засчитывается только
// при отсутствии "female"; ответ с обеими подстроками дает Female.
func parseGender(answer string) string {
	g := strings.ToLower(strings.TrimSpace(answer))
	switch {
	case strings.Contains(g, "male") && !strings.Contains(g, "female"):
		return GenderMale
	case strings.Contains(g, "female"):
		return GenderFemale
	default:
		return GenderUnknown
	}
}
