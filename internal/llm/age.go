package llm

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"linkedinAgent/internal/database"
)

const (
	minEstimatedAge = 18
	maxEstimatedAge = 80
)

const agePromptTemplate = `You are an expert at estimating age based on educational history.

Current year: %d

Education History:
%s

Based on this education history, estimate the person's current age. Consider:
- High school/Baccalauréat typically ends at age 18
- Bachelor's degree typically ends at age 22
- Master's/MBA typically ends at age 24
- PhD typically ends at age 28
- Calculate from the most recent graduation date

Respond with ONLY a number representing the estimated age (e.g., 28). If you cannot estimate, respond with "Unknown".`

// EstimateAge оценивает возраст по истории образования. Ответ принимается
// только как целое число в диапазоне [18, 80]; всё прочее дает nil без
// повторных попыток.
func (c *Client) EstimateAge(ctx context.Context, education []database.Education) (*int, error) {
	if len(education) == 0 {
		return nil, nil
	}

	prompt := fmt.Sprintf(agePromptTemplate, time.Now().Year(), flattenEducation(education))

	answer, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return parseAge(answer), nil
}

func flattenEducation(education []database.Education) string {
	lines := make([]string, 0, len(education))
	for _, e := range education {
		lines = append(lines, fmt.Sprintf("- School: %s, Degree: %s, Date: %s",
			orNA(e.School), orNA(e.Degree), orNA(e.DateRange)))
	}
	return strings.Join(lines, "\n")
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}

// parseAge разбирает ответ модели. Значения вне [18, 80] и нечисловые ответы
// считаются отсутствующими, а не округляются к границам.
func parseAge(answer string) *int {
	age, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return nil
	}
	if age < minEstimatedAge || age > maxEstimatedAge {
		return nil
	}
	return &age
}
