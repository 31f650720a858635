package main

import (
	"fmt"
	"strconv"
	"strings"

	"catclassifier/internal/data"
)

// addExample walks through one text/category/confirm cycle. It reports
// whether a row was written.
func (s *session) addExample() (bool, error) {
	fmt.Fprintln(s.out, "\n=== Add Training Data ===")

	text, err := s.prompt("\nEnter project description: ")
	if err != nil {
		return false, err
	}
	if text == "" {
		s.fail("Text cannot be empty")
		return false, nil
	}

	fmt.Fprintln(s.out, "\nCategories:")
	for i, c := range data.Categories {
		fmt.Fprintf(s.out, "  %d. %s\n", i+1, c)
	}
	var category string
	for category == "" {
		choice, err := s.prompt(fmt.Sprintf("\nSelect category (1-%d): ", len(data.Categories)))
		if err != nil {
			return false, err
		}
		idx, convErr := strconv.Atoi(choice)
		switch {
		case convErr != nil:
			s.fail("Please enter a valid number")
		case idx < 1 || idx > len(data.Categories):
			s.fail("Please enter a number between 1 and %d", len(data.Categories))
		default:
			category = data.Categories[idx-1]
		}
	}

	fmt.Fprintf(s.out, "\nAdding:\n   Text: %s\n   Category: %s\n", text, category)
	confirm, err := s.prompt("\nSave this example? (y/n): ")
	if err != nil {
		return false, err
	}
	if strings.ToLower(confirm) != "y" {
		s.fail("Cancelled")
		return false, nil
	}

	total, err := data.AppendExample(s.csvPath, data.TrainingExample{Text: text, Category: category})
	if err != nil {
		return false, err
	}
	s.ok("Added! Total examples: %d", total)
	return true, nil
}
