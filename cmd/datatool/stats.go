package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"catclassifier/internal/data"
)

func (s *session) showStats() error {
	set, err := data.LoadTrainingSet(s.csvPath)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s not found", s.csvPath)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "\nTraining Data Statistics\n   Total examples: %d\n\n", len(set))
	table := tablewriter.NewWriter(s.out)
	table.SetHeader([]string{"Category", "Examples"})
	for _, c := range data.CountByCategory(set) {
		table.Append([]string{c.Category, strconv.Itoa(c.Count)})
	}
	table.SetFooter([]string{"Total", strconv.Itoa(len(set))})
	table.Render()
	return nil
}
