package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

const defaultCSV = "training_data.csv"

type session struct {
	in      *bufio.Reader
	out     io.Writer
	csvPath string
}

// prompt prints label and returns the next trimmed input line. It returns
// io.EOF once input is exhausted.
func (s *session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *session) fail(format string, args ...any) {
	fmt.Fprintln(s.out, color.Red.Sprintf("✗ "+format, args...))
}

func (s *session) ok(format string, args ...any) {
	fmt.Fprintln(s.out, color.Green.Sprintf("✓ "+format, args...))
}

func NewRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	s := &session{in: bufio.NewReader(in), out: out}

	cmd := &cobra.Command{
		Use:   "datatool",
		Short: "Manage the category classifier training data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.menu()
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&s.csvPath, "csv", defaultCSV, "training data CSV file")
	cmd.SetOut(out)
	cmd.SetErr(out)

	cmd.AddCommand(&cobra.Command{
		Use:   "add",
		Short: "Interactively add training examples",
		RunE: func(cmd *cobra.Command, args []string) error {
			for {
				if _, err := s.addExample(); err != nil {
					return ignoreEOF(err)
				}
				another, err := s.prompt("\nAdd another? (y/n): ")
				if err != nil || strings.ToLower(another) != "y" {
					s.reminder()
					return ignoreEOF(err)
				}
			}
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show per-category counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.showStats()
		},
	})
	return cmd
}

// menu is the interactive loop used when no subcommand is given.
func (s *session) menu() error {
	fmt.Fprintln(s.out, color.Bold.Sprint("ML Training Data Manager"))
	fmt.Fprintln(s.out, strings.Repeat("=", 40))
	defer s.reminder()

	for {
		fmt.Fprintln(s.out, "\n1. Add training example")
		fmt.Fprintln(s.out, "2. Show statistics")
		fmt.Fprintln(s.out, "3. Quit")

		choice, err := s.prompt("\nSelect option: ")
		if err != nil {
			return ignoreEOF(err)
		}
		switch choice {
		case "1":
			added, err := s.addExample()
			if err != nil {
				return ignoreEOF(err)
			}
			if added {
				another, err := s.prompt("\nAdd another? (y/n): ")
				if err != nil {
					return ignoreEOF(err)
				}
				if strings.ToLower(another) != "y" {
					return nil
				}
			}
		case "2":
			if err := s.showStats(); err != nil {
				s.fail("%v", err)
			}
		case "3":
			return nil
		default:
			s.fail("Invalid choice")
		}
	}
}

func (s *session) reminder() {
	fmt.Fprintln(s.out, "\nDone! Don't forget to retrain the model:")
	fmt.Fprintln(s.out, "   go run ./cmd/trainer -data "+s.csvPath)
}

func ignoreEOF(err error) error {
	if err == io.EOF {
		return nil
	}
	return err
}
