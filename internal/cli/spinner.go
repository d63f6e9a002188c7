package cli

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
)

// WithSpinner runs op behind a terminal spinner with the given label. The
// spinner is purely cosmetic: op's result and error pass through unchanged.
// It animates on stderr so stdout stays clean for piped output.
func WithSpinner[T any](label string, op func() (T, error)) (T, error) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + label
	s.Start()

	result, err := op()
	if err != nil {
		s.FinalMSG = text.FgRed.Sprint("✗") + " " + label + "\n"
	}
	s.Stop()
	return result, err
}
