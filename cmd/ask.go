package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/glundgren93/ptv-cli/internal/departures"
	"github.com/glundgren93/ptv-cli/internal/format"
	"github.com/glundgren93/ptv-cli/internal/model"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask for the next departure interactively",
	Long: `Pick a mode, type a stop and choose a direction, then hear when the next
service leaves.

Examples:
  ptv ask`,
	Aliases: []string{"a"},
	RunE:    runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	defaultMode, err := cfg.Mode()
	if err != nil {
		return err
	}

	modeValue := strconv.Itoa(int(defaultMode))
	direction := "from city"
	var stopName string

	modeOptions := make([]huh.Option[string], 0, len(model.Modes()))
	for _, m := range model.Modes() {
		label := format.ModeIcon(m) + " " + format.ModeName(m)
		modeOptions = append(modeOptions, huh.NewOption(label, strconv.Itoa(int(m))))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How are you travelling?").
				Options(modeOptions...).
				Value(&modeValue),

			huh.NewInput().
				Title("Which stop?").
				Placeholder("Flinders Street").
				Value(&stopName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("a stop name is required")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Title("Which way?").
				Options(
					huh.NewOption("Away from the city", "from city"),
					huh.NewOption("Into the city", "to city"),
				).
				Value(&direction),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		return err
	}

	mode, err := model.ParseTransportMode(modeValue)
	if err != nil {
		return err
	}

	req := departures.Request{
		StopName:   stopName,
		Mode:       mode,
		TowardCity: direction == "to city",
		Limit:      cfg.Departures.Limit,
	}

	var result *departures.Result
	var resolveErr error

	_ = spinner.New().
		Title(fmt.Sprintf("Looking up %s departures from %s...", mode, stopName)).
		Action(func() {
			result, resolveErr = resolveDepartures(cmd.Context(), req)
		}).
		Run()

	outcome := format.Classify(req, result, resolveErr)
	if resolveErr != nil {
		log.Warn().Err(resolveErr).Str("category", string(outcome.Category)).Msg("Departure request failed")
	}

	if jsonOutput {
		return format.JSON(outcome)
	}

	fmt.Fprintf(format.Out, "\n%s\n\n", outcome.Speech)
	if outcome.Category == format.CategoryOK {
		format.Departures(result, mode, req.TowardCity)
	}
	return nil
}
