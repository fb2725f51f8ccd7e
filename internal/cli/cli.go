// Package cli implements the pantry command, a terminal caller of the
// recipe relay.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/socialchef/pantry/internal/recipeclient"
)

const defaultServer = "http://localhost:3000"

// NewApp builds the pantry command tree writing results to out.
func NewApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "pantry",
		Usage:  "Ask the recipe relay what to cook with what you have",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Value:   defaultServer,
				Usage:   "Base URL of the recipe relay",
				Sources: cli.EnvVars("PANTRY_SERVER"),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 2 * time.Minute,
				Usage: "Maximum time to wait for the relay",
			},
		},
		Commands: []*cli.Command{
			recipeCmd(),
		},
	}
}

func recipeCmd() *cli.Command {
	return &cli.Command{
		Name:      "recipe",
		Usage:     "Suggest a recipe for the given ingredients",
		ArgsUsage: "INGREDIENT [INGREDIENT...]",
		Description: `Sends the ingredient list to the relay and prints the markdown recipe.
Ingredients may be given as separate arguments or as one comma-separated argument.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ingredients := parseIngredients(cmd.Args().Slice())
			if len(ingredients) == 0 {
				return errors.New("at least one ingredient is required")
			}

			client := recipeclient.NewClient(cmd.String("server"), cmd.Duration("timeout"))
			content, err := client.GetRecipe(ctx, ingredients)
			if err != nil {
				return fmt.Errorf("recipe request failed: %w", err)
			}

			_, err = fmt.Fprintln(cmd.Root().Writer, content)
			return err
		},
	}
}

// parseIngredients splits comma-separated arguments and drops blanks.
func parseIngredients(args []string) []string {
	var ingredients []string
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if part = strings.TrimSpace(part); part != "" {
				ingredients = append(ingredients, part)
			}
		}
	}
	return ingredients
}
