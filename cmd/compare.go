package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"sjsage522/pricecompare/internal/presenter"
	"sjsage522/pricecompare/internal/server"

	"github.com/spf13/cobra"
)

const imageCheckTimeout = 10 * time.Second

// ErrEmptyQuery is returned when no product name was given
var ErrEmptyQuery = errors.New("empty product name")

var compareCmd = &cobra.Command{
	Use:   "compare [product...]",
	Short: "Compare one product across every store and print a chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var services *Services
		newComparer := func() (server.Comparer, error) {
			s, err := initializeServices(ctx, cfg)
			if err != nil {
				return nil, err
			}
			services = s
			return s.Aggregator, nil
		}
		defer func() {
			if services != nil {
				services.Cleanup()
			}
		}()

		p := presenter.New(cmd.OutOrStdout(), presenter.NewHTTPImageChecker(imageCheckTimeout))
		return runCompare(ctx, args, cmd.InOrStdin(), cmd.OutOrStdout(), newComparer, p)
	},
}

// runCompare reads the query, compares it and presents the result.
// No comparer is built for an empty query.
func runCompare(
	ctx context.Context,
	args []string,
	in io.Reader,
	out io.Writer,
	newComparer func() (server.Comparer, error),
	p *presenter.Presenter,
) error {
	query, err := readQuery(args, in, out)
	if err != nil {
		if errors.Is(err, ErrEmptyQuery) {
			fmt.Fprintln(out, "Please enter a product name and re-run.")
		}
		return err
	}

	comparer, err := newComparer()
	if err != nil {
		return err
	}

	listings := comparer.Compare(ctx, query)
	return p.Present(ctx, query, listings)
}

// readQuery joins args into the query, or prompts on in when there are none
func readQuery(args []string, in io.Reader, out io.Writer) (string, error) {
	if len(args) > 0 {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return "", ErrEmptyQuery
		}
		return query, nil
	}

	fmt.Fprint(out, "Enter product name: ")
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read product name: %w", err)
		}
		return "", ErrEmptyQuery
	}

	query := strings.TrimSpace(scanner.Text())
	if query == "" {
		return "", ErrEmptyQuery
	}
	return query, nil
}
