package cli

import (
	"context"
	"fmt"

	"github.com/billmal071/finna/internal/config"
	"github.com/billmal071/finna/internal/db"
	"github.com/billmal071/finna/internal/finna"
	"github.com/billmal071/finna/internal/launcher"
	"github.com/billmal071/finna/internal/tui"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse [query...]",
	Short: "Pick a search result from an interactive list",
	Long: `Search Finna and show the results in an interactive list.

Press m to load the next page and enter to open the chosen record
on the web.

Examples:
  finna browse kalevala
  finna browse -l 10 --lng en-gb "Alvar Aalto"
  finna browse -f 'format:"0/Image/"' helsinki`,
	Args: cobra.ArbitraryArgs,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	params := searchParameters(cfg, cmd.Flags(), flagParams, args)
	if params.LookforString() == "" && len(params.Filters) == 0 {
		return fmt.Errorf("a query or a filter is required")
	}

	client := newClient(cfg)
	ctx := cmd.Context()

	Printf("Searching for: %s\n", params.LookforString())
	page, err := searchPage(ctx, client, params)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(page.Records) == 0 {
		fmt.Println("No records found matching your query.")
		return nil
	}
	Printf("Found %d result(s)\n\n", page.ResultCount)

	if cfg.History.Enabled {
		if err := db.AddSearchHistory(params.LookforString(), page.ResultCount, searchFilters(params)); err != nil {
			logger.Warn("failed to save search history", "error", err)
		}
	}

	next := params.Clone()
	loadMore := func() ([]*finna.Record, error) {
		if next.Page*next.Limit >= page.ResultCount {
			return nil, nil
		}
		next.Page++
		more, err := searchPage(ctx, client, next)
		if err != nil {
			return nil, err
		}
		return more.Records, nil
	}

	title := fmt.Sprintf("%d results for %q", page.ResultCount, params.LookforString())
	selected, err := tui.RunSelector(page.Records, title, loadMore)
	if err != nil {
		return fmt.Errorf("selection failed: %w", err)
	}
	if selected == nil {
		return nil // User cancelled
	}

	url := finna.RecordURL(cfg.Site.BaseURL, selected.ID)
	if err := launcher.NewSystem(cfg.Viewer.ImageCommand).OpenURL(url); err != nil {
		Errorf("%v", err)
		fmt.Printf("Record page: %s\n", url)
		return nil
	}
	Successf("Opened %s", url)
	return nil
}

func searchPage(ctx context.Context, client finna.Gateway, params finna.SearchParameters) (*finna.ResultPage, error) {
	query, err := finna.BuildSearchQuery(params)
	if err != nil {
		return nil, err
	}
	return client.Search(ctx, query)
}

func searchFilters(params finna.SearchParameters) db.SearchFilters {
	return db.SearchFilters{
		Filters: params.Filters,
		Type:    params.Type,
		Lng:     params.Lng,
		Limit:   params.Limit,
		Sort:    params.Sort,
	}
}
