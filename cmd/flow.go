package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/sitegen-cli/internal/flow"
	"github.com/sells-group/sitegen-cli/internal/industry"
	"github.com/sells-group/sitegen-cli/internal/model"
	"github.com/sells-group/sitegen-cli/internal/normalize"
	"github.com/sells-group/sitegen-cli/internal/store"
)

var (
	flowSources  string
	flowIndustry string
	flowBusiness string
	flowResume   string
)

// flowCmd runs the adaptive question flow interactively on the terminal,
// persisting state after every step so an interrupted session can resume.
var flowCmd = &cobra.Command{
	Use:   "flow",
	Short: "Run the interactive onboarding question flow",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		table, err := industry.Load()
		if err != nil {
			return eris.Wrap(err, "load industry table")
		}
		catalog, err := flow.LoadCatalog()
		if err != nil {
			return eris.Wrap(err, "load question catalog")
		}

		var sess *flow.Session
		var rec *model.SessionRecord

		if flowResume != "" {
			rec, err = st.GetSession(ctx, flowResume)
			if err != nil {
				return eris.Wrapf(err, "resume session %s", flowResume)
			}
			var raw []model.RawSource
			if len(rec.Sources) > 0 {
				if err := json.Unmarshal(rec.Sources, &raw); err != nil {
					return eris.Wrap(err, "parse stored sources")
				}
			}
			sess, err = flow.Resume(rec.State, normalizeSources(raw), catalog)
			if err != nil {
				return err
			}
		} else {
			sources, rawSources, err := loadSources(flowSources)
			if err != nil {
				return err
			}
			rec, err = st.CreateSession(ctx, flowBusiness, flowIndustry, rawSources)
			if err != nil {
				return err
			}
			sess = flow.NewSession(rec.ID, flowIndustry, sources, catalog)
		}

		fmt.Printf("session %s (answer, or: unsure / skip / back)\n", rec.ID)

		scanner := bufio.NewScanner(os.Stdin)
		for !sess.Complete() {
			q, ok := sess.Current()
			if !ok {
				break
			}

			fmt.Printf("\n%s\n", q.Text)
			for _, opt := range q.Options {
				fmt.Printf("  [%s] %s\n", opt.Value, opt.Label)
			}
			fmt.Print("> ")

			if !scanner.Scan() {
				break
			}
			input := strings.TrimSpace(scanner.Text())

			switch strings.ToLower(input) {
			case "back":
				if !sess.GoBack() {
					fmt.Println("nothing to go back to")
				}
			case "skip":
				if err := sess.Skip("user skipped"); err != nil {
					return err
				}
			default:
				if err := sess.Answer(q.ID, input); err != nil {
					return err
				}
			}

			if err := persistState(ctx, st, rec.ID, sess); err != nil {
				return err
			}
		}

		profile := table.Get(rec.Industry)
		site := finalize(ctx, sess, profile, initGenerator(), rec.ID)

		result, err := json.Marshal(site)
		if err != nil {
			return eris.Wrap(err, "marshal site config")
		}
		if err := st.SaveResult(ctx, rec.ID, result); err != nil {
			return err
		}

		zap.L().Info("flow finished",
			zap.String("session", rec.ID),
			zap.String("template", site.TemplateID),
			zap.Float64("quality", site.Quality.Overall),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(site)
	},
}

func persistState(ctx context.Context, st store.Store, id string, sess *flow.Session) error {
	blob, err := sess.Serialize()
	if err != nil {
		return err
	}
	status := model.SessionActive
	if sess.Complete() {
		status = model.SessionComplete
	}
	return st.SaveState(ctx, id, blob, status)
}

func normalizeSources(raw []model.RawSource) []model.SourcedFacts {
	return normalize.All(raw)
}

func init() {
	flowCmd.Flags().StringVar(&flowSources, "sources", "", "path to JSON array of raw sources")
	flowCmd.Flags().StringVar(&flowIndustry, "industry", "generic", "industry key")
	flowCmd.Flags().StringVar(&flowBusiness, "business", "", "business name for the session record")
	flowCmd.Flags().StringVar(&flowResume, "resume", "", "session id to resume")
	rootCmd.AddCommand(flowCmd)
}
