package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/anonto42/linkfeed/backend/internal/repositories"
	"github.com/anonto42/linkfeed/backend/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var historyFlags struct {
	linkID uint
	limit  int64
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the recorded post, patch and delete events of a link",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Mongo.URI == "" {
			return errors.New("MONGO_URI is not set, no events are recorded")
		}

		client, err := config.ConnectMongo(cmd.Context(), cfg.Mongo.URI)
		if err != nil {
			return fmt.Errorf("connect to MongoDB: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				log.Warn("disconnect MongoDB", zap.Error(err))
			}
		}()

		events, err := repositories.NewMongoLinkEventRepository(client.Database(cfg.Mongo.Database)).
			ListByLink(cmd.Context(), historyFlags.linkID, historyFlags.limit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "AT\tACTION\tUSER")
		for _, ev := range events {
			user := "-"
			if ev.UserID != nil {
				user = fmt.Sprint(*ev.UserID)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", ev.At.Format(time.RFC3339), ev.Action, user)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().UintVar(&historyFlags.linkID, "link-id", 0, "id of the link (required)")
	historyCmd.Flags().Int64Var(&historyFlags.limit, "limit", 20, "maximum number of events")
	_ = historyCmd.MarkFlagRequired("link-id")
}
