package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/yeisme/torrentvault/pkg/configs"
	mq "github.com/yeisme/torrentvault/pkg/internal/storage/mq"
	"github.com/yeisme/torrentvault/pkg/queue"
)

var (
	mqCmd = &cobra.Command{
		Use:     "mq",
		Short:   "Message queue related commands",
		Aliases: []string{"messagequeue"},
	}

	mqListCmd = &cobra.Command{
		Use:     "list",
		Short:   "list all registered mq types and known topics",
		Aliases: []string{"ls", "l"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Registered mq types:")

			for _, t := range mq.RegisteredTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), "   - "+string(t))
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Topics:")

			for _, t := range queue.Topics {
				fmt.Fprintln(cmd.OutOrStdout(), "   - "+t)
			}
		},
	}

	mqTailCmd = &cobra.Command{
		Use:   "tail <topic>",
		Short: "print messages published to a topic until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			client, err := mq.New(ctx, configs.GetConfig().MQ, nil)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			msgs, err := client.Subscribe(ctx, args[0])
			if err != nil {
				return err
			}

			for msg := range msgs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", msg.UUID, string(msg.Payload))
				msg.Ack()
			}

			return nil
		},
	}
)

// registerMQCommands 注册 MQ 相关命令.
func registerMQCommands() {
	rootCmd.AddCommand(mqCmd)
	mqCmd.AddCommand(mqListCmd)
	mqCmd.AddCommand(mqTailCmd)
}
