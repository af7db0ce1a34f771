package cli

import (
	"encoding/json"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/relaykit/feishu-relay/internal/feishu"
)

// NewKindsCommand creates the kinds command.
func NewKindsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List supported message kinds",
		RunE:  runKinds,
	}

	cmd.Flags().Bool("json", false, "Output as JSON")

	return cmd
}

func runKinds(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string]interface{}{
			"kinds": feishu.Kinds(),
		})
	}

	descriptions := map[feishu.MessageKind][2]string{
		feishu.KindText: {"no", "Plain text message"},
		feishu.KindPost: {"yes", "Rich text message with a title"},
	}

	table := tablewriter.NewTable(os.Stdout)
	table.Header("KIND", "TITLE REQUIRED", "DESCRIPTION")
	for _, kind := range feishu.Kinds() {
		desc := descriptions[kind]
		if err := table.Append([]string{string(kind), desc[0], desc[1]}); err != nil {
			return err
		}
	}
	return table.Render()
}
