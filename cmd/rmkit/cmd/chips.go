package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HaoboGu/rmkit/pkg/chips"
)

var chipsSplitOnly bool

var chipsCmd = &cobra.Command{
	Use:   "chips",
	Short: "List supported chips and boards",
	Long: `Chips prints the chip registry with each chip's UF2 family identifier,
firmware container chain and split keyboard support, followed by the
known boards and the chip each one carries.

Examples:
  rmkit chips
  rmkit chips --split`,
	RunE: runChips,
}

func init() {
	rootCmd.AddCommand(chipsCmd)

	chipsCmd.Flags().BoolVar(&chipsSplitOnly, "split", false,
		"only chips usable in split keyboards")
}

func runChips(cmd *cobra.Command, args []string) error {
	fmt.Printf("%-16s %-12s %-17s %s\n", "Chip", "Family ID", "Formats", "Split")
	fmt.Println("──────────────────────────────────────────────────────")

	for _, c := range chips.All() {
		info := chips.Lookup(c)
		if chipsSplitOnly && !info.SplitSupport {
			continue
		}

		split := ""
		if info.SplitSupport {
			split = "yes"
		}
		fmt.Printf("%-16s 0x%08x   %-17s %s\n", c, info.FamilyID, formatChain(info.Formats), split)
	}

	if chipsSplitOnly {
		return nil
	}

	fmt.Printf("\n%-16s %s\n", "Board", "Chip")
	fmt.Println("──────────────────────────")
	for _, b := range chips.Boards() {
		fmt.Printf("%-16s %s\n", b, b.Chip())
	}
	return nil
}

func formatChain(formats []chips.Format) string {
	parts := make([]string, 0, len(formats))
	for _, f := range formats {
		parts = append(parts, f.String())
	}
	return strings.Join(parts, " -> ")
}
