package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var offersCmd = &cobra.Command{
	Use:   "offers [id]",
	Short: "List the job offers from the catalog, or print the full text of one",
	Args:  cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		config, err := getConfig()
		if err != nil {
			log.Fatalf("getting a config: %v", err)
		}

		cat, err := loadCatalog(config)
		if err != nil {
			log.Fatalf("loading job catalog: %v", err)
		}

		if len(args) == 1 {
			text, err := cat.FullText(args[0])
			if err != nil {
				log.Fatal(err)
			}
			fmt.Println(text)
			return
		}

		for _, offer := range cat.Offers() {
			fmt.Printf("%-20s %s\n", offer.ID, offer.Label)
		}
	},
}

func init() {
	rootCmd.AddCommand(offersCmd)
}
