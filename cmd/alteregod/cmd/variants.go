package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alterego-vtt/alterego/pkg/aedb"
	"github.com/alterego-vtt/alterego/pkg/aedb/aemodel"
	"github.com/alterego-vtt/alterego/pkg/aedb/stor"
	"github.com/alterego-vtt/alterego/pkg/config"
	"github.com/alterego-vtt/alterego/pkg/variants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	variantsActorID int
	variantsRows    []string
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "Show or replace an actor's variant list",
}

var variantsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print an actor's variant list",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := variants.NewStore(stor.NewGormActorStor(aedb.MustConnectToDB(config.GetConfig())))
		list, err := store.Load(variantsActorID)
		if err != nil {
			return err
		}

		writeVariantsTable(cmd.OutOrStdout(), list)
		return nil
	},
}

var variantsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace an actor's variant list",
	Long: `Replace an actor's variant list. Each --row is path[|effect[|size]], for
example --row "tokens/wolf.png|jb2a.explosion.01.orange|large". Rows with a
blank path are dropped. Saving resets the actor's index marker.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows := make([]variants.Row, 0, len(variantsRows))
		for _, r := range variantsRows {
			rows = append(rows, parseRow(r))
		}

		store := variants.NewStore(stor.NewGormActorStor(aedb.MustConnectToDB(config.GetConfig())))
		list, err := store.Save(variantsActorID, rows)
		if err != nil {
			return err
		}

		writeVariantsTable(cmd.OutOrStdout(), list)
		return nil
	},
}

// parseRow splits a path|effect|size row. Missing parts are left blank.
func parseRow(s string) variants.Row {
	parts := strings.SplitN(s, "|", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}

	return variants.Row{Path: parts[0], Effect: parts[1], Size: parts[2]}
}

func writeVariantsTable(w io.Writer, list aemodel.VariantList) {
	if list.Empty() {
		_, _ = fmt.Fprintln(w, "No variants")
		return
	}

	title := cases.Title(language.English)

	table := tablewriter.NewWriter(w)
	defer table.Close()
	table.Header([]string{"#", "Image", "Effect", "Size", "Scale"})
	for i, v := range list {
		table.Append([]string{
			strconv.Itoa(i),
			v.ImagePath,
			v.EffectPath,
			title.String(string(v.Size)),
			strconv.FormatFloat(v.Scale(), 'g', -1, 64),
		})
	}
	table.Render()
}

func init() {
	rootCmd.AddCommand(variantsCmd)
	variantsCmd.AddCommand(variantsShowCmd, variantsSetCmd)

	variantsCmd.PersistentFlags().IntVar(&variantsActorID, "actor", 0, "actor id")
	_ = variantsCmd.MarkPersistentFlagRequired("actor")
	variantsSetCmd.Flags().StringArrayVar(&variantsRows, "row", nil, "variant row as path|effect|size, repeatable")
}
