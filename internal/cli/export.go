package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var html bool
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Print the visible outline of a map",
		Long: "Print the map as indented text, leaving out children of collapsed nodes\n" +
			"and hidden nodes (unless --show-hidden). With --html the map is written\n" +
			"as an HTML page next to the document and its path is printed.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			path := documentPath(cfg, args)
			if path == "" {
				return errors.New("no file given and default_file is not set")
			}
			codec := codecFor(cfg)
			t, err := codec.Load(path)
			if err != nil {
				return err
			}
			if html {
				out, err := codec.WriteHTML(path, t, cfg.ShowHidden)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), codec.SerializeVisible(t, cfg.ShowHidden))
			return err
		},
	}
	cmd.Flags().BoolVar(&html, "html", false, "write an HTML page instead of printing text")
	return cmd
}
