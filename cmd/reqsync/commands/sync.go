package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.trai.ch/reqsync/internal/app"
	"go.trai.ch/reqsync/internal/core/domain"
)

// pipEnv maps flags to the environment variables pip itself reads for them.
// List values are whitespace separated, as pip expects.
var pipEnv = map[string]string{
	"find-links":      "PIP_FIND_LINKS",
	"index-url":       "PIP_INDEX_URL",
	"extra-index-url": "PIP_EXTRA_INDEX_URL",
}

func (c *CLI) newSyncCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "sync [src_files...]",
		Short: "Synchronize the environment with requirement files",
		Long: "Install, upgrade and uninstall packages so that the environment matches the\n" +
			"requirement files exactly. Without arguments, the files named in the project\n" +
			"config or " + domain.DefaultRequirementsFile + " are used.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			force, _ := cmd.Flags().GetBool("force")
			noIndex, _ := cmd.Flags().GetBool("no-index")
			quiet, _ := cmd.Flags().GetBool("quiet")
			prefix, _ := cmd.Flags().GetString("prefix")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			python, _ := cmd.Flags().GetString("python")
			protect, _ := cmd.Flags().GetStringArray("protect")
			outputMode, _ := cmd.Flags().GetString("output")

			return c.app.Sync(cmd.Context(), args, app.SyncOptions{
				DryRun:  dryRun,
				Force:   force,
				Quiet:   quiet,
				Python:  python,
				Protect: protect,
				Install: domain.InstallOptions{
					FindLinks:      v.GetStringSlice("find-links"),
					IndexURL:       v.GetString("index-url"),
					ExtraIndexURLs: v.GetStringSlice("extra-index-url"),
					NoIndex:        noIndex,
					Prefix:         prefix,
					NoCache:        noCache,
				},
				OutputMode: outputMode,
			})
		},
	}

	cmd.Flags().BoolP("dry-run", "n", false, "Only show what would happen, don't change anything")
	cmd.Flags().Bool("force", false, "Proceed even if conflicts are found")
	cmd.Flags().StringArrayP("find-links", "f", nil, "Look for archives in this directory or on this HTML page")
	cmd.Flags().StringP("index-url", "i", "", "Change index URL (defaults to PyPI)")
	cmd.Flags().StringArray("extra-index-url", nil, "Add additional index URL to search")
	cmd.Flags().Bool("no-index", false, "Ignore package index (only looking at --find-links URLs instead)")
	cmd.Flags().BoolP("quiet", "q", false, "Give less output")
	cmd.Flags().StringP("prefix", "p", "", "Installation prefix where lib, bin and other top-level folders live")
	cmd.Flags().Bool("no-cache", false, "Disable the cache")
	cmd.Flags().String("python", "", "Python interpreter whose pip manages the environment")
	cmd.Flags().StringArray("protect", nil, "Never uninstall this package (repeatable)")
	cmd.Flags().StringP("output", "o", "auto", "Output format: auto, pretty, plain or json")

	for flag, env := range pipEnv {
		_ = v.BindPFlag(flag, cmd.Flags().Lookup(flag))
		_ = v.BindEnv(flag, env)
	}

	return cmd
}
