package app

import (
	"github.com/mandelsoft/goutils/general"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mandelsoft/chaincomposer/pkg/models"
)

type Options struct {
	fs     vfs.FileSystem
	scheme models.Scheme

	configFile string
	level      string
	output     string

	config *Config
}

// Complete reads the configuration and applies it
// to the options not set by flags.
func (o *Options) Complete(cmd *cobra.Command) error {
	cfg, err := GetConfig(o.fs, o.configFile)
	if err != nil {
		return err
	}
	o.config = cfg

	flags := cmd.Flags()
	if !flags.Changed("log-level") && cfg.LogLevel != nil {
		o.level = *cfg.LogLevel
	}
	if !flags.Changed("output") && cfg.Output != nil {
		o.output = *cfg.Output
	}
	err = ConfigureLogging(o.level)
	if err != nil {
		return err
	}
	_, err = GetFormat(o.output)
	return err
}

func (o *Options) AddFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.configFile, "config", "", "", "config file")
	flags.StringVarP(&o.level, "log-level", "L", "", "log level")
	flags.StringVarP(&o.output, "output", "o", "", "output format (text, yaml, json)")
}

func New(fss ...vfs.FileSystem) *cobra.Command {
	opts := &Options{
		fs:     general.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), fss...),
		scheme: models.DefaultScheme,
	}

	maincmd := &cobra.Command{
		Use:   "chainctl <options> <cmd> <args>",
		Short: "compare and recombine pipeline chains",
		Long: `
This command can be used to analyse and recombine machine learning
pipeline chains. Chains are given either by their notation, for example

  XGBoost(KNN[neighbors=3],LDA@train)

or by the name of a YAML or JSON chain specification file.
Environment variables used in specification files are substituted.
`,
		TraverseChildren: true,
		SilenceUsage:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.Complete(cmd)
		},
	}

	opts.AddFlags(maincmd.PersistentFlags())

	maincmd.AddCommand(NewEqual(opts))
	maincmd.AddCommand(NewMatch(opts))
	maincmd.AddCommand(NewDescribe(opts))
	maincmd.AddCommand(NewSwap(opts))
	maincmd.AddCommand(NewRandom(opts))
	return maincmd
}
