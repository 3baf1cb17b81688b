package main

import (
	"maps"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/rankview/internal/config"
	"github.com/alexisbeaulieu97/rankview/internal/logger"
)

type rootFlags struct {
	configPath string
	envFile    string
	endpoint   string
	verbose    bool
}

// formFlags select the documents to evaluate.
type formFlags struct {
	jobDescription string
	candidates     string
	fields         map[string]string
}

func (f *formFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.jobDescription, "jd", "", "Job description file (PDF, DOCX or TXT)")
	cmd.Flags().StringVar(&f.candidates, "candidates", "", "Candidate files; comma or space separated paths and globs")
	cmd.Flags().StringToStringVar(&f.fields, "field", nil, "Extra form field sent with the request (key=value, repeatable)")
}

// mergedFields overlays flag fields on the configured ones.
func (f *formFlags) mergedFields(cfg *config.Config) map[string]string {
	fields := maps.Clone(cfg.Fields)
	if fields == nil && len(f.fields) > 0 {
		fields = make(map[string]string, len(f.fields))
	}
	maps.Copy(fields, f.fields)
	return fields
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	form := &formFlags{}

	cmd := &cobra.Command{
		Use:   "rankview",
		Short: "rankview ranks candidate documents against a job description",
		Long: `rankview uploads a job description and a batch of candidate documents to an
evaluation service and shows the ranked results in an interactive terminal UI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			return runUI(flags, form)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file (default is $XDG_CONFIG_HOME/rankview/config.yaml)")
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "Dotenv file read before the environment")
	cmd.PersistentFlags().StringVar(&flags.endpoint, "endpoint", "", "Evaluation service base URL")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	form.register(cmd)

	cmd.AddCommand(newEvaluateCmd(flags))
	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadConfig resolves the configuration, applies flag overrides and
// validates the result.
func loadConfig(flags *rootFlags, override func(*config.Config)) (*config.Config, error) {
	source := flags.configPath
	if source == "" {
		source = "defaults and environment"
	}

	cfg, err := config.Load(config.LoadOptions{Path: flags.configPath, EnvFile: flags.envFile})
	if err != nil {
		return nil, newCommandError("load configuration", source, err, "Check the YAML syntax and field names of the config file.")
	}

	if flags.endpoint != "" {
		cfg.Endpoint = flags.endpoint
	}
	if flags.verbose {
		cfg.LogLevel = "debug"
	}
	if override != nil {
		override(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, newCommandError("validate configuration", source, err, "Fix the reported field in the config file, a RANKVIEW_* variable or the matching flag.")
	}
	return cfg, nil
}

// commandLogger writes human-readable logs to the command's stderr unless
// a log file is configured.
func commandLogger(cmd *cobra.Command, cfg *config.Config) (*logger.Logger, error) {
	return logger.New(logger.Options{
		Level:         cfg.LogLevel,
		HumanReadable: true,
		Writer:        cmd.ErrOrStderr(),
		File:          cfg.LogFile,
	})
}
