package cli

import (
	"maps"
	"slices"

	"resumeparser/internal/common"
	"resumeparser/internal/config"
	"resumeparser/internal/errors"
	"resumeparser/internal/framework"
	"resumeparser/internal/types"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [resume-file]",
	Short: "Extract structured data from a resume",
	Long: `Extract structured data from a PDF (.pdf) or Word (.docx) resume.
The document text is sent to the configured language model once per field,
and the result is printed as JSON, plain text or markdown.

Examples:
  resumeparser parse resume.pdf
  resumeparser parse resume.docx --format markdown --output resume.md
  resumeparser parse resume.pdf --fields name,email`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified and validate it
		format, err := common.ResolveOutputFormat(parseConfig.OutputFormat, cfg.App.DefaultFormat, cfg.App.SupportedFormats)
		if err != nil {
			return err
		}
		parseConfig.OutputFormat = format
		return nil
	},
	RunE: runParse,
}

var (
	parseConfig common.CommandConfig
	parseFields string
)

// newFramework builds the parsing pipeline; tests replace it to avoid network calls
var newFramework = func(cfg *config.Config, fields []string, logger *errors.Logger) (*framework.Framework, error) {
	return framework.NewFromConfigWithFields(cfg, fields, logger)
}

func init() {
	parseCmd.Flags().StringVarP(&parseConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	parseCmd.Flags().StringVar(&parseConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	parseCmd.Flags().StringVar(&parseFields, "fields", "", "Comma separated fields to extract (default: all configured fields)")

	// Add completion for format flag
	_ = parseCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
	_ = parseCmd.RegisterFlagCompletionFunc("fields", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		fields := append(slices.Clone(cfg.Extraction.Fields), slices.Sorted(maps.Keys(cfg.Extraction.CustomFields))...)
		return fields, cobra.ShellCompDirectiveNoFileComp
	})
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	fw, err := newFramework(cfg, common.ParseFieldList(parseFields), logger)
	if err != nil {
		return err
	}

	err = common.RunFileCommand(
		cmd.Context(),
		logger,
		common.NewOutputHandlerWithWriter(cmd.OutOrStdout(), logger),
		common.FileCommand[types.ResumeData]{
			Name:                "resume parsing",
			Config:              parseConfig,
			SupportedExtensions: fw.SupportedExtensions(),
			Operation:           fw.ParseResume,
		},
		args[0],
	)
	if err != nil {
		return err
	}
	logger.Info("Resume parsing completed successfully")
	return nil
}
