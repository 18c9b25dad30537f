package common

import (
	"context"
	"time"

	"resumeparser/internal/errors"
)

// FileOperationFunc runs the command's work on a single input file.
type FileOperationFunc[Output any] func(ctx context.Context, path string) (Output, error)

// FileCommand describes one file based CLI command
type FileCommand[Output any] struct {
	Name                string
	Config              CommandConfig
	SupportedExtensions []string
	Operation           FileOperationFunc[Output]
}

// RunFileCommand encapsulates the common logic for file based CLI commands:
// validate paths, run the operation, format and write its result.
func RunFileCommand[Output any](
	ctx context.Context,
	logger *errors.Logger,
	handler *OutputHandler,
	command FileCommand[Output],
	path string,
) error {
	if logger == nil {
		logger = errors.NewNopLogger()
	}
	fileProcessor := NewFileProcessor(logger)

	if err := fileProcessor.ValidateInputFile(path, command.SupportedExtensions); err != nil {
		return err
	}
	// Fail before the (expensive) operation when the destination is unusable
	if err := fileProcessor.ValidateOutputFile(command.Config.OutputFile); err != nil {
		return err
	}

	logger.Info("Starting "+command.Name,
		"file", path,
		"output_format", command.Config.OutputFormat,
		"output_file", command.Config.OutputFile)

	start := time.Now()
	result, err := command.Operation(ctx, path)
	if err != nil {
		return err
	}

	logger.Info(command.Name+" completed",
		"file", path,
		"duration_ms", time.Since(start).Milliseconds())

	return handler.HandleOutput(result, command.Config)
}
