/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"lxcharset/internal/version"
	"lxcharset/pkg/charset"
	"lxcharset/pkg/feedback"
	"lxcharset/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	logLevel     string
	jsonOutput   bool
	showFeedback bool
	feedbackFile string
)

// jsonResult is the --json rendering of a charset.DetectionResult.
type jsonResult struct {
	Path          string  `json:"path"`
	Encoding      string  `json:"encoding"`
	Confidence    float64 `json:"confidence"`
	UsedFallback  bool    `json:"used_fallback"`
	DetectedByBOM bool    `json:"detected_by_bom"`
	Error         string  `json:"error,omitempty"`
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "lxcharset [input-paths...]",
	Short:   "Character-encoding detector",
	Long:    "lxcharset inspects one or more files and reports a best-guess text encoding, a confidence score, and provenance flags for each.",
	Args:    cobra.MinimumNArgs(1),
	Version: version.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logLevel)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		bus := feedback.NewBus()
		if showFeedback {
			bus.Subscribe(func(ev feedback.Event) {
				logger.Log().Debug(ev.Message, "code", ev.Code, "level", ev.Level)
			})
		}
		if feedbackFile != "" {
			if err := bus.SetFileSink(feedbackFile); err != nil {
				return fmt.Errorf("configuring feedback sink: %w", err)
			}
			defer bus.Close()
		}

		detector := charset.New(bus)
		exitCode := 0
		for _, path := range args {
			result, err := detectPath(detector, path)
			if err != nil {
				logger.Log().Error("failed to read input", "path", path, "error", err)
				exitCode = 1
				if jsonOutput {
					emitJSON(jsonResult{Path: path, Error: err.Error()})
				}
				continue
			}
			if jsonOutput {
				emitJSON(jsonResult{
					Path:          path,
					Encoding:      result.Encoding,
					Confidence:    result.Confidence,
					UsedFallback:  result.UsedFallback,
					DetectedByBOM: result.DetectedByBOM,
				})
				continue
			}
			fmt.Printf("%s: encoding=%s confidence=%.4f used_fallback=%t detected_by_bom=%t\n",
				path, result.Encoding, result.Confidence, result.UsedFallback, result.DetectedByBOM)
		}
		if exitCode != 0 {
			os.Exit(exitCode)
		}
		return nil
	},
}

func detectPath(detector *charset.Detector, path string) (charset.DetectionResult, error) {
	if path == "-" {
		data, err := readAllStdin()
		if err != nil {
			return charset.DetectionResult{}, err
		}
		return detector.Detect(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return charset.DetectionResult{}, err
	}
	return detector.Detect(data), nil
}

func readAllStdin() ([]byte, error) {
	return os.ReadFile("/dev/stdin")
}

func emitJSON(r jsonResult) {
	enc := json.NewEncoder(os.Stdout)
	_ = enc.Encode(r)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.MousetrapHelpText = ""
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Set log levels (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit one JSON object per input file")
	rootCmd.Flags().BoolVar(&showFeedback, "show-feedback", false, "Log every detector feedback event at debug level")
	rootCmd.Flags().StringVar(&feedbackFile, "feedback-file", "", "Also write feedback events to this file")
}
