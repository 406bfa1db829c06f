package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/client"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool

	// Out and ErrOut default to the process streams
	Out    io.Writer
	ErrOut io.Writer
}

// AddOutputFlags registers --json and --quiet on cmd
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Salida en formato JSON")
	cmd.Flags().Bool("quiet", false, "Salida mínima (solo IDs)")
}

// NewFormatter reads the output flags of cmd and writes to its streams
func NewFormatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{
		JSON:   jsonOutput,
		Quiet:  quietMode,
		Out:    cmd.OutOrStdout(),
		ErrOut: cmd.ErrOrStderr(),
	}
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	var ids []int
	if idGetter, ok := data.(interface{ GetID() int }); ok {
		ids = []int{idGetter.GetID()}
	}
	return f.Print(data, ids, func(w io.Writer) {
		fmt.Fprintf(w, "%+v\n", data)
	})
}

// Print writes ids one per line in quiet mode, the JSON envelope in JSON
// mode, and calls human otherwise
func (f *OutputFormatter) Print(data any, ids []int, human func(w io.Writer)) error {
	if f.Quiet {
		for _, id := range ids {
			if _, err := fmt.Fprintf(f.out(), "%d\n", id); err != nil {
				return err
			}
		}
		return nil
	}

	if f.JSON {
		return f.encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	human(f.out())
	return nil
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return f.encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	fmt.Fprintf(f.errOut(), "❌ Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(f.errOut(), "💡 Sugerencia: %s\n", suggestion)
	}
	return nil
}

// Fail reports err and returns it as a *Failure carrying the exit code.
// API errors show the server message.
func (f *OutputFormatter) Fail(err error) error {
	exitCode, code := classify(err)

	var suggestion string
	if code == "CONNECTION_ERROR" {
		suggestion = "Comprueba que la API está en marcha: tablero serve"
	}

	if fmtErr := f.ErrorWithSuggestion(code, client.MessageOf(err), suggestion); fmtErr != nil {
		fmt.Fprintf(os.Stderr, "Error formatting error message: %v\n", fmtErr)
	}
	return &Failure{Code: exitCode, Err: err}
}

func (f *OutputFormatter) encode(v any) error {
	return sonic.ConfigStd.NewEncoder(f.out()).Encode(v)
}

func (f *OutputFormatter) out() io.Writer {
	if f.Out == nil {
		return os.Stdout
	}
	return f.Out
}

func (f *OutputFormatter) errOut() io.Writer {
	if f.ErrOut == nil {
		return os.Stderr
	}
	return f.ErrOut
}
