package scaffold

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const completionTemplateText = `
Setup is almost complete. Follow these steps to finish initialization:

- Start the development server:
  {{ .DevCommand }}

- If you'd like to set up a deployment region, make sure PRIMARY_REGION
  is set before starting the edge server.

{{ .AppName | trim }} is ready. Happy shipping!`

const writeWarningTemplateText = `Some template files could not be rewritten:
  - {{ .Paths | join "\n  - " }}
The project may need manual cleanup before the first run.`

var (
	completionTemplate   = template.Must(template.New("completion").Funcs(sprig.TxtFuncMap()).Parse(completionTemplateText))
	writeWarningTemplate = template.Must(template.New("write-warning").Funcs(sprig.TxtFuncMap()).Parse(writeWarningTemplateText))
)

// CompletionData feeds the completion message shown after a successful init.
type CompletionData struct {
	AppName    string
	DevCommand string
}

// RenderCompletion renders the final message naming the dev command.
func RenderCompletion(data CompletionData) (string, error) {
	var buf bytes.Buffer
	if err := completionTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render completion message: %w", err)
	}
	return buf.String(), nil
}

// RenderWriteWarning renders the consolidated warning listing every file
// operation that failed during the batch write step.
func RenderWriteWarning(paths []string) (string, error) {
	var buf bytes.Buffer
	if err := writeWarningTemplate.Execute(&buf, struct{ Paths []string }{paths}); err != nil {
		return "", fmt.Errorf("failed to render write warning: %w", err)
	}
	return buf.String(), nil
}
