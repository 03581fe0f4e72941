package generator

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/byte4ever/xxformat/config"
	"github.com/byte4ever/xxformat/digester"
	"github.com/byte4ever/xxformat/source"
	"github.com/byte4ever/xxformat/stamper"
	"github.com/byte4ever/xxformat/templating"
)

// RecordsField is the overall template placeholder bound
// to the joined records.
const RecordsField = "records"

// Run executes one generation described by cfg. Console
// output and the file confirmation line go to stdout.
func Run(cfg config.Config, stdout io.Writer) error {
	const errCtx = "generating output"

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	al, err := digester.Parse(cfg.Algorithm)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	al = al.WithSeed(cfg.Seed)

	batch, err := source.Load(cfg.ReadPath, cfg.Strings)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if batch.Mode != source.Strings && len(cfg.Strings) > 0 {
		slog.Warn(
			"ignoring free strings",
			"mode", batch.Mode.String(),
			"count", len(cfg.Strings),
		)
	}

	inputTpl := config.NormalizeInputTemplate(cfg.InputTemplate)
	if inputTpl == "" {
		inputTpl = batch.DefaultInputTemplate()
	}

	outputTpl := cfg.OutputTemplate
	if outputTpl == "" {
		outputTpl = batch.DefaultOutputTemplate(stamper.HashField)
	}

	output := templating.Parse(outputTpl)
	st := stamper.New(inputTpl, output, al)

	slog.Debug(
		"generating",
		"algorithm", al.Name,
		"variant", al.Variant.String(),
		"encoding", al.Encoding.String(),
		"hash_required", st.HashRequired(),
		"mode", batch.Mode.String(),
		"records", len(batch.Records),
	)

	text, err := Render(
		batch.Records, st, output,
		cfg.OverallTemplate, cfg.Spacing,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if cfg.WritePath == "" {
		if _, err := io.WriteString(stdout, text); err != nil {
			return fmt.Errorf(
				"%s: writing to stdout: %w", errCtx, err,
			)
		}

		return nil
	}

	if err := writeFile(cfg.WritePath, text); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if _, err := fmt.Fprintf(
		stdout,
		"wrote %d records to %s\n",
		len(batch.Records), cfg.WritePath,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// Render completes every record with st, renders it with
// output, joins the results with spacing and substitutes
// them into overall as {records}.
func Render(
	records []source.Record,
	st *stamper.Stamper,
	output templating.Template,
	overall string,
	spacing string,
) (string, error) {
	const errCtx = "rendering records"

	rendered := make([]string, 0, len(records))

	for idx, rc := range records {
		done, err := st.Stamp(rc)
		if err != nil {
			return "", fmt.Errorf(
				"%s: record %d: %w", errCtx, idx+1, err,
			)
		}

		line, err := output.Execute(done)
		if err != nil {
			return "", fmt.Errorf(
				"%s: record %d: output template: %w",
				errCtx, idx+1, err,
			)
		}

		rendered = append(rendered, line)
	}

	text, err := templating.Format(
		overall,
		map[string]string{
			RecordsField: strings.Join(rendered, spacing),
		},
	)
	if err != nil {
		return "", fmt.Errorf(
			"%s: overall template: %w", errCtx, err,
		)
	}

	return text, nil
}
