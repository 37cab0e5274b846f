// Command wsckit is the CLI tool for the WSC script codec.
// It decompiles .WSC script containers into offset-annotated transcripts,
// recompiles edited transcripts back to binary, and validates transcripts.
package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/WscKit/core/textenc"
	"github.com/FocuswithJustin/WscKit/core/wsc"
	"github.com/FocuswithJustin/WscKit/internal/config"
	"github.com/FocuswithJustin/WscKit/internal/logging"
	"github.com/FocuswithJustin/WscKit/internal/validation"
)

const version = "0.1.0"

// CLI defines the command-line interface for wsckit.
var CLI struct {
	// Global flags
	Verbose   bool   `short:"v" help:"Enable debug logging"`
	LogFormat string `name:"log-format" enum:"text,json" default:"text" help:"Log output format"`
	Rules     string `help:"YAML rule file overriding codec heuristics" type:"existingfile"`

	Decompile DecompileCmd `cmd:"" help:"Decompile .WSC containers to transcripts"`
	Recompile RecompileCmd `cmd:"" help:"Recompile transcripts to .WSC containers"`
	Validate  ValidateCmd  `cmd:"" help:"Validate a transcript without recompiling"`
	Inspect   InspectCmd   `cmd:"" help:"Show container statistics and integrity hashes"`
	Version   VersionCmd   `cmd:"" help:"Print version information"`
}

// buildParts constructs the codec pieces from the optional rule file.
func buildParts() (*wsc.Codec, []textenc.Candidate, *wsc.Rules, error) {
	if CLI.Rules == "" {
		return wsc.NewCodec(), textenc.DefaultChain(), wsc.DefaultRules(), nil
	}
	f, err := config.Load(CLI.Rules)
	if err != nil {
		return nil, nil, nil, err
	}
	chain, err := f.Chain()
	if err != nil {
		return nil, nil, nil, err
	}
	rules, err := f.Rules()
	if err != nil {
		return nil, nil, nil, err
	}
	return wsc.NewCodecWith(chain, rules), chain, rules, nil
}

// outputPath resolves the destination for one input file: an explicit --out
// for single inputs, otherwise the input's stem plus ext, placed in --dir
// when set and next to the input when not.
func outputPath(input, out, dir, ext string) string {
	if out != "" {
		return out
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ext
	if dir != "" {
		return filepath.Join(dir, base)
	}
	return filepath.Join(filepath.Dir(input), base)
}

// printResult lists validation findings in the order errors, warnings,
// suggestions.
func printResult(result *wsc.ValidationResult) {
	if result == nil {
		return
	}
	if len(result.Errors) > 0 {
		fmt.Println("Errors:")
		for _, e := range result.Errors {
			fmt.Printf("  %s\n", e)
		}
	}
	if len(result.Warnings) > 0 {
		fmt.Println("Warnings:")
		for _, w := range result.Warnings {
			fmt.Printf("  %s\n", w)
		}
	}
	if len(result.Suggestions) > 0 {
		fmt.Println("Suggestions:")
		for _, s := range result.Suggestions {
			fmt.Printf("  %s\n", s)
		}
	}
	if result.NeedsRecalculation {
		fmt.Println("Offsets need recalculation.")
	}
}

// DecompileCmd decompiles one or more .WSC containers.
type DecompileCmd struct {
	Paths []string `arg:"" name:"path" help:"Input .WSC file(s)" type:"existingfile"`
	Out   string   `short:"o" help:"Output file (single input only)" type:"path"`
	Dir   string   `short:"d" help:"Output directory" type:"path"`
}

func (c *DecompileCmd) Run() error {
	codec, _, _, err := buildParts()
	if err != nil {
		return err
	}
	if c.Out != "" && len(c.Paths) > 1 {
		return fmt.Errorf("--out requires a single input; use --dir for batches")
	}
	if err := validation.EnsureOutputDir(c.Dir); err != nil {
		return err
	}

	ctx := logging.WithRunID(context.Background(), uuid.NewString())
	succeeded, failed := 0, 0
	for _, path := range c.Paths {
		if err := c.one(ctx, codec, path); err != nil {
			logging.FileFailed(ctx, path, err)
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", path, err)
			failed++
			continue
		}
		succeeded++
	}
	logging.BatchSummary(ctx, succeeded, failed)

	if len(c.Paths) > 1 || failed > 0 {
		fmt.Printf("Summary: %d/%d files processed successfully\n", succeeded, len(c.Paths))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(c.Paths))
	}
	return nil
}

func (c *DecompileCmd) one(ctx context.Context, codec *wsc.Codec, path string) error {
	if err := validation.ValidateInputFile(path); err != nil {
		return err
	}
	if !validation.HasExtension(path, ".wsc") {
		logging.WarnContext(ctx, "unexpected extension", "input", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	start := time.Now()
	transcript := codec.Decode(data)
	out := outputPath(path, c.Out, c.Dir, ".txt")
	if err := os.WriteFile(out, []byte(transcript), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	entries := strings.Count(transcript, ">\n")
	logging.FileProcessed(ctx, path, out, entries, time.Since(start))
	fmt.Printf("%s -> %s (%d entries)\n", path, out, entries)
	return nil
}

// RecompileCmd recompiles one or more transcripts back to binary.
type RecompileCmd struct {
	Paths       []string `arg:"" name:"path" help:"Input transcript file(s)" type:"existingfile"`
	Out         string   `short:"o" help:"Output file (single input only)" type:"path"`
	Dir         string   `short:"d" help:"Output directory" type:"path"`
	Recalculate bool     `help:"Recompute all offsets instead of preserving originals"`
}

func (c *RecompileCmd) Run() error {
	codec, _, _, err := buildParts()
	if err != nil {
		return err
	}
	if c.Out != "" && len(c.Paths) > 1 {
		return fmt.Errorf("--out requires a single input; use --dir for batches")
	}
	if err := validation.EnsureOutputDir(c.Dir); err != nil {
		return err
	}

	ctx := logging.WithRunID(context.Background(), uuid.NewString())
	succeeded, failed := 0, 0
	for _, path := range c.Paths {
		if err := c.one(ctx, codec, path); err != nil {
			logging.FileFailed(ctx, path, err)
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", path, err)
			failed++
			continue
		}
		succeeded++
	}
	logging.BatchSummary(ctx, succeeded, failed)

	if len(c.Paths) > 1 || failed > 0 {
		fmt.Printf("Summary: %d/%d files processed successfully\n", succeeded, len(c.Paths))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(c.Paths))
	}
	return nil
}

func (c *RecompileCmd) one(ctx context.Context, codec *wsc.Codec, path string) error {
	if err := validation.ValidateInputFile(path); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	start := time.Now()
	bin, result, err := codec.Encode(string(data), !c.Recalculate)
	printResult(result)
	if err != nil {
		return err
	}

	out := outputPath(path, c.Out, c.Dir, ".wsc")
	if err := os.WriteFile(out, bin, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	logging.FileProcessed(ctx, path, out, len(bin), time.Since(start))
	fmt.Printf("%s -> %s (%d bytes)\n", path, out, len(bin))
	return nil
}

// ValidateCmd validates a transcript and reports the structured findings.
type ValidateCmd struct {
	Path string `arg:"" help:"Transcript file to validate" type:"existingfile"`
}

func (c *ValidateCmd) Run() error {
	codec, _, _, err := buildParts()
	if err != nil {
		return err
	}
	if err := validation.ValidateInputFile(c.Path); err != nil {
		return err
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", c.Path, err)
	}

	ctx := logging.WithRunID(context.Background(), uuid.NewString())
	result := codec.Validate(string(data))
	printResult(result)
	logging.ValidationFindings(ctx, c.Path,
		len(result.Errors), len(result.Warnings), len(result.Suggestions))

	if !result.IsValid {
		return fmt.Errorf("%s: %d errors", c.Path, len(result.Errors))
	}
	fmt.Printf("%s: valid (%d warnings)\n", c.Path, len(result.Warnings))
	return nil
}

// InspectCmd reports container statistics and integrity hashes.
type InspectCmd struct {
	Path string `arg:"" help:"Container file to inspect" type:"existingfile"`
}

func (c *InspectCmd) Run() error {
	_, chain, rules, err := buildParts()
	if err != nil {
		return err
	}
	if err := validation.ValidateInputFile(c.Path); err != nil {
		return err
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", c.Path, err)
	}

	sha := sha256.Sum256(data)
	b3 := blake3.Sum256(data)

	records := wsc.ExtractRecords(data, chain)
	classifier := wsc.NewClassifier(rules)

	kept := 0
	kinds := map[wsc.RecordKind]int{}
	encodings := map[string]int{}
	for _, rec := range records {
		encodings[rec.Encoding]++
		if !classifier.Meaningful(rec.Decoded, rec.Raw) {
			continue
		}
		kept++
		kinds[wsc.Resolve(rec, chain).Kind]++
	}

	fmt.Printf("File: %s\n", c.Path)
	fmt.Printf("  Size: %d bytes\n", len(data))
	fmt.Printf("  SHA-256: %s\n", hex.EncodeToString(sha[:]))
	fmt.Printf("  BLAKE3: %s\n", hex.EncodeToString(b3[:]))
	fmt.Printf("Records: %d total, %d kept\n", len(records), kept)
	fmt.Printf("  speaker: %d, narration: %d, plain: %d\n",
		kinds[wsc.KindSpeaker], kinds[wsc.KindNarration], kinds[wsc.KindPlain])
	fmt.Println("Encodings:")
	for _, tag := range []string{textenc.TagCP932, textenc.TagShiftJIS, textenc.TagUTF8, textenc.TagLatin1} {
		if n := encodings[tag]; n > 0 {
			fmt.Printf("  %s: %d\n", tag, n)
		}
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("wsckit %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("wsckit"),
		kong.Description("WSC script codec - decompile, edit, recompile"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	level := logging.LevelInfo
	if CLI.Verbose {
		level = logging.LevelDebug
	}
	format := logging.FormatText
	if CLI.LogFormat == "json" {
		format = logging.FormatJSON
	}
	logging.InitLogger(level, format)

	ctx.FatalIfErrorf(ctx.Run())
}
