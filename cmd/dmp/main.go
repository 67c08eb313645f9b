// Command dmp exposes the diff, match, and patch operations of the dmp
// package as a small file-oriented CLI.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/gofraser/dmp"
)

var CLI struct {
	Diff struct {
		Text1File *os.File      `arg help:"File containing the original text."`
		Text2File *os.File      `arg help:"File containing the revised text."`
		Timeout   time.Duration `name:"timeout" default:"1s" help:"Max time to spend diffing."`
		Pretty    bool          `help:"Emit an HTML pretty-print instead of a delta string."`
		Cleanup   bool          `name:"cleanup" default:"true" help:"Apply semantic cleanup to the diff."`
	} `cmd help:"Diff two files and print the delta."`

	Match struct {
		TextFile     *os.File `arg help:"File to search within."`
		Pattern      string   `arg help:"Pattern to locate."`
		Location     int      `arg optional help:"Approximate expected location." default:"0"`
		MatchMaxBits int      `name:"max-bits" default:"32" help:"Pattern length bound."`
	} `cmd help:"Locate the best fuzzy match of a pattern within a file."`

	Patch struct {
		Make struct {
			Text1File *os.File `arg help:"Original file."`
			Text2File *os.File `arg help:"Revised file."`
		} `cmd help:"Make a patch describing the change from 'text1' to 'text2'."`

		Apply struct {
			TextFile  *os.File `arg help:"File to apply the patch to."`
			PatchFile *os.File `arg help:"Patch text file, as emitted by 'patch make'."`
		} `cmd help:"Apply a patch file, allowing for drift in the target text."`
	} `cmd help:"Build or apply a patch."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("dmp"),
		kong.Description("Diff, match, and patch text using the diff-match-patch family of algorithms."),
	)
	var err error
	switch ctx.Command() {
	case "diff <text1-file> <text2-file>":
		err = runDiff()
	case "match <text-file> <pattern>", "match <text-file> <pattern> <location>":
		err = runMatch()
	case "patch make <text1-file> <text2-file>":
		err = runPatchMake()
	case "patch apply <text-file> <patch-file>":
		err = runPatchApply()
	default:
		err = fmt.Errorf("unhandled command: %s", ctx.Command())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "dmp: %s\n", err)
		os.Exit(1)
	}
}

func runDiff() error {
	text1, err := readAll(CLI.Diff.Text1File)
	if err != nil {
		return err
	}
	text2, err := readAll(CLI.Diff.Text2File)
	if err != nil {
		return err
	}

	config := dmp.NewConfig(dmp.WithDiffTimeout(CLI.Diff.Timeout))
	diffs := config.Diff(text1, text2, true)
	if CLI.Diff.Cleanup {
		diffs = config.DiffCleanupSemantic(diffs)
	}

	if CLI.Diff.Pretty {
		fmt.Fprintln(os.Stdout, config.DiffPrettyHtml(diffs))
		return nil
	}
	fmt.Fprintln(os.Stdout, config.DiffToDelta(diffs))
	return nil
}

func runMatch() error {
	text, err := readAll(CLI.Match.TextFile)
	if err != nil {
		return err
	}

	config := dmp.NewConfig(dmp.WithMatchMaxBits(CLI.Match.MatchMaxBits))
	loc, err := config.MatchChecked(text, CLI.Match.Pattern, CLI.Match.Location)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, loc)
	return nil
}

func runPatchMake() error {
	text1, err := readAll(CLI.Patch.Make.Text1File)
	if err != nil {
		return err
	}
	text2, err := readAll(CLI.Patch.Make.Text2File)
	if err != nil {
		return err
	}

	config := dmp.NewDefaultConfig()
	patches, err := config.PatchMakeFromTexts(text1, text2)
	if err != nil {
		return err
	}
	if err := dmp.ValidatePatches(patches); err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, config.PatchToText(patches))
	return nil
}

func runPatchApply() error {
	text, err := readAll(CLI.Patch.Apply.TextFile)
	if err != nil {
		return err
	}
	patchText, err := readAll(CLI.Patch.Apply.PatchFile)
	if err != nil {
		return err
	}

	config := dmp.NewDefaultConfig()
	patches, err := config.PatchFromText(patchText)
	if err != nil {
		return err
	}

	result, applied := config.PatchApply(patches, text)
	for i, ok := range applied {
		if !ok {
			fmt.Fprintf(os.Stderr, "dmp: patch hunk %d did not apply cleanly\n", i)
		}
	}
	fmt.Fprint(os.Stdout, result)
	return nil
}

func readAll(f *os.File) (string, error) {
	b, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", f.Name(), err)
	}
	return string(b), nil
}
