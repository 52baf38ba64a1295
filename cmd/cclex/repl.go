package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"cclex/internal/diagfmt"
	"cclex/internal/driver"
	"cclex/internal/lexer"
	"cclex/internal/token"
)

const replHistoryFile = ".cclex_history"

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Tokenize lines interactively",
	Long: `Repl reads lines, tokenizes each one and prints the tokens.
Commands: :help, :format pretty|json, :unquote, :quit.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

type replState struct {
	format  string // pretty | json
	unquote bool   // печатать значения строковых литералов
	color   bool
	opts    driver.Options
}

func runRepl(cmd *cobra.Command, _ []string) error {
	colored, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	m, err := loadSettings(cmd, ".")
	if err != nil {
		return err
	}
	st := &replState{
		format: "pretty",
		color:  colored,
		opts:   driver.Options{MaxDiagnostics: m.Lex.MaxDiagnostics},
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyPath = filepath.Join(home, replHistoryFile)
		if f, err := os.Open(historyPath); err == nil {
			_, _ = line.ReadHistory(f)
			_ = f.Close()
		}
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	fmt.Fprintln(out, "cclex repl, :help for commands")
	for {
		input, err := line.Prompt("cclex> ")
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)
		if quit := evalReplLine(cmd.Context(), out, errOut, input, st); quit {
			break
		}
	}

	if historyPath != "" {
		if f, err := os.Create(historyPath); err == nil {
			_, _ = line.WriteHistory(f)
			_ = f.Close()
		}
	}
	return nil
}

// evalReplLine handles one input line and reports whether the session ends.
func evalReplLine(ctx context.Context, out, errOut io.Writer, input string, st *replState) bool {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, ":") {
		return replCommand(out, errOut, trimmed, st)
	}

	res := driver.TokenizeSource(ctx, "<repl>", []byte(input), st.opts)
	if res.Bag.Len() > 0 {
		diagfmt.Pretty(errOut, res.Bag, res.FileSet, diagfmt.PrettyOpts{Color: st.color, ShowNotes: true})
	}

	var err error
	if st.format == "json" {
		err = diagfmt.FormatTokensJSON(out, res.Tokens, res.FileSet)
	} else {
		err = diagfmt.FormatTokensPretty(out, res.Tokens, res.FileSet)
	}
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
	}

	if st.unquote {
		for _, tok := range res.Tokens {
			if tok.Kind != token.StringLit {
				continue
			}
			if v, err := lexer.Unquote(tok.Text); err == nil {
				fmt.Fprintf(out, "     %s = %q\n", tok.Text, v)
			}
		}
	}
	return false
}

func replCommand(out, errOut io.Writer, cmdline string, st *replState) bool {
	fields := strings.Fields(cmdline)
	switch fields[0] {
	case ":q", ":quit", ":exit":
		return true
	case ":help":
		fmt.Fprintln(out, "  :format pretty|json  token output format")
		fmt.Fprintln(out, "  :unquote             toggle decoded string literal values")
		fmt.Fprintln(out, "  :quit                leave the repl")
	case ":format":
		if len(fields) != 2 || (fields[1] != "pretty" && fields[1] != "json") {
			fmt.Fprintln(errOut, "usage: :format pretty|json")
			return false
		}
		st.format = fields[1]
	case ":unquote":
		st.unquote = !st.unquote
		fmt.Fprintf(out, "unquote %v\n", st.unquote)
	default:
		fmt.Fprintf(errOut, "unknown command %s, try :help\n", fields[0])
	}
	return false
}
