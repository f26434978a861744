package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/flashgen-backend/internal/app"
	"github.com/heartmarshall/flashgen-backend/internal/config"
	"github.com/heartmarshall/flashgen-backend/internal/review"
	"github.com/heartmarshall/flashgen-backend/internal/validation"
)

func newLogger(level string) *slog.Logger {
	return app.NewLogger(config.LogConfig{Level: level, Format: "text"})
}

func newGenerateCmd(cfg *clientConfig) *cobra.Command {
	var acceptAll bool

	cmd := &cobra.Command{
		Use:   "generate <file|->",
		Short: "Generate flashcard proposals from a text file and review them",
		Long: "Reads source text from a file (or stdin with -), asks the server for\n" +
			"flashcard proposals and opens a review session. With --accept-all\n" +
			"every proposal is saved without prompting.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readSource(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			res := validation.SourceText(text)
			if !res.IsValid {
				return fmt.Errorf("%s (got %d)", res.Message, res.Count)
			}

			prompts := cmd.InOrStdin()
			if args[0] == "-" {
				// stdin carried the text; take answers from the terminal.
				tty, err := os.Open("/dev/tty")
				if err != nil && !acceptAll {
					return fmt.Errorf("interactive review needs a terminal when text is piped: %w", err)
				}
				if tty != nil {
					defer tty.Close()
					prompts = tty
				}
			}

			s := newSession(cfg.client(), prompts, cmd.OutOrStdout(), newLogger(cfg.LogLevel))
			return s.run(cmd.Context(), text, acceptAll)
		},
	}

	cmd.Flags().BoolVar(&acceptAll, "accept-all", false, "save every proposal without prompting")
	return cmd
}

func readSource(arg string, stdin io.Reader) (string, error) {
	var (
		raw []byte
		err error
	)
	if arg == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(arg)
	}
	if err != nil {
		return "", fmt.Errorf("read source text: %w", err)
	}
	return string(raw), nil
}

var errSessionExpired = errors.New("session expired: issue a new token with devtoken and set FLASHGEN_TOKEN")

// session drives one review.Machine from line-oriented commands.
type session struct {
	m          *review.Machine
	in         *bufio.Scanner
	out        io.Writer
	redirected chan string
}

// redirector records the redirect target; a terminal has nowhere to
// navigate to.
type redirector chan string

func (r redirector) Redirect(url string) {
	select {
	case r <- url:
	default:
	}
}

func newSession(gw review.Gateway, in io.Reader, out io.Writer, logger *slog.Logger) *session {
	redirected := make(chan string, 1)
	return &session{
		m:          review.NewMachine(gw, redirector(redirected), logger),
		in:         bufio.NewScanner(in),
		out:        out,
		redirected: redirected,
	}
}

func (s *session) run(ctx context.Context, text string, acceptAll bool) error {
	fmt.Fprintln(s.out, "Generating flashcards...")
	if err := s.dispatch(ctx, review.Submit{Text: text}); err != nil {
		return err
	}

	for {
		st := s.m.State()

		switch st.View {
		case review.ViewIdle:
			return nil
		case review.ViewError:
			if err := s.showError(st); err != nil {
				return err
			}
		case review.ViewReviewing:
			if acceptAll {
				acceptAll = false
				if err := s.saveAll(ctx); err != nil {
					return err
				}
				continue
			}
		}

		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				return err
			}
			fmt.Fprintln(s.out)
			return nil
		}

		quit, err := s.execute(ctx, s.in.Text())
		if err != nil {
			fmt.Fprintln(s.out, "!", err)
		}
		if quit {
			return nil
		}
	}
}

// dispatch applies ev and waits for any request it started.
func (s *session) dispatch(ctx context.Context, ev review.Event) error {
	if err := s.m.Dispatch(ctx, ev); err != nil {
		return err
	}
	s.m.Wait()
	if st := s.m.State(); st.View == review.ViewReviewing {
		if _, ok := ev.(review.Submit); ok {
			s.printProposals(st)
		}
	}
	return nil
}

func (s *session) showError(st review.State) error {
	fmt.Fprintln(s.out, "Error:", st.Error.Message)
	if st.Error.ShouldRedirect {
		<-s.redirected
		return errSessionExpired
	}
	if st.Error.CanRetry {
		fmt.Fprintln(s.out, "Type 'retry' to try again or 'cancel' to start over.")
	} else {
		fmt.Fprintln(s.out, "Type 'cancel' to start over.")
	}
	return nil
}

func (s *session) saveAll(ctx context.Context) error {
	if err := s.m.Dispatch(ctx, review.SelectAll{Selected: true}); err != nil {
		return err
	}
	return s.save(ctx)
}

func (s *session) save(ctx context.Context) error {
	n := s.m.State().SelectedCount()
	if err := s.dispatch(ctx, review.Save{}); err != nil {
		return err
	}
	if s.m.State().View == review.ViewIdle {
		fmt.Fprintf(s.out, "Saved %d flashcard(s).\n", n)
	}
	return nil
}

const helpText = `Commands:
  list                       show proposals
  toggle <n>                 select or deselect proposal n
  all | none                 select or deselect every proposal
  edit <n> question|answer <text>
                             replace a field of a selected proposal
  save                       save the selected proposals
  retry                      retry after an error
  dismiss                    close the error and keep reviewing
  cancel                     discard the session
  quit                       leave without saving`

// execute runs one command line. quit reports that the session is over.
func (s *session) execute(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch cmd := strings.ToLower(fields[0]); cmd {
	case "help", "h", "?":
		fmt.Fprintln(s.out, helpText)
	case "list", "ls", "l":
		s.printProposals(s.m.State())
	case "toggle", "t":
		id, err := proposalID(fields)
		if err != nil {
			return false, err
		}
		return false, s.m.Dispatch(ctx, review.Toggle{ID: id})
	case "all":
		return false, s.m.Dispatch(ctx, review.SelectAll{Selected: true})
	case "none":
		return false, s.m.Dispatch(ctx, review.SelectAll{Selected: false})
	case "edit", "e":
		return false, s.edit(ctx, line, fields)
	case "save", "s":
		return false, s.save(ctx)
	case "retry", "r":
		return false, s.retry(ctx)
	case "dismiss", "d":
		return false, s.m.Dispatch(ctx, review.Dismiss{})
	case "cancel", "c":
		if err := s.m.Dispatch(ctx, review.Cancel{}); err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, "Session discarded.")
		return true, nil
	case "quit", "q", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q, type 'help'", cmd)
	}
	return false, nil
}

func (s *session) edit(ctx context.Context, line string, fields []string) error {
	if len(fields) < 4 {
		return errors.New("usage: edit <n> question|answer <text>")
	}
	id, err := proposalID(fields)
	if err != nil {
		return err
	}

	var field review.Field
	switch strings.ToLower(fields[2]) {
	case "question", "q":
		field = review.FieldQuestion
	case "answer", "a":
		field = review.FieldAnswer
	default:
		return fmt.Errorf("unknown field %q", fields[2])
	}

	// Keep the text exactly as typed after the field name.
	value := line
	for _, f := range fields[:3] {
		value = strings.TrimLeft(value, " \t")
		value = strings.TrimPrefix(value, f)
	}
	value = strings.TrimSpace(value)

	if err := s.m.Dispatch(ctx, review.SetEditing{ID: id, Editing: true}); err != nil {
		return err
	}
	editErr := s.m.Dispatch(ctx, review.Edit{ID: id, Field: field, Value: value})
	if err := s.m.Dispatch(ctx, review.SetEditing{ID: id, Editing: false}); err != nil {
		return err
	}
	return editErr
}

func (s *session) retry(ctx context.Context) error {
	st := s.m.State()
	if st.View != review.ViewError || st.Error == nil || !st.Error.CanRetry {
		return errors.New("nothing to retry")
	}
	if err := s.m.Dispatch(ctx, review.Dismiss{}); err != nil {
		return err
	}
	if len(st.Proposals) > 0 {
		return s.save(ctx)
	}
	fmt.Fprintln(s.out, "Generating flashcards...")
	return s.dispatch(ctx, review.Submit{Text: st.SourceText})
}

func (s *session) printProposals(st review.State) {
	if len(st.Proposals) == 0 {
		fmt.Fprintln(s.out, "No proposals.")
		return
	}
	for _, p := range st.Proposals {
		mark := " "
		if p.IsSelected {
			mark = "x"
		}
		edited := ""
		if p.IsModified {
			edited = " (edited)"
		}
		fmt.Fprintf(s.out, "[%s] %d.%s\n    Q: %s\n    A: %s\n", mark, p.ID, edited, p.Question, p.Answer)
	}
	fmt.Fprintf(s.out, "%d of %d selected. Type 'help' for commands.\n", st.SelectedCount(), len(st.Proposals))
}

func proposalID(fields []string) (int, error) {
	if len(fields) < 2 {
		return 0, fmt.Errorf("usage: %s <n>", fields[0])
	}
	var id int
	if _, err := fmt.Sscanf(fields[1], "%d", &id); err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid proposal number %q", fields[1])
	}
	return id, nil
}
