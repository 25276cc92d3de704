// Package shell provides the interactive command-line browser for an
// already-decoded binlens result tree.
package shell

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/binlens/binlens/pkg/render"
	"github.com/binlens/binlens/pkg/resulttree"
)

// Shell handles interactive browsing of a decoded result tree.
type Shell struct {
	// path is the stack of results from root to the current node, root
	// always at path[0].
	path []*resulttree.Result
	rl   *readline.Instance
	out  io.Writer
}

// New creates a Shell positioned at root, reading commands from the
// terminal and writing output to os.Stdout.
func New(root *resulttree.Result) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "binlens> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Shell{path: []*resulttree.Result{root}, rl: rl, out: rl.Stdout()}, nil
}

// NewWithOutput creates a Shell like New but writes command output to out
// instead of the terminal. Used by tests that want to inspect output
// without a real tty.
func NewWithOutput(root *resulttree.Result, out io.Writer) (*Shell, error) {
	s, err := New(root)
	if err != nil {
		return nil, err
	}
	s.out = out
	return s, nil
}

// Stdout returns the writer commands should print to.
func (s *Shell) Stdout() io.Writer { return s.out }

func (s *Shell) cursor() *resulttree.Result { return s.path[len(s.path)-1] }

// Run starts the read-eval-print loop. It returns when the user exits or
// the input stream is closed.
func (s *Shell) Run() {
	defer s.rl.Close()

	fmt.Fprintln(s.Stdout(), "binlens interactive shell. Type 'help' for commands.")
	s.cmdLs(nil)

	for {
		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return
		}

		if !s.Exec(line) {
			return
		}
	}
}

// Exec dispatches one command line. It returns false when the command
// should end the session (quit/exit/q), true otherwise.
func (s *Shell) Exec(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()
	case "ls", "l":
		s.cmdLs(args)
	case "cd":
		s.cmdCd(args)
	case "pwd":
		s.cmdPwd()
	case "render", "cat":
		s.cmdRender()
	case "tree":
		s.cmdTree()
	case "status":
		s.cmdStatus()
	case "quit", "exit", "q":
		return false
	default:
		fmt.Fprintf(s.Stdout(), "unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.Stdout(), `
Commands:
  ls               list the current node's sections and children
  cd <n|..|/>      move into child n, up one level, or back to the root
  pwd              print the path from the root to the current node
  render           render the current node and its descendants as text
  tree             print the current node's subtree as an outline
  status           show the current node's decode status, if any
  help             show this help
  quit             exit the shell`)
}

func (s *Shell) cmdLs(args []string) {
	c := s.cursor()
	for _, sec := range c.Sections {
		fmt.Fprintf(s.Stdout(), "  section %-20s [%d,%d)\n", sectionLabel(sec), sec.Start, sec.End)
	}
	for i, child := range c.Children {
		title := child.Title
		if title == "" {
			title = child.Type.String()
		}
		fmt.Fprintf(s.Stdout(), "%3d  %-20s [%d,%d)\n", i, title, child.Start, child.End)
	}
	if len(c.Sections) == 0 && len(c.Children) == 0 {
		fmt.Fprintln(s.Stdout(), "  (no sections or children)")
	}
}

func sectionLabel(sec resulttree.ResultSection) string {
	if sec.Spec == nil {
		return "section"
	}
	return fmt.Sprintf("%T", sec.Spec)
}

func (s *Shell) cmdCd(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.Stdout(), "usage: cd <index|..|/>")
		return
	}
	switch args[0] {
	case "/":
		s.path = s.path[:1]
	case "..":
		if len(s.path) > 1 {
			s.path = s.path[:len(s.path)-1]
		}
	default:
		idx, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(s.Stdout(), "invalid index: %s\n", args[0])
			return
		}
		c := s.cursor()
		if idx < 0 || idx >= len(c.Children) {
			fmt.Fprintf(s.Stdout(), "no such child: %d\n", idx)
			return
		}
		s.path = append(s.path, c.Children[idx])
	}
}

func (s *Shell) cmdPwd() {
	var names []string
	for _, r := range s.path {
		title := r.Title
		if title == "" {
			title = r.Type.String()
		}
		names = append(names, title)
	}
	fmt.Fprintln(s.Stdout(), "/"+strings.Join(names, "/"))
}

func (s *Shell) cmdRender() {
	out := render.NewTextRenderer(s.Stdout())
	if err := render.Render(s.cursor(), out); err != nil {
		fmt.Fprintf(s.Stdout(), "render error: %v\n", err)
	}
}

func (s *Shell) cmdTree() {
	s.printTree(s.cursor(), 0)
}

func (s *Shell) printTree(r *resulttree.Result, depth int) {
	title := r.Title
	if title == "" {
		title = r.Type.String()
	}
	fmt.Fprintf(s.Stdout(), "%s%s [%d,%d)\n", strings.Repeat("  ", depth), title, r.Start, r.End)
	for _, child := range r.Children {
		s.printTree(child, depth+1)
	}
}

func (s *Shell) cmdStatus() {
	st := s.cursor().Status
	if st == nil {
		fmt.Fprintln(s.Stdout(), "no status attached")
		return
	}
	kind := "warning"
	if st.Fatal {
		kind = "fatal"
	}
	fmt.Fprintf(s.Stdout(), "%s: %s\n", kind, st.Message)
}
